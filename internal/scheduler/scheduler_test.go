package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func closeScheduler(t *testing.T, s *Scheduler) {
	t.Helper()
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// fakeProcessor counts ProcessBatch calls, signals when a batch starts, and
// blocks until released.
type fakeProcessor struct {
	calls int32
	err   error

	started chan struct{}
	block   chan struct{}
}

func newFakeProcessor() *fakeProcessor {
	return &fakeProcessor{
		started: make(chan struct{}, 1),
		block:   make(chan struct{}),
	}
}

func (f *fakeProcessor) ProcessBatch(ctx context.Context) error {
	atomic.AddInt32(&f.calls, 1)

	select {
	case f.started <- struct{}{}:
	default:
	}

	select {
	case <-f.block:
	case <-ctx.Done():
	}
	return f.err
}

func waitStarted(t *testing.T, f *fakeProcessor) {
	t.Helper()
	select {
	case <-f.started:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("ProcessBatch was not called in time")
	}
}

func TestScheduler_StartTriggersBatch(t *testing.T) {
	fake := newFakeProcessor()
	s := New(fake, 10*time.Millisecond, 2*time.Second, zerolog.Nop())

	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() {
		close(fake.block)
		_ = s.Stop()
		closeScheduler(t, s)
	}()

	waitStarted(t, fake)

	if !s.IsRunning() {
		t.Fatalf("expected scheduler to be running after Start()")
	}
	if !s.Status().InBatch {
		t.Fatalf("expected a batch to be in progress")
	}
}

func TestScheduler_DoesNothingUntilStarted(t *testing.T) {
	fake := newFakeProcessor()
	s := New(fake, 5*time.Millisecond, time.Second, zerolog.Nop())
	defer closeScheduler(t, s)

	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&fake.calls); got != 0 {
		t.Fatalf("expected no batches before Start, got %d", got)
	}
	if s.IsRunning() {
		t.Fatalf("new scheduler should be stopped")
	}
}

func TestScheduler_StopWaitsForBatchCompletion(t *testing.T) {
	fake := newFakeProcessor()
	s := New(fake, 5*time.Millisecond, 2*time.Second, zerolog.Nop())
	defer closeScheduler(t, s)

	_ = s.Start()
	waitStarted(t, fake)

	done := make(chan struct{})
	go func() {
		_ = s.Stop()
		close(done)
	}()

	select {
	case <-done:
		t.Fatalf("Stop() returned before batch finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(fake.block)

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("Stop() did not return after batch completion")
	}

	if s.IsRunning() {
		t.Fatalf("expected scheduler to not be running after Stop()")
	}
}

func TestScheduler_StartStopStartFlow(t *testing.T) {
	fake := newFakeProcessor()
	close(fake.block)
	s := New(fake, 10*time.Millisecond, 2*time.Second, zerolog.Nop())
	defer closeScheduler(t, s)

	_ = s.Start()
	waitStarted(t, fake)

	_ = s.Stop()
	if s.IsRunning() {
		t.Fatalf("scheduler should be stopped after Stop()")
	}

	// Drain a signal from a batch that may have started before Stop.
	select {
	case <-fake.started:
	default:
	}

	_ = s.Start()
	if !s.IsRunning() {
		t.Fatalf("scheduler should be running after second Start()")
	}
	waitStarted(t, fake)
	_ = s.Stop()
}

func TestScheduler_RecordsLastError(t *testing.T) {
	fake := newFakeProcessor()
	fake.err = errors.New("db down")
	close(fake.block)
	s := New(fake, 5*time.Millisecond, time.Second, zerolog.Nop())
	defer closeScheduler(t, s)

	_ = s.Start()
	waitStarted(t, fake)
	_ = s.Stop()

	st := s.Status()
	if st.LastError != "db down" {
		t.Fatalf("expected last error to be recorded, got %q", st.LastError)
	}
	if st.LastRunAt.IsZero() {
		t.Fatalf("expected last run time to be set")
	}
}

func TestScheduler_RaceStartStop(t *testing.T) {
	fake := newFakeProcessor()
	close(fake.block)
	s := New(fake, 5*time.Millisecond, 50*time.Millisecond, zerolog.Nop())
	defer closeScheduler(t, s)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Start()
		}()
		go func() {
			defer wg.Done()
			_ = s.Stop()
		}()
	}
	wg.Wait()
}

func TestScheduler_CloseCancelsBatchInFlight(t *testing.T) {
	fake := newFakeProcessor()
	s := New(fake, 5*time.Millisecond, 10*time.Second, zerolog.Nop())

	_ = s.Start()
	waitStarted(t, fake)

	closed := make(chan error, 1)
	go func() { closed <- s.Close() }()

	select {
	case err := <-closed:
		if err != nil {
			t.Fatalf("close: %v", err)
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("Close() did not cancel the running batch")
	}
}

func TestScheduler_UnusableAfterClose(t *testing.T) {
	fake := newFakeProcessor()
	close(fake.block)
	s := New(fake, time.Hour, time.Second, zerolog.Nop())

	closeScheduler(t, s)
	closeScheduler(t, s)

	if err := s.Start(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Start, got %v", err)
	}
	if err := s.Stop(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Stop, got %v", err)
	}
	if s.IsRunning() {
		t.Fatalf("closed scheduler reports running")
	}
	if got := atomic.LoadInt32(&fake.calls); got != 0 {
		t.Fatalf("expected no batches, got %d", got)
	}
}
