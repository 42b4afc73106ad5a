// Package scheduler periodically drains the outbox.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// BatchProcessor is called on every tick while the scheduler is running.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context) error
}

// Controller is the control surface exposed to the HTTP layer.
type Controller interface {
	Start() error
	Stop() error
	IsRunning() bool
	Status() Status
}

// Status is a snapshot of the scheduler state.
type Status struct {
	Running   bool      `json:"running"`
	InBatch   bool      `json:"inBatch"`
	LastRunAt time.Time `json:"lastRunAt"`
	LastError string    `json:"lastError,omitempty"`
}

const (
	DefaultInterval     = 2 * time.Minute
	DefaultBatchTimeout = 30 * time.Second
)

// controlTimeout bounds how long Start/Stop wait for the loop.
const controlTimeout = 2 * time.Second

var (
	ErrNotResponding = errors.New("scheduler: control loop not responding")
	ErrAckTimeout    = errors.New("scheduler: acknowledgement timeout")
	ErrClosed        = errors.New("scheduler: closed")
)

type controlOp int

const (
	opStart controlOp = iota
	opStop
	opStatus
)

type command struct {
	op   controlOp
	resp chan Status
}

// Scheduler runs ProcessBatch on a fixed interval. All mutable state is
// owned by the loop goroutine.
type Scheduler struct {
	processor    BatchProcessor
	interval     time.Duration
	batchTimeout time.Duration
	logger       zerolog.Logger
	ctrl         chan command

	quit      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once
}

// New creates a stopped scheduler and starts its control loop. Non-positive
// durations fall back to the defaults.
func New(processor BatchProcessor, interval, batchTimeout time.Duration, logger zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if batchTimeout <= 0 {
		batchTimeout = DefaultBatchTimeout
	}

	s := &Scheduler{
		processor:    processor,
		interval:     interval,
		batchTimeout: batchTimeout,
		logger:       logger,
		ctrl:         make(chan command),
		quit:         make(chan struct{}),
		exited:       make(chan struct{}),
	}
	go s.loop()
	return s
}

// Start begins processing ticks.
func (s *Scheduler) Start() error {
	_, err := s.send(opStart)
	return err
}

// Stop stops accepting ticks. If a batch is running, Stop returns once it
// finishes or times out.
func (s *Scheduler) Stop() error {
	_, err := s.send(opStop)
	return err
}

// IsRunning reports whether new ticks will be processed.
func (s *Scheduler) IsRunning() bool {
	return s.Status().Running
}

func (s *Scheduler) Status() Status {
	st, err := s.send(opStatus)
	if err != nil {
		return Status{LastError: err.Error()}
	}
	return st
}

// Close stops the scheduler for good and ends its control loop. A batch in
// flight is cancelled and waited for. Later calls to any method return
// ErrClosed or a zero Status.
func (s *Scheduler) Close() error {
	s.closeOnce.Do(func() { close(s.quit) })

	select {
	case <-s.exited:
		return nil
	case <-time.After(controlTimeout + s.batchTimeout):
		return ErrAckTimeout
	}
}

func (s *Scheduler) send(op controlOp) (Status, error) {
	resp := make(chan Status, 1)

	select {
	case s.ctrl <- command{op: op, resp: resp}:
	case <-s.exited:
		return Status{}, ErrClosed
	case <-time.After(controlTimeout):
		return Status{}, ErrNotResponding
	}

	// A stop issued mid-batch is acknowledged when the batch completes,
	// which can take up to batchTimeout.
	wait := controlTimeout
	if op == opStop {
		wait += s.batchTimeout
	}

	select {
	case st := <-resp:
		return st, nil
	case <-time.After(wait):
		return Status{}, ErrAckTimeout
	}
}

type batchResult struct {
	err error
	at  time.Time
}

func (s *Scheduler) loop() {
	defer close(s.exited)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var (
		st          Status
		pendingStop []chan Status
		done        = make(chan batchResult, 1)
		cancelBatch context.CancelFunc
	)

	for {
		select {
		case <-s.quit:
			st.Running = false
			if st.InBatch {
				cancelBatch()
				res := <-done
				st.InBatch = false
				st.LastRunAt = res.at
			}
			for _, resp := range pendingStop {
				resp <- st
			}
			s.logger.Info().Msg("scheduler closed")
			return

		case cmd := <-s.ctrl:
			switch cmd.op {
			case opStart:
				if !st.Running {
					s.logger.Info().
						Dur("interval", s.interval).
						Dur("batch_timeout", s.batchTimeout).
						Msg("scheduler started")
				}
				st.Running = true
				cmd.resp <- st

			case opStop:
				if st.Running {
					s.logger.Info().Bool("in_batch", st.InBatch).Msg("scheduler stop requested")
				}
				st.Running = false
				if st.InBatch {
					pendingStop = append(pendingStop, cmd.resp)
					continue
				}
				cmd.resp <- st

			case opStatus:
				cmd.resp <- st
			}

		case <-ticker.C:
			if !st.Running || st.InBatch {
				continue
			}
			st.InBatch = true
			s.logger.Debug().Msg("triggering batch")
			var ctx context.Context
			ctx, cancelBatch = context.WithTimeout(context.Background(), s.batchTimeout)
			go s.runBatch(ctx, done)

		case res := <-done:
			cancelBatch()
			st.InBatch = false
			st.LastRunAt = res.at
			st.LastError = ""
			if res.err != nil {
				st.LastError = res.err.Error()
				s.logger.Error().Err(res.err).Msg("batch failed")
			} else {
				s.logger.Debug().Msg("batch completed")
			}

			for _, resp := range pendingStop {
				resp <- st
			}
			if len(pendingStop) > 0 {
				s.logger.Info().Msg("scheduler stopped")
			}
			pendingStop = nil
		}
	}
}

// runBatch executes one time-bounded batch and reports back to the loop.
func (s *Scheduler) runBatch(ctx context.Context, done chan<- batchResult) {
	err := s.processor.ProcessBatch(ctx)
	done <- batchResult{err: err, at: time.Now()}
}

var _ Controller = (*Scheduler)(nil)
