package delivery

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDelivery_Validation(t *testing.T) {
	tests := []struct {
		name    string
		chatID  string
		content string
		wantErr error
	}{
		{name: "ok", chatID: "905551112233@c.us", content: "hello"},
		{name: "empty recipient", chatID: "  ", content: "hello", wantErr: ErrEmptyRecipient},
		{name: "empty content", chatID: "1@c.us", content: " \n", wantErr: ErrEmptyContent},
		{name: "too long", chatID: "1@c.us", content: strings.Repeat("a", MaxContentLength+1), wantErr: ErrContentTooLong},
		{name: "max length", chatID: "1@c.us", content: strings.Repeat("a", MaxContentLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDelivery(tt.chatID, tt.content)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				return
			}
			if d.Status != StatusPending {
				t.Fatalf("expected PENDING, got %s", d.Status)
			}
			if d.CreatedAt.IsZero() {
				t.Fatalf("expected CreatedAt to be set")
			}
		})
	}
}

func TestDelivery_StatusTransitions(t *testing.T) {
	d, err := NewDelivery("1@c.us", "hi")
	if err != nil {
		t.Fatal(err)
	}

	d.MarkSent("wamid-1", `{"id":"wamid-1"}`)
	if d.Status != StatusSent || d.SentAt == nil || d.ProviderMessageID != "wamid-1" {
		t.Fatalf("unexpected sent state: %+v", d)
	}

	f, _ := NewDelivery("1@c.us", "hi")
	f.MarkFailed("boom")
	if f.Status != StatusFailed || f.RawResponse != "boom" || f.SentAt != nil {
		t.Fatalf("unexpected failed state: %+v", f)
	}

	s, _ := NewDelivery("1@c.us", "hi")
	s.MarkSkipped("no_route")
	if s.Status != StatusSkipped || s.SkipReason != "no_route" {
		t.Fatalf("unexpected skipped state: %+v", s)
	}
}
