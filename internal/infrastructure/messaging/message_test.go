package messaging

import (
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	cfg := DefaultBackoffConfig()

	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{10, time.Minute}, // 超过上限后封顶
		{100, time.Minute},
	}

	for _, tt := range tests {
		if got := cfg.CalculateBackoff(tt.retryCount); got != tt.want {
			t.Errorf("CalculateBackoff(%d) = %v, want %v", tt.retryCount, got, tt.want)
		}
	}
}

func TestCalculateBackoffCustomMultiplier(t *testing.T) {
	cfg := BackoffConfig{Initial: 100 * time.Millisecond, Max: time.Second, Multiplier: 3}

	if got := cfg.CalculateBackoff(1); got != 300*time.Millisecond {
		t.Errorf("CalculateBackoff(1) = %v, want 300ms", got)
	}
	if got := cfg.CalculateBackoff(5); got != time.Second {
		t.Errorf("CalculateBackoff(5) = %v, want capped at 1s", got)
	}
}

func TestMessagePayloadRoundTrip(t *testing.T) {
	msg, err := NewMessage("msg-1", "usage_event", "ws-1", "user-1", &UsageEventMessage{
		Operation:      "generate draft",
		Provider:       "openai",
		BillableTokens: 42,
	})
	if err != nil {
		t.Fatalf("NewMessage() error = %v", err)
	}

	var got UsageEventMessage
	if err := msg.UnmarshalPayload(&got); err != nil {
		t.Fatalf("UnmarshalPayload() error = %v", err)
	}
	if got.Operation != "generate draft" || got.BillableTokens != 42 {
		t.Errorf("payload = %+v", got)
	}
}

func TestDLQStreamNaming(t *testing.T) {
	if got := StreamUsageEvents.DLQStream(); got != "dlq:stream:usage:events" {
		t.Errorf("DLQStream() = %q", got)
	}
	if got := StreamImageJobs.DLQStream(); got != "dlq:stream:image:jobs" {
		t.Errorf("DLQStream() = %q", got)
	}
}
