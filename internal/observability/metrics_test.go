package observability

import (
	"context"
	"testing"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	metrics, handler, err := NewMetrics(ctx)
	if err != nil {
		t.Fatalf("Failed to create metrics: %v", err)
	}

	if metrics == nil {
		t.Fatal("Expected metrics to be non-nil")
	}

	if handler == nil {
		t.Fatal("Expected handler to be non-nil")
	}
}

func TestRecordLifecycleMetrics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	metrics, _, err := NewMetrics(ctx)
	if err != nil {
		t.Fatalf("Failed to create metrics: %v", err)
	}

	// Should not panic
	metrics.RecordLifecycleStarted(ctx)
	metrics.RecordPoll(ctx, "starting")
	metrics.RecordPoll(ctx, "running")
	metrics.RecordPoll(ctx, "success")
	metrics.RecordPoll(ctx, "dead")
	metrics.RecordLogLines(ctx, 250)
	metrics.RecordVerificationFailure(ctx, "yarn")
	metrics.RecordLifecycleCompleted(ctx, true, 42.0)
	metrics.RecordLifecycleCompleted(ctx, false, 600.0)
}

func TestStateAttrGroupsFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		state string
		want  string
	}{
		{"starting", "starting"},
		{"running", "running"},
		{"success", "success"},
		{"dead", "failed"},
		{"shutting_down", "failed"},
		{"error", "failed"},
	}

	for _, tt := range tests {
		attr := stateAttr(tt.state)
		if attr.Value.AsString() != tt.want {
			t.Errorf("stateAttr(%q) = %q, want %q", tt.state, attr.Value.AsString(), tt.want)
		}
	}
}
