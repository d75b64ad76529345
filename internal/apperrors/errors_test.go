package apperrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSentinelClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"transport", Transport("livy.submit", errors.New("connection refused")), ErrTransport},
		{"shape", Shape("livy.state", "$.state", "{}", errors.New("missing field")), ErrResponseShape},
		{"timeout", PollTimeout(7, 10*time.Minute), ErrPollTimeout},
		{"job failed", JobFailed(7, "dead"), ErrJobFailed},
		{"mismatch", VerificationMismatch("YARN app 'application_1'", "application_1", "FAILED", "SUCCEEDED"), ErrVerificationMismatch},
		{"config", Config("VERIFY_IN", "unknown method 'foo'"), ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("Expected %v to match sentinel %v", tt.err, tt.sentinel)
			}
		})
	}
}

func TestLifecycleWrapsCause(t *testing.T) {
	t.Parallel()
	cause := JobFailed(42, "dead")
	wrapped := Lifecycle(42, cause)

	if !errors.Is(wrapped, ErrLifecycle) {
		t.Error("Expected lifecycle sentinel to match")
	}
	if !errors.Is(wrapped, ErrJobFailed) {
		t.Error("Expected wrapped cause sentinel to match through the lifecycle error")
	}

	var structured *Error
	if !errors.As(wrapped, &structured) {
		t.Fatal("Expected *Error")
	}
	if structured.BatchID != 42 {
		t.Errorf("Expected batch id 42, got %d", structured.BatchID)
	}
}

func TestJobFailedMessageKeepsLiteralState(t *testing.T) {
	t.Parallel()
	err := JobFailed(99, "shutting_down")
	if !strings.Contains(err.Error(), "'shutting_down'") {
		t.Errorf("Expected literal state in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "99") {
		t.Errorf("Expected batch id in message, got %q", err.Error())
	}
}

func TestShapeMessageIncludesPathAndBody(t *testing.T) {
	t.Parallel()
	err := Shape("livy.submit", "$.id", `{"from": 0}`, errors.New("boom"))
	msg := err.Error()
	if !strings.Contains(msg, "$.id") {
		t.Errorf("Expected path in message, got %q", msg)
	}
	if !strings.Contains(msg, `{"from": 0}`) {
		t.Errorf("Expected body rendering in message, got %q", msg)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		code int
	}{
		{nil, ExitOK},
		{Config("VERIFY_IN", "bad"), ExitConfig},
		{Lifecycle(1, Transport("livy.submit", errors.New("refused"))), ExitTransport},
		{Lifecycle(1, Shape("livy.state", "$.state", "{}", nil)), ExitShape},
		{Lifecycle(1, PollTimeout(1, time.Minute)), ExitTimeout},
		{Lifecycle(1, JobFailed(1, "dead")), ExitJobFailed},
		{Lifecycle(1, VerificationMismatch("YARN app 'a'", "a", "FAILED", "SUCCEEDED")), ExitVerification},
		{errors.New("unclassified"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("code_%d", tt.code), func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.code {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.code)
			}
		})
	}
}
