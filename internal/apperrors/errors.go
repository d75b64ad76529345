// Package apperrors provides structured application errors for the batch lifecycle.
package apperrors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for classification via errors.Is().
var (
	ErrTransport            = errors.New("transport error")
	ErrResponseShape        = errors.New("response shape error")
	ErrPollTimeout          = errors.New("poll timeout")
	ErrJobFailed            = errors.New("job failed")
	ErrVerificationMismatch = errors.New("verification mismatch")
	ErrLifecycle            = errors.New("lifecycle error")
	ErrConfig               = errors.New("configuration error")
)

// Error provides structured error with context.
type Error struct {
	Sentinel error  // Wrapped sentinel for errors.Is() classification
	Message  string // Human-readable message
	Op       string // Operation that failed (e.g., "livy.submit")
	Path     string // JSON path that could not be resolved
	Body     string // Rendering of the offending response body
	BatchID  int64  // Batch the error relates to, 0 if none
	AppID    string // Application the error relates to
	State    string // Reported state for job failures
	Expected string // Expected status for verification mismatches
	Cause    error  // Underlying error
}

// Error returns the human-readable error message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause, so
// errors.Is() matches either.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Sentinel != nil {
		errs = append(errs, e.Sentinel)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// Transport creates a transport error for a failed remote call.
func Transport(op string, cause error) error {
	return &Error{
		Sentinel: ErrTransport,
		Message:  fmt.Sprintf("%s: %v", op, cause),
		Op:       op,
		Cause:    cause,
	}
}

// Shape creates a response shape error naming the JSON path that could
// not be resolved. The body argument is a rendering of the actual
// response, included verbatim in the message so the failure is
// diagnosable from the error alone.
func Shape(op, path, body string, cause error) error {
	return &Error{
		Sentinel: ErrResponseShape,
		Message:  fmt.Sprintf("%s: can not parse response, tried to find JSON path %s, but response was:\n%s", op, path, body),
		Op:       op,
		Path:     path,
		Body:     body,
		Cause:    cause,
	}
}

// PollTimeout creates a timeout error for a batch that never reached a
// terminal state within the polling budget.
func PollTimeout(batchID int64, budget time.Duration) error {
	return &Error{
		Sentinel: ErrPollTimeout,
		Message:  fmt.Sprintf("batch %d did not reach a terminal state within %s", batchID, budget),
		BatchID:  batchID,
	}
}

// JobFailed creates an error for a batch that reported a non-success
// terminal state. The literal state string is preserved.
func JobFailed(batchID int64, state string) error {
	return &Error{
		Sentinel: ErrJobFailed,
		Message:  fmt.Sprintf("batch %d failed with state '%s'", batchID, state),
		BatchID:  batchID,
		State:    state,
	}
}

// VerificationMismatch creates an error for a secondary status source
// disagreeing with the expected terminal status. The subject names the
// mismatching thing, including its id ("job id '2' associated with
// application 'app'", "YARN app 'app'").
func VerificationMismatch(subject, appID, actual, expected string) error {
	return &Error{
		Sentinel: ErrVerificationMismatch,
		Message:  fmt.Sprintf("%s is '%s', expected status is '%s'", subject, actual, expected),
		AppID:    appID,
		State:    actual,
		Expected: expected,
	}
}

// Lifecycle wraps a stage-level error into the single externally-visible
// lifecycle failure, after cleanup has been attempted.
func Lifecycle(batchID int64, cause error) error {
	return &Error{
		Sentinel: ErrLifecycle,
		Message:  fmt.Sprintf("batch lifecycle failed: %v", cause),
		BatchID:  batchID,
		Cause:    cause,
	}
}

// Config creates an error for an invalid configuration value.
func Config(field, message string) error {
	return &Error{
		Sentinel: ErrConfig,
		Message:  fmt.Sprintf("%s: %s", field, message),
		Op:       field,
	}
}
