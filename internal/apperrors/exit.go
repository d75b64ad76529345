package apperrors

import "errors"

// Process exit codes for the CLI, so host schedulers can distinguish
// failure classes without parsing log output.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitConfig       = 2
	ExitTransport    = 3
	ExitShape        = 4
	ExitTimeout      = 5
	ExitJobFailed    = 6
	ExitVerification = 7
)

// ExitCode maps an error to the appropriate process exit code.
// Lifecycle wrappers are classified by their cause.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrVerificationMismatch):
		return ExitVerification
	case errors.Is(err, ErrJobFailed):
		return ExitJobFailed
	case errors.Is(err, ErrPollTimeout):
		return ExitTimeout
	case errors.Is(err, ErrResponseShape):
		return ExitShape
	case errors.Is(err, ErrTransport):
		return ExitTransport
	default:
		return ExitFailure
	}
}
