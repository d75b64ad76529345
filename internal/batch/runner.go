package batch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"livybatch/internal/apperrors"
	"livybatch/internal/config"
	"livybatch/internal/livy"
	"livybatch/internal/observability"
	"livybatch/internal/verify"
)

// Runner coordinates one batch lifecycle per Run call: submit, poll,
// optionally verify against a secondary backend, drain the log per
// policy, and close the batch exactly once whenever an id was obtained.
type Runner struct {
	livy      *livy.Client
	poller    *Poller
	verifier  *verify.Verifier
	logPolicy config.LogPolicy
	logger    *slog.Logger
	sink      *slog.Logger
	metrics   *observability.Metrics
}

// RunnerConfig wires a Runner's collaborators. Sink receives the
// drained batch log lines and defaults to Logger; Metrics and Verifier
// may be nil.
type RunnerConfig struct {
	Livy      *livy.Client
	Poller    *Poller
	Verifier  *verify.Verifier
	LogPolicy config.LogPolicy
	Logger    *slog.Logger
	Sink      *slog.Logger
	Metrics   *observability.Metrics
}

// NewRunner creates a lifecycle runner.
func NewRunner(cfg RunnerConfig) *Runner {
	sink := cfg.Sink
	if sink == nil {
		sink = cfg.Logger
	}
	return &Runner{
		livy:      cfg.Livy,
		poller:    cfg.Poller,
		verifier:  cfg.Verifier,
		logPolicy: cfg.LogPolicy,
		logger:    cfg.Logger.With("component", "runner"),
		sink:      sink,
		metrics:   cfg.Metrics,
	}
}

// Run executes one full batch lifecycle and returns the batch id on
// success. Exactly one lifecycle error (or the id) comes out of each
// invocation; it is raised only after log drain and close have been
// attempted. No stage is retried here: re-invoking the whole lifecycle
// is the caller's decision.
func (r *Runner) Run(ctx context.Context, sub *Submission) (int64, error) {
	runID := uuid.New().String()
	logger := r.logger.With("runId", runID)

	payload, err := sub.Payload()
	if err != nil {
		return 0, apperrors.Lifecycle(0, err)
	}

	start := time.Now()
	if r.metrics != nil {
		r.metrics.RecordLifecycleStarted(ctx)
	}
	success := false
	defer func() {
		if r.metrics != nil {
			r.metrics.RecordLifecycleCompleted(ctx, success, time.Since(start).Seconds())
		}
	}()

	// No batch resource exists before submission succeeds, so failing
	// here needs no cleanup.
	batchID, err := r.livy.Submit(ctx, payload, runID)
	if err != nil {
		return 0, apperrors.Lifecycle(0, err)
	}
	logger.Info("Batch submitted", "batchId", batchID)

	// From here on every path flows through the cleanup block below.
	failure := r.poller.Wait(ctx, batchID)

	if failure == nil && r.verifier != nil && r.verifier.Enabled() {
		failure = r.verifyBatch(ctx, logger, batchID)
	}

	if r.shouldDrainLogs(failure) {
		drained, err := r.livy.DrainLogs(ctx, batchID, r.sink)
		if r.metrics != nil {
			r.metrics.RecordLogLines(ctx, drained)
		}
		if err != nil {
			if failure == nil {
				failure = err
			} else {
				logger.Warn("Log drain failed", "batchId", batchID, "error", err)
			}
		}
	}

	if err := r.livy.Close(ctx, batchID); err != nil {
		if failure == nil {
			failure = err
		} else {
			logger.Warn("Batch close failed", "batchId", batchID, "error", err)
		}
	}

	if failure != nil {
		return 0, apperrors.Lifecycle(batchID, failure)
	}

	success = true
	logger.Info("Batch lifecycle complete", "batchId", batchID)
	return batchID, nil
}

// verifyBatch resolves the batch's application id and checks its
// terminal status with the configured backend. A verification failure
// downgrades the primary poller's success to an overall failure.
func (r *Runner) verifyBatch(ctx context.Context, logger *slog.Logger, batchID int64) error {
	logger.Info("Verifying batch status", "batchId", batchID, "method", string(r.verifier.Method()))

	appID, err := r.livy.AppID(ctx, batchID)
	if err != nil {
		return err
	}
	logger.Info("Found app id for batch", "batchId", batchID, "appId", appID)

	if err := r.verifier.Verify(ctx, appID); err != nil {
		if r.metrics != nil && errors.Is(err, apperrors.ErrVerificationMismatch) {
			r.metrics.RecordVerificationFailure(ctx, string(r.verifier.Method()))
		}
		return err
	}

	logger.Info("App completed", "batchId", batchID, "appId", appID)
	return nil
}

func (r *Runner) shouldDrainLogs(failure error) bool {
	switch r.logPolicy {
	case config.LogNever:
		return false
	case config.LogOnFailure:
		return failure != nil
	default:
		return true
	}
}
