package batch

import (
	"context"
	"log/slog"
	"time"

	"livybatch/internal/apperrors"
	"livybatch/internal/livy"
	"livybatch/internal/observability"
)

// Poller repeatedly reads a batch's state at a fixed interval until the
// batch reaches a terminal state or the wall-clock budget runs out.
//
// The timeout is cooperative: it is evaluated once per iteration, after
// the in-flight status read completes. A poll whose response is
// malformed aborts immediately, because a well-formed status response
// always carries a state field.
type Poller struct {
	livy     *livy.Client
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewPoller creates a poller. Metrics may be nil.
func NewPoller(client *livy.Client, interval, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		livy:     client,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "poller"),
		metrics:  metrics,
	}
}

// Wait blocks until the batch reaches a terminal state. It returns nil
// on success, a job failed error carrying the literal reported state on
// any unexpected terminal state, and a poll timeout error when the
// budget is exhausted.
func (p *Poller) Wait(ctx context.Context, batchID int64) error {
	deadline := time.Now().Add(p.timeout)

	for {
		state, err := p.livy.State(ctx, batchID)
		if err != nil {
			return err
		}
		if p.metrics != nil {
			p.metrics.RecordPoll(ctx, state)
		}

		switch state {
		case StateStarting, StateRunning:
			p.logger.Info("Batch has not finished yet", "batchId", batchID, "state", state)
		case StateSuccess:
			p.logger.Info("Batch finished successfully", "batchId", batchID)
			return nil
		default:
			return apperrors.JobFailed(batchID, state)
		}

		if time.Now().After(deadline) {
			return apperrors.PollTimeout(batchID, p.timeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}
