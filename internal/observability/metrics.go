// Package observability provides metrics for the batch lifecycle runner.
package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Metrics holds all application metrics:
// - Latency: lifecycle duration
// - Traffic: batches submitted, polls, log lines drained
// - Errors: failed lifecycles, verification mismatches
// - Saturation: concurrently running lifecycles
type Metrics struct {
	meter metric.Meter

	BatchesTotal         metric.Int64Counter
	BatchErrorsTotal     metric.Int64Counter
	LifecycleDuration    metric.Float64Histogram
	LifecyclesActive     metric.Int64UpDownCounter
	PollsTotal           metric.Int64Counter
	LogLinesTotal        metric.Int64Counter
	VerificationFailures metric.Int64Counter
}

// NewMetrics creates and registers all metrics with a Prometheus exporter.
func NewMetrics(ctx context.Context) (*Metrics, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter("livybatch")
	m := &Metrics{meter: meter}

	m.BatchesTotal, err = meter.Int64Counter(
		"batches_total",
		metric.WithDescription("Total number of batches submitted"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.BatchErrorsTotal, err = meter.Int64Counter(
		"batch_errors_total",
		metric.WithDescription("Total number of failed batch lifecycles"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.LifecycleDuration, err = meter.Float64Histogram(
		"lifecycle_duration_seconds",
		metric.WithDescription("Batch lifecycle duration in seconds, submission to cleanup"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 60, 120, 300, 600, 900, 1800, 3600),
	)
	if err != nil {
		return nil, nil, err
	}

	m.LifecyclesActive, err = meter.Int64UpDownCounter(
		"lifecycles_active",
		metric.WithDescription("Number of currently running batch lifecycles (saturation)"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.PollsTotal, err = meter.Int64Counter(
		"polls_total",
		metric.WithDescription("Total number of batch status polls"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.LogLinesTotal, err = meter.Int64Counter(
		"log_lines_total",
		metric.WithDescription("Total number of batch log lines drained"),
	)
	if err != nil {
		return nil, nil, err
	}

	m.VerificationFailures, err = meter.Int64Counter(
		"verification_failures_total",
		metric.WithDescription("Total number of secondary status verifications that disagreed"),
	)
	if err != nil {
		return nil, nil, err
	}

	return m, promhttp.Handler(), nil
}

// RecordLifecycleStarted records a batch lifecycle starting.
func (m *Metrics) RecordLifecycleStarted(ctx context.Context) {
	m.BatchesTotal.Add(ctx, 1)
	m.LifecyclesActive.Add(ctx, 1)
}

// RecordLifecycleCompleted records a batch lifecycle finishing (success or failure).
func (m *Metrics) RecordLifecycleCompleted(ctx context.Context, success bool, durationSeconds float64) {
	attrs := metric.WithAttributes(successAttr(success))
	m.LifecycleDuration.Record(ctx, durationSeconds, attrs)
	m.LifecyclesActive.Add(ctx, -1)

	if !success {
		m.BatchErrorsTotal.Add(ctx, 1, attrs)
	}
}

// RecordPoll records one batch status poll and the observed state.
func (m *Metrics) RecordPoll(ctx context.Context, state string) {
	m.PollsTotal.Add(ctx, 1, metric.WithAttributes(stateAttr(state)))
}

// RecordLogLines records a page of drained log lines.
func (m *Metrics) RecordLogLines(ctx context.Context, count int64) {
	m.LogLinesTotal.Add(ctx, count)
}

// RecordVerificationFailure records a secondary backend disagreeing with
// the primary success.
func (m *Metrics) RecordVerificationFailure(ctx context.Context, method string) {
	m.VerificationFailures.Add(ctx, 1, metric.WithAttributes(methodAttr(method)))
}
