// livy-batch submits a Spark batch to Livy and follows it to completion.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livybatch/internal/apperrors"
	"livybatch/internal/batch"
	"livybatch/internal/config"
	"livybatch/internal/livy"
	"livybatch/internal/observability"
	"livybatch/internal/verify"
	"livybatch/pkg/backoff"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("Batch lifecycle failed", "error", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) != 2 {
		return apperrors.Config("arguments", "usage: livy-batch <submission.json>")
	}

	cfg, err := config.LoadRunnerConfig()
	if err != nil {
		return err
	}

	method, err := verify.ParseMethod(cfg.VerifyIn)
	if err != nil {
		return err
	}

	sub, err := loadSubmission(os.Args[1])
	if err != nil {
		return err
	}

	logger := slog.Default()

	// Metrics are opt-in for a one-shot CLI run.
	var metrics *observability.Metrics
	if cfg.MetricsPort != "" {
		m, handler, err := observability.NewMetrics(ctx)
		if err != nil {
			return err
		}
		metrics = m
		go serveMetrics(cfg.MetricsPort, handler)
	}

	client := livy.NewClient(cfg.LivyBaseURL, cfg.HTTPTimeout, logger)
	poller := batch.NewPoller(client, cfg.PollInterval, cfg.PollTimeout, logger, metrics)

	var verifier *verify.Verifier
	if method != verify.MethodNone {
		verifier = verify.New(verify.Config{
			Method:       method,
			SparkBaseURL: cfg.SparkBaseURL,
			YarnBaseURL:  cfg.YarnBaseURL,
			HTTPTimeout:  cfg.HTTPTimeout,
		}, logger)
	}

	runner := batch.NewRunner(batch.RunnerConfig{
		Livy:      client,
		Poller:    poller,
		Verifier:  verifier,
		LogPolicy: cfg.LogPolicy,
		Logger:    logger,
		Metrics:   metrics,
	})

	// Each attempt is a whole fresh lifecycle. Partial retries would
	// leak batches, so failures restart from submission.
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		batchID, err := runner.Run(ctx, sub)
		if err == nil {
			slog.Info("Batch completed", "batchId", batchID, "attempt", attempt)
			return nil
		}
		lastErr = err

		if errors.Is(err, apperrors.ErrConfig) || ctx.Err() != nil {
			break
		}
		if attempt < cfg.MaxAttempts {
			delay := backoff.Config{}.Delay(attempt)
			slog.Warn("Lifecycle attempt failed, retrying",
				"attempt", attempt, "delay", delay, "error", err)
			if err := backoff.Sleep(ctx, delay); err != nil {
				break
			}
		}
	}
	return lastErr
}

// loadSubmission reads a batch submission from a JSON file. Unknown
// fields are rejected to catch typos in job definitions early.
func loadSubmission(path string) (*batch.Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Config("submission", err.Error())
	}
	defer f.Close()

	var sub batch.Submission
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sub); err != nil {
		return nil, apperrors.Config("submission", fmt.Sprintf("invalid submission file %s: %v", path, err))
	}
	if sub.File == "" {
		return nil, apperrors.Config("submission", "'file' is required")
	}
	return &sub, nil
}

func serveMetrics(port string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", handler)
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	slog.Info("Starting metrics server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", "error", err)
	}
}
