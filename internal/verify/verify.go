// Package verify cross-checks a finished batch against a secondary
// status source. Livy running on YARN reports success even when the
// underlying Spark job failed, so the terminal status is re-read from
// either the Spark REST API or the YARN ResourceManager REST API.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"livybatch/internal/apperrors"
	"livybatch/internal/jsonpath"
	"livybatch/pkg/restcall"
)

// Method selects the verification backend. The set is closed; unknown
// values are rejected by ParseMethod at configuration time.
type Method string

const (
	MethodNone  Method = "none"
	MethodSpark Method = "spark"
	MethodYarn  Method = "yarn"
)

const (
	sparkEndpoint = "api/v1/applications"
	yarnEndpoint  = "ws/v1/cluster/apps"

	// expectedStatus is the terminal status both backends must report.
	expectedStatus = "SUCCEEDED"
)

// ParseMethod validates a configured verification method string.
// An empty string means no verification.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodNone, MethodSpark, MethodYarn:
		return Method(s), nil
	case "":
		return MethodNone, nil
	default:
		return "", apperrors.Config("verification method",
			fmt.Sprintf("unknown method '%s', allowed methods: [%s %s]", s, MethodSpark, MethodYarn))
	}
}

// Verifier queries one configured backend for an application's terminal
// status.
type Verifier struct {
	method Method
	spark  *restcall.Client
	yarn   *restcall.Client
	logger *slog.Logger
}

// Config holds the endpoints for the verification backends. Only the
// base URL matching the selected method is required.
type Config struct {
	Method       Method
	SparkBaseURL string
	YarnBaseURL  string
	HTTPTimeout  time.Duration
}

// New creates a verifier for the configured backend.
func New(cfg Config, logger *slog.Logger) *Verifier {
	v := &Verifier{
		method: cfg.Method,
		logger: logger.With("component", "verify"),
	}
	if cfg.Method == MethodSpark {
		v.spark = restcall.New("spark", cfg.SparkBaseURL, cfg.HTTPTimeout)
	}
	if cfg.Method == MethodYarn {
		v.yarn = restcall.New("yarn", cfg.YarnBaseURL, cfg.HTTPTimeout)
	}
	return v
}

// Enabled reports whether a backend is configured.
func (v *Verifier) Enabled() bool {
	return v.method != MethodNone
}

// Method returns the configured backend.
func (v *Verifier) Method() Method {
	return v.method
}

// Verify checks the application's terminal status against the
// configured backend and fails on the first mismatch.
func (v *Verifier) Verify(ctx context.Context, appID string) error {
	switch v.method {
	case MethodSpark:
		return v.verifySpark(ctx, appID)
	case MethodYarn:
		return v.verifyYarn(ctx, appID)
	default:
		return nil
	}
}

// verifySpark lists the application's jobs and requires every one of
// them to have succeeded. An application reporting zero jobs verifies
// vacuously: there is no mismatch to find. That case is logged at warn
// level because it can also mean the job never ran any work.
func (v *Verifier) verifySpark(ctx context.Context, appID string) error {
	v.logger.Info("Getting app status from Spark REST API", "appId", appID)

	resp, err := v.spark.Get(ctx, fmt.Sprintf("%s/%s/jobs", sparkEndpoint, appID))
	if err != nil {
		return apperrors.Transport("spark.jobs", err)
	}

	jobs, err := jsonpath.List("spark.jobs", resp.Body, resp.ContentType(), "")
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		v.logger.Warn("Application reported no jobs, treating as verified", "appId", appID)
		return nil
	}

	for _, raw := range jobs {
		job, ok := raw.(map[string]any)
		if !ok {
			return apperrors.Shape("spark.jobs", "$.jobId, $.status",
				jsonpath.Render(resp.ContentType(), resp.Body),
				fmt.Errorf("job entry is %T, not an object", raw))
		}
		jobID, idOK := job["jobId"].(float64)
		status, statusOK := job["status"].(string)
		if !idOK || !statusOK {
			return apperrors.Shape("spark.jobs", "$.jobId, $.status",
				jsonpath.Render(resp.ContentType(), resp.Body),
				fmt.Errorf("job entry missing jobId or status"))
		}

		v.logger.Info("Spark job status", "appId", appID, "jobId", int64(jobID), "status", status)
		if status != expectedStatus {
			return apperrors.VerificationMismatch(
				fmt.Sprintf("job id '%d' associated with application '%s'", int64(jobID), appID),
				appID, status, expectedStatus)
		}
	}
	return nil
}

// verifyYarn reads the application's finalStatus from the YARN
// ResourceManager.
func (v *Verifier) verifyYarn(ctx context.Context, appID string) error {
	v.logger.Info("Getting app status from YARN RM REST API", "appId", appID)

	resp, err := v.yarn.Get(ctx, fmt.Sprintf("%s/%s", yarnEndpoint, appID))
	if err != nil {
		return apperrors.Transport("yarn.app", err)
	}

	status, err := jsonpath.String("yarn.app", resp.Body, resp.ContentType(), "app.finalStatus")
	if err != nil {
		return err
	}
	if status != expectedStatus {
		return apperrors.VerificationMismatch(fmt.Sprintf("YARN app '%s'", appID), appID, status, expectedStatus)
	}
	return nil
}
