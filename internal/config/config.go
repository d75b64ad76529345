// Package config provides configuration loading from environment variables.
package config

import (
	"time"

	"livybatch/internal/apperrors"
)

// LogPolicy controls when the batch log is drained on exit.
type LogPolicy string

const (
	LogAlways    LogPolicy = "always"
	LogOnFailure LogPolicy = "on-failure"
	LogNever     LogPolicy = "never"
)

// ParseLogPolicy validates a configured log policy string.
func ParseLogPolicy(s string) (LogPolicy, error) {
	switch LogPolicy(s) {
	case LogAlways, LogOnFailure, LogNever:
		return LogPolicy(s), nil
	case "":
		return LogAlways, nil
	default:
		return "", apperrors.Config("log policy",
			"unknown policy '"+s+"', allowed policies: [always on-failure never]")
	}
}

// RunnerConfig holds configuration for one batch lifecycle runner.
type RunnerConfig struct {
	LivyBaseURL  string
	SparkBaseURL string
	YarnBaseURL  string
	HTTPTimeout  time.Duration

	PollInterval time.Duration // delay between status polls
	PollTimeout  time.Duration // wall-clock budget for polling

	VerifyIn  string    // "", "spark" or "yarn"; validated by verify.ParseMethod
	LogPolicy LogPolicy // when to drain the batch log

	MaxAttempts int    // lifecycle invocations before giving up
	MetricsPort string // empty disables the metrics endpoint
}

// LoadRunnerConfig loads runner configuration from environment variables.
func LoadRunnerConfig() (*RunnerConfig, error) {
	logPolicy, err := ParseLogPolicy(GetEnv("LOG_POLICY", "always"))
	if err != nil {
		return nil, err
	}

	cfg := &RunnerConfig{
		LivyBaseURL:  GetEnv("LIVY_URL", "http://localhost:8998"),
		SparkBaseURL: GetEnv("SPARK_URL", "http://localhost:18080"),
		YarnBaseURL:  GetEnv("YARN_URL", "http://localhost:8088"),
		HTTPTimeout:  GetDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		PollInterval: GetDurationEnv("POLL_INTERVAL", 20*time.Second),
		PollTimeout:  GetDurationEnv("POLL_TIMEOUT", 10*time.Minute),
		VerifyIn:     GetEnv("VERIFY_IN", ""),
		LogPolicy:    logPolicy,
		MaxAttempts:  GetIntEnv("MAX_ATTEMPTS", 1),
		MetricsPort:  GetEnv("METRICS_PORT", ""),
	}

	if cfg.PollInterval <= 0 {
		return nil, apperrors.Config("POLL_INTERVAL", "must be positive")
	}
	if cfg.PollTimeout <= 0 {
		return nil, apperrors.Config("POLL_TIMEOUT", "must be positive")
	}
	if cfg.MaxAttempts < 1 {
		return nil, apperrors.Config("MAX_ATTEMPTS", "must be at least 1")
	}
	return cfg, nil
}
