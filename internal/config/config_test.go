package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"livybatch/internal/apperrors"
)

func TestParseLogPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    LogPolicy
		wantErr bool
	}{
		{"", LogAlways, false},
		{"always", LogAlways, false},
		{"on-failure", LogOnFailure, false},
		{"never", LogNever, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLogPolicy(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLogPolicy(%q): expected error", tt.input)
			} else if !errors.Is(err, apperrors.ErrConfig) {
				t.Errorf("ParseLogPolicy(%q): expected config error, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLogPolicy(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLogPolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoadRunnerConfigDefaults(t *testing.T) {
	cfg, err := LoadRunnerConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.LivyBaseURL != "http://localhost:8998" {
		t.Errorf("Unexpected Livy URL %q", cfg.LivyBaseURL)
	}
	if cfg.PollInterval != 20*time.Second {
		t.Errorf("Expected 20s poll interval, got %v", cfg.PollInterval)
	}
	if cfg.PollTimeout != 10*time.Minute {
		t.Errorf("Expected 10m poll timeout, got %v", cfg.PollTimeout)
	}
	if cfg.LogPolicy != LogAlways {
		t.Errorf("Expected log policy always, got %q", cfg.LogPolicy)
	}
	if cfg.MaxAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", cfg.MaxAttempts)
	}
}

func TestLoadRunnerConfigOverrides(t *testing.T) {
	os.Setenv("LIVY_URL", "http://livy.example:8998")
	os.Setenv("POLL_INTERVAL", "5s")
	os.Setenv("VERIFY_IN", "yarn")
	os.Setenv("LOG_POLICY", "on-failure")
	defer func() {
		os.Unsetenv("LIVY_URL")
		os.Unsetenv("POLL_INTERVAL")
		os.Unsetenv("VERIFY_IN")
		os.Unsetenv("LOG_POLICY")
	}()

	cfg, err := LoadRunnerConfig()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.LivyBaseURL != "http://livy.example:8998" {
		t.Errorf("Unexpected Livy URL %q", cfg.LivyBaseURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("Expected 5s interval, got %v", cfg.PollInterval)
	}
	if cfg.VerifyIn != "yarn" {
		t.Errorf("Expected yarn, got %q", cfg.VerifyIn)
	}
	if cfg.LogPolicy != LogOnFailure {
		t.Errorf("Expected on-failure, got %q", cfg.LogPolicy)
	}
}

func TestLoadRunnerConfigRejectsBadLogPolicy(t *testing.T) {
	os.Setenv("LOG_POLICY", "whenever")
	defer os.Unsetenv("LOG_POLICY")

	if _, err := LoadRunnerConfig(); !errors.Is(err, apperrors.ErrConfig) {
		t.Errorf("Expected config error, got %v", err)
	}
}

func TestLoadRunnerConfigRejectsNonPositiveInterval(t *testing.T) {
	os.Setenv("POLL_INTERVAL", "-5s")
	defer os.Unsetenv("POLL_INTERVAL")

	if _, err := LoadRunnerConfig(); !errors.Is(err, apperrors.ErrConfig) {
		t.Errorf("Expected config error, got %v", err)
	}
}
