// Package testutil provides testing utilities for capturing log output.
package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecords collects log messages emitted through a captured logger.
type LogRecords struct {
	mu       sync.Mutex
	messages []string
}

// Messages returns a copy of the collected messages in emission order.
func (r *LogRecords) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Len returns the number of collected messages.
func (r *LogRecords) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

type captureHandler struct {
	records *LogRecords
	attrs   []slog.Attr
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, rec slog.Record) error {
	h.records.mu.Lock()
	defer h.records.mu.Unlock()
	h.records.messages = append(h.records.messages, rec.Message)
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{records: h.records, attrs: append(h.attrs, attrs...)}
}

func (h *captureHandler) WithGroup(string) slog.Handler { return h }

// CaptureLogger returns a logger whose messages are collected in memory,
// so tests can assert on emitted log lines without process-wide state.
func CaptureLogger() (*slog.Logger, *LogRecords) {
	records := &LogRecords{}
	return slog.New(&captureHandler{records: records}), records
}
