package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// LogRecord is a captured log record for assertions.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// recordStore is shared between a CaptureHandler and every handler derived
// from it via WithAttrs or WithGroup, so records land in one buffer.
type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
	t       *testing.T
}

// CaptureHandler collects log records emitted during a test. Attributes
// bound with Logger.With and group prefixes are folded into each captured
// record's Attrs map.
type CaptureHandler struct {
	store  *recordStore
	attrs  []slog.Attr
	prefix string
}

// NewCaptureHandler creates a capturing slog handler. Records are also
// echoed to the test log for debugging.
func NewCaptureHandler(t *testing.T) *CaptureHandler {
	return &CaptureHandler{store: &recordStore{t: t}}
}

// Logger returns a logger backed by the handler.
func (h *CaptureHandler) Logger() *slog.Logger {
	return slog.New(h)
}

// Handle implements slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.prefix+a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	h.store.records = append(h.store.records, LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   attrs,
	})
	h.store.mu.Unlock()

	if h.store.t != nil {
		h.store.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}

	return nil
}

// Enabled implements slog.Handler; tests capture all levels.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler. Bound attributes are qualified with
// the current group prefix, matching JSONHandler semantics.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	bound := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	bound = append(bound, h.attrs...)
	for _, a := range attrs {
		bound = append(bound, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &CaptureHandler{store: h.store, attrs: bound, prefix: h.prefix}
}

// WithGroup implements slog.Handler. Group names become dotted key
// prefixes on subsequently recorded attributes.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &CaptureHandler{store: h.store, attrs: h.attrs, prefix: h.prefix + name + "."}
}

// Records returns a copy of all captured records.
func (h *CaptureHandler) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	records := make([]LogRecord, len(h.store.records))
	copy(records, h.store.records)
	return records
}

// RecordsByLevel returns captured records filtered by level.
func (h *CaptureHandler) RecordsByLevel(level slog.Level) []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	var filtered []LogRecord
	for _, r := range h.store.records {
		if r.Level == level {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
