// Package testutil provides shared test helpers.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger whose records land in t.Log,
// so they surface only for failing tests or -v runs. Records are rendered
// without timestamps; the test runner already orders output.
func NewTestLogger(t testing.TB) *slog.Logger {
	return slog.New(&testHandler{t: t})
}

type testHandler struct {
	t     testing.TB
	attrs []slog.Attr
}

func (h *testHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testHandler) Handle(_ context.Context, rec slog.Record) error {
	var buf bytes.Buffer
	buf.WriteString(rec.Level.String())
	buf.WriteByte(' ')
	buf.WriteString(rec.Message)
	appendAttr := func(a slog.Attr) {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value.String())
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	rec.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})
	h.t.Helper()
	h.t.Log(buf.String())
	return nil
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)
	return &testHandler{t: h.t, attrs: merged}
}

// WithGroup is accepted but not nested; test output stays flat.
func (h *testHandler) WithGroup(string) slog.Handler { return h }
