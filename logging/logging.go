// Package logging holds the process-wide structured logger used by the
// runtime packages. Nothing is logged until SetLogger is called.
package logging

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l for every package of the module. nil restores the
// silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the active logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LineWriter is a sink that accepts whole lines, such as a UART or the
// host console.
type LineWriter interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// NewLineHandler returns a text handler that emits one WriteLineBytes call
// per record.
func NewLineHandler(w LineWriter, opts *slog.HandlerOptions) slog.Handler {
	return slog.NewTextHandler(&lineSink{w: w}, opts)
}

type lineSink struct {
	mu  sync.Mutex
	w   LineWriter
	buf []byte
}

func (s *lineSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, p...)
	for {
		i := bytes.IndexByte(s.buf, '\n')
		if i < 0 {
			break
		}
		s.w.WriteLineBytes(s.buf[:i])
		s.buf = s.buf[i+1:]
	}
	if len(s.buf) == 0 {
		s.buf = s.buf[:0:0]
	}
	return len(p), nil
}
