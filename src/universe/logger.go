package universe

import (
	"context"
	"log/slog"
	"sync/atomic"
)

//nopHandler drops every record, Enabled is false so messages are never formatted
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

//SetLogger sets the logger used by the universe and the packages driving it
//the default logger is silent, nil restores it
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

//Logger returns the current logger
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
