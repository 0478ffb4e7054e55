package slogadapter

import (
	"log/slog"

	"github.com/QYUbit/physync/pkg/pslog"
)

// Adapter forwards pslog calls to a *slog.Logger. Key-value pairs are
// passed through unchanged, so slog.Attr values work too.
type Adapter struct {
	logger *slog.Logger
}

var _ pslog.Logger = (*Adapter)(nil)

// New wraps logger; a nil logger uses slog.Default.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{logger: logger}
}

func (a *Adapter) Info(msg string, keysAndValues ...any) {
	a.logger.Info(msg, keysAndValues...)
}

func (a *Adapter) Error(msg string, keysAndValues ...any) {
	a.logger.Error(msg, keysAndValues...)
}

func (a *Adapter) Debug(msg string, keysAndValues ...any) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a *Adapter) Warn(msg string, keysAndValues ...any) {
	a.logger.Warn(msg, keysAndValues...)
}

// With returns an adapter whose records carry keysAndValues.
func (a *Adapter) With(keysAndValues ...any) pslog.Logger {
	return &Adapter{logger: a.logger.With(keysAndValues...)}
}
