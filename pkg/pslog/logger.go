// Package pslog is the logging seam of physync. Components accept a Logger
// and never construct one themselves.
package pslog

type Logger interface {
	Info(s string, keyValues ...any)
	Error(s string, keyValues ...any)
	Debug(s string, keyValues ...any)
	Warn(s string, keyValues ...any)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nop{}
}

type nop struct{}

func (nop) Info(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (nop) Debug(string, ...any) {}
func (nop) Warn(string, ...any)  {}

// With returns l with keyValues attached when l supports it, l otherwise.
func With(l Logger, keyValues ...any) Logger {
	if w, ok := l.(interface{ With(...any) Logger }); ok {
		return w.With(keyValues...)
	}
	return l
}
