// Package logr defines the Logger interface used by library packages.
// Library code logs through this interface only and defaults to Nop; binaries
// choose the backend (see logr/zerologr).
package logr

// Logger is a sub-interface of github.com/go-logr/logr::Logger,
// which i think it's enough in most cases.
type Logger interface {
	// Info logs a non-error message with the given key/value pairs as context.
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error, with the given message and key/value pairs as context.
	Error(err error, msg string, keysAndValues ...interface{})

	// WithValues adds some key-value pairs of context to a logger.
	WithValues(keysAndValues ...interface{}) Logger
}

// Func is a Logger calling itself for each entry. err is nil for Info entries and
// keysAndValues includes the ones added by WithValues (first).
type Func func(err error, msg string, keysAndValues []interface{})

var (
	_ Logger = Func(nil)
)

func (f Func) Info(msg string, keysAndValues ...interface{}) {
	f(nil, msg, keysAndValues)
}

func (f Func) Error(err error, msg string, keysAndValues ...interface{}) {
	f(err, msg, keysAndValues)
}

func (f Func) WithValues(keysAndValues ...interface{}) Logger {
	values := append([]interface{}(nil), keysAndValues...)
	return Func(func(err error, msg string, kv []interface{}) {
		all := make([]interface{}, 0, len(values)+len(kv))
		all = append(append(all, values...), kv...)
		f(err, msg, all)
	})
}

type nopLogger struct{}

func (l nopLogger) Info(msg string, keysAndValues ...interface{}) {}

func (l nopLogger) Error(err error, msg string, keysAndValues ...interface{}) {}

func (l nopLogger) WithValues(keysAndValues ...interface{}) Logger { return l }

var (
	// Nop does nothing.
	Nop Logger = nopLogger{}
)
