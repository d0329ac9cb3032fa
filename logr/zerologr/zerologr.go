// Package zerologr adapts github.com/rs/zerolog to logr.Logger.
package zerologr

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/huangjunwen/taskserver/logr"
)

// Logger is implements github.com/huangjunwen/taskserver/logr::Logger interface using
// github.com/rs/zerolog::Logger.
type Logger zerolog.Logger

var (
	_ logr.Logger = (*Logger)(nil)
)

// New wraps a zerolog logger.
func New(l zerolog.Logger) *Logger {
	return (*Logger)(&l)
}

func (logger *Logger) Info(msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	withKeysAndValues(l.Info(), keysAndValues).Msg(msg)
}

func (logger *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l := (*zerolog.Logger)(logger)
	withKeysAndValues(l.Error().Err(err), keysAndValues).Msg(msg)
}

func (logger *Logger) WithValues(keysAndValues ...interface{}) logr.Logger {
	l := (*zerolog.Logger)(logger)
	ctx := l.With()
	for i := 0; i < len(keysAndValues); i += 2 {
		k, v := pair(keysAndValues, i)
		ctx = ctx.Interface(k, v)
	}
	child := ctx.Logger()
	return (*Logger)(&child)
}

func withKeysAndValues(ev *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i < len(keysAndValues); i += 2 {
		k, v := pair(keysAndValues, i)
		ev = ev.Interface(k, v)
	}
	return ev
}

// pair returns the i-th key/value. Non-string keys are formatted, a missing value is nil.
func pair(keysAndValues []interface{}, i int) (string, interface{}) {
	k, ok := keysAndValues[i].(string)
	if !ok {
		k = fmt.Sprint(keysAndValues[i])
	}
	if i+1 >= len(keysAndValues) {
		return k, nil
	}
	return k, keysAndValues[i+1]
}
