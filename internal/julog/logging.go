// Package julog defines the Logger interface and the context.Context
// helpers used to carry it. Unlike the standard library, which does not
// define a logger interface (only a struct), julog gives every package in
// this module a least-common-denominator surface so that none of them
// instantiate a concrete logging backend directly.
//
// Packages under internal/ and jtrace MUST accept a Logger (or a
// context.Context carrying one) instead of calling a global logger, so the
// binary that wires the module together controls where messages go.
package julog

import "context"

// Logger is the least common denominator among the logging backends this
// module might be wired to.
type Logger interface {
	// Debugf formats its arguments according to the format, analogous to
	// fmt.Printf, and records the text as a message at Debug level.
	Debugf(format string, args ...interface{})

	// Infof is like Debugf, but logs at Info level.
	Infof(format string, args ...interface{})

	// Warningf is like Debugf, but logs at Warning level.
	Warningf(format string, args ...interface{})

	// Errorf is like Debugf, but logs at Error level.
	Errorf(format string, args ...interface{})
}

type key int

var loggerKey key

// SetFactory sets the Logger factory for this context. The factory is
// called every time Get(ctx) is used.
func SetFactory(ctx context.Context, f func(context.Context) Logger) context.Context {
	return context.WithValue(ctx, loggerKey, f)
}

// Set sets the logger for this context. It can be retrieved with Get(ctx).
func Set(ctx context.Context, l Logger) context.Context {
	return SetFactory(ctx, func(context.Context) Logger { return l })
}

// Get returns the current Logger, or a logger that silently ignores all
// messages if none was set.
func Get(ctx context.Context) (ret Logger) {
	if f, ok := ctx.Value(loggerKey).(func(context.Context) Logger); ok {
		ret = f(ctx)
	}
	if ret == nil {
		ret = Null()
	}
	return ret
}

// Null returns a Logger that silently ignores all messages.
func Null() Logger {
	return nullLogger{}
}

type nullLogger struct{}

func (nullLogger) Debugf(string, ...interface{})   {}
func (nullLogger) Infof(string, ...interface{})    {}
func (nullLogger) Warningf(string, ...interface{}) {}
func (nullLogger) Errorf(string, ...interface{})   {}
