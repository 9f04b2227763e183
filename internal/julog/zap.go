package julog

import "go.uber.org/zap"

// zapLogger adapts a *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZap builds a Logger backed by go.uber.org/zap, the structured logging
// library used throughout this module's domain stack. Pass zap.NewProduction
// or zap.NewDevelopment depending on the environment; a nil logger falls
// back to zap.NewNop.
func NewZap(l *zap.Logger) Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &zapLogger{s: l.Sugar()}
}

func (z *zapLogger) Debugf(format string, args ...interface{})   { z.s.Debugf(format, args...) }
func (z *zapLogger) Infof(format string, args ...interface{})    { z.s.Infof(format, args...) }
func (z *zapLogger) Warningf(format string, args ...interface{}) { z.s.Warnf(format, args...) }
func (z *zapLogger) Errorf(format string, args ...interface{})   { z.s.Errorf(format, args...) }
