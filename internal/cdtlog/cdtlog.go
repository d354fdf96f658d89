// Package cdtlog is the pipeline driver's diagnostic sink. It wraps a single
// package-level *zap.Logger rather than threading a logger through every
// call, mirroring how the teacher's debug-draw helpers reach for package
// globals instead of plumbing a context object through the triangulation
// walk. Library code defaults to silence; callers that want to see anything
// (tests, the CLI driver) install a logger with SetLogger.
package cdtlog

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the package logger. Passing nil restores silence.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}

// NewDevelopment builds a human-readable console logger at debug level,
// suitable for SetLogger during local runs and the CLI driver.
func NewDevelopment() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return l
}

func Debug(msg string, fields ...zap.Field) { logger.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { logger.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { logger.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { logger.Error(msg, fields...) }
