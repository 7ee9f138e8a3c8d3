package log

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.TimeKey = "@timestamp"
	encoderConfig.CallerKey = "logger_name"

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.InfoLevel,
	)

	logger.Store(zap.New(core,
		zap.Fields(zap.String("logName", applicationName())),
		zap.AddCallerSkip(1)))
}

func applicationName() string {
	if name, ok := os.LookupEnv("APPLICATION_NAME"); ok {
		return name
	}
	return "weather-widget"
}

// Replace swaps the package logger, e.g. for an observer core in tests.
// It returns a function that restores the previous logger. Goroutines still
// logging during the swap write to either the old or the new logger.
func Replace(l *zap.Logger) func() {
	prev := logger.Swap(l)
	return func() {
		logger.CompareAndSwap(l, prev)
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = logger.Load().Sync()
}

// Info logs a message at InfoLevel. The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
func Info(message string, fields ...zap.Field) {
	logger.Load().Info(message, fields...)
}

// Debug logs a message at DebugLevel.
func Debug(message string, fields ...zap.Field) {
	logger.Load().Debug(message, fields...)
}

// Warn logs a message at WarnLevel.
func Warn(message string, fields ...zap.Field) {
	logger.Load().Warn(message, fields...)
}

// Error logs a message at ErrorLevel. The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
func Error(message string, fields ...zap.Field) {
	logger.Load().Error(message, fields...)
}

// Fatal logs a message at FatalLevel, then calls os.Exit.
func Fatal(message string, fields ...zap.Field) {
	logger.Load().Fatal(message, fields...)
}
