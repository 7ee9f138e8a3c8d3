package http

import (
	"go.uber.org/zap"

	"weather-widget/pkg/log"
)

// HTTPLogger interface defines methods for logging HTTP requests and responses.
// URLs arrive with credentials already redacted.
type HTTPLogger interface {
	// LogRequest is called before the request is sent
	LogRequest(url string)

	// LogResponseSuccess is called immediately after receiving a successful response (non-error HTTP status)
	LogResponseSuccess(url string, httpStatus int, responseBody string, latency int64)

	// LogResponseError is called after a transport failure, an error HTTP status or an undecodable body
	LogResponseError(url string, httpStatus int, responseBody string, latency int64, err error)
}

// ZapLogger writes HTTP events through the application zap logger.
// Request events and response bodies are logged at debug level.
type ZapLogger struct{}

func NewZapLogger() *ZapLogger {
	return &ZapLogger{}
}

func (ZapLogger) LogRequest(url string) {
	log.Debug("http request", zap.String("url", url))
}

func (ZapLogger) LogResponseSuccess(url string, httpStatus int, responseBody string, latency int64) {
	log.Info("http response",
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency))
	log.Debug("http response body", zap.String("url", url), zap.String("body", responseBody))
}

func (ZapLogger) LogResponseError(url string, httpStatus int, responseBody string, latency int64, err error) {
	log.Warn("http response error",
		zap.String("url", url),
		zap.Int("status", httpStatus),
		zap.Int64("latency_ms", latency),
		zap.String("body", responseBody),
		zap.Error(err))
}
