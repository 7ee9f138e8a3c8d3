package api

import (
	"context"
	"fmt"

	"weather-widget/internal/domain/entity"
)

// WeatherGateway defines the interface for the external current-weather API
type WeatherGateway interface {
	// FetchWeather gets the current weather for a city name.
	// Every call is a fresh round trip; failures are returned as *FetchError.
	FetchWeather(ctx context.Context, city string) (*entity.Weather, error)
}

// FailureKind classifies why a fetch failed.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureStatus  FailureKind = "status"
	FailureDecode  FailureKind = "decode"
)

// FetchError carries the cause of a failed fetch for logs and metrics.
// It is never shown to end users.
type FetchError struct {
	Kind       FailureKind
	City       string
	StatusCode int
	// Message is the provider's error message, when the body had one.
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureStatus:
		if e.Message != "" {
			return fmt.Sprintf("weather request for %q failed with status %d: %s", e.City, e.StatusCode, e.Message)
		}
		return fmt.Sprintf("weather request for %q failed with status %d", e.City, e.StatusCode)
	case FailureDecode:
		return fmt.Sprintf("weather response for %q could not be decoded: %v", e.City, e.Err)
	default:
		return fmt.Sprintf("weather request for %q failed: %v", e.City, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
