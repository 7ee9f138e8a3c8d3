package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/gateway/api"
	"weather-widget/internal/infra/metrics"
	"weather-widget/pkg/log"
	"weather-widget/pkg/msg"
)

type weatherUseCase struct {
	apiGateway api.WeatherGateway
	metrics    *metrics.Metrics
}

func NewWeatherUseCase(apiGateway api.WeatherGateway, m *metrics.Metrics) UseCase {
	return &weatherUseCase{
		apiGateway: apiGateway,
		metrics:    m,
	}
}

// ValidateCity trims raw input and checks it is a plausible city name
func (uc *weatherUseCase) ValidateCity(raw string) (string, error) {
	return ValidateCity(raw)
}

// GetCurrentWeather validates the city and fetches its current weather once
func (uc *weatherUseCase) GetCurrentWeather(ctx context.Context, raw string) (*entity.Weather, error) {
	city, err := ValidateCity(raw)
	if err != nil {
		uc.metrics.ObserveLookup(metrics.OutcomeInvalid)
		return nil, err
	}

	log.Debug(msg.GetMessage("weather.fetch-start", city))

	start := time.Now()
	weather, err := uc.apiGateway.FetchWeather(ctx, city)
	elapsed := time.Since(start)

	if err != nil {
		uc.logFailure(city, elapsed, err)
		if errors.Is(err, context.Canceled) {
			uc.metrics.ObserveLookup(metrics.OutcomeCancelled)
		} else {
			uc.metrics.ObserveFetch(elapsed, string(failureKind(err)))
			uc.metrics.ObserveLookup(metrics.OutcomeFailure)
		}
		return nil, fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}

	uc.metrics.ObserveFetch(elapsed, "")
	uc.metrics.ObserveLookup(metrics.OutcomeSuccess)
	log.Info(msg.GetMessage("weather.fetch-done", city, elapsed),
		zap.String("city", city),
		zap.String("location", weather.Location),
		zap.Duration("latency", elapsed))

	return weather, nil
}

// logFailure records the structured cause that the widget collapses into one message
func (uc *weatherUseCase) logFailure(city string, elapsed time.Duration, err error) {
	fields := []zap.Field{
		zap.String("city", city),
		zap.String("failure_kind", string(failureKind(err))),
		zap.Duration("latency", elapsed),
		zap.Error(err),
	}

	var fetchErr *api.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.StatusCode != 0 {
			fields = append(fields, zap.Int("status", fetchErr.StatusCode))
		}
		if fetchErr.Message != "" {
			fields = append(fields, zap.String("provider_message", fetchErr.Message))
		}
	}

	if errors.Is(err, context.Canceled) {
		log.Warn(msg.GetMessage("weather.fetch-fail", city, err), fields...)
		return
	}
	log.Error(msg.GetMessage("weather.fetch-fail", city, err), fields...)
}

func failureKind(err error) api.FailureKind {
	var fetchErr *api.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return api.FailureNetwork
}
