package weather

import (
	"context"

	"weather-widget/internal/domain/entity"
)

type UseCase interface {
	// ValidateCity trims raw input and checks it is a plausible city name
	ValidateCity(raw string) (string, error)

	// GetCurrentWeather validates the city and fetches its current weather once
	GetCurrentWeather(ctx context.Context, city string) (*entity.Weather, error)
}
