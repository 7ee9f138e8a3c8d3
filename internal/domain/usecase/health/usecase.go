package health

import "weather-widget/internal/domain/model"

type UseCase interface {
	CheckHealth() model.HealthResponse
}

// SessionCounter reports the number of live widget sessions.
type SessionCounter interface {
	Len() int
}
