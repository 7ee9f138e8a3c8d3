package health

import (
	"net/url"
	"strconv"

	"weather-widget/internal/domain/model"
)

type healthUseCase struct {
	applicationName  string
	providerBaseURL  string
	apiKeyConfigured bool
	sessions         SessionCounter
}

func NewHealthUseCase(applicationName string, providerBaseURL string, apiKeyConfigured bool, sessions SessionCounter) UseCase {
	return &healthUseCase{
		applicationName:  applicationName,
		providerBaseURL:  providerBaseURL,
		apiKeyConfigured: apiKeyConfigured,
		sessions:         sessions,
	}
}

// CheckHealth reports configuration health only; it never calls the weather provider,
// so probes do not spend API quota.
func (useCase *healthUseCase) CheckHealth() model.HealthResponse {
	provider := useCase.providerHealth()
	sessions := model.ComponentHealthStatus{
		Status:  model.StatusUp,
		Details: map[string]string{"live": strconv.Itoa(useCase.sessions.Len())},
	}

	return model.HealthResponse{
		Status:          provider.Status,
		Application:     useCase.applicationName,
		WeatherProvider: provider,
		Sessions:        sessions,
	}
}

func (useCase *healthUseCase) providerHealth() model.ComponentHealthStatus {
	details := map[string]string{
		"api_key_configured": strconv.FormatBool(useCase.apiKeyConfigured),
	}

	status := model.StatusUp
	parsed, err := url.Parse(useCase.providerBaseURL)
	if err != nil || parsed.Host == "" {
		status = model.StatusDown
		details["base_url"] = "invalid"
	} else {
		details["host"] = parsed.Host
	}
	if !useCase.apiKeyConfigured {
		status = model.StatusDown
	}

	return model.ComponentHealthStatus{Status: status, Details: details}
}
