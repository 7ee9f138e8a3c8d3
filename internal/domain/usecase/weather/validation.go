package weather

import (
	"errors"
	"strings"

	"weather-widget/pkg/util/numberutils"
)

// User-facing messages. Causes behind a fetch failure are logged, never shown.
const (
	MessageInvalidCity = "Please enter a valid city name"
	MessageFetchFailed = "Failed to fetch weather data"
)

// ErrInvalidCity is returned for input that is empty after trimming or only digits.
var ErrInvalidCity = errors.New(MessageInvalidCity)

// ValidateCity returns the trimmed city, or ErrInvalidCity.
func ValidateCity(raw string) (string, error) {
	city := strings.TrimSpace(raw)
	if city == "" || numberutils.IsDigits(city) {
		return "", ErrInvalidCity
	}
	return city, nil
}

// UserMessage maps a lookup error to the text shown in the widget.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidCity) {
		return MessageInvalidCity
	}
	return MessageFetchFailed
}
