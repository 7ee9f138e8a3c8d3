package configs

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"weather-widget/pkg/msg"
	"weather-widget/pkg/resource"
)

//go:embed application.yml
var defaultProperties []byte

//go:embed messages.yml
var defaultMessages []byte

// ErrMissingAPIKey is returned by Validate when no OpenWeatherMap key is configured.
var ErrMissingAPIKey = errors.New("openweather.api-key is required (set OPENWEATHER_API_KEY)")

type EnvConfig struct {
	ApplicationName string
	Port            string
	ContextPath     string
	ShutdownTimeout time.Duration
	OpenWeather     OpenWeatherConfig
	Widget          WidgetConfig
}

type OpenWeatherConfig struct {
	BaseURL string
	APIKey  string
	Units   string
	// Format is the provider response format, json or xml.
	Format  string
	Timeout time.Duration
}

type WidgetConfig struct {
	DefaultCity string
	RenderWait  time.Duration
	SessionTTL  time.Duration
	MaxSessions int
	SweepCron   string
}

// Load builds the configuration from PROPERTIES_FILE_PATH when set, otherwise from the
// embedded application.yml. Messages are loaded from MESSAGES_FILE_PATH or the embedded
// messages.yml.
func Load() (*EnvConfig, error) {
	if err := loadMessages(); err != nil {
		return nil, err
	}

	var (
		props *resource.Properties
		err   error
	)
	if path, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		props, err = resource.Load(path)
	} else {
		props, err = resource.LoadReader(bytes.NewReader(defaultProperties))
	}
	if err != nil {
		return nil, err
	}

	return FromProperties(props), nil
}

func loadMessages() error {
	if err := msg.Load(bytes.NewReader(defaultMessages)); err != nil {
		return err
	}
	if path, ok := os.LookupEnv("MESSAGES_FILE_PATH"); ok {
		return msg.Init(path)
	}
	return nil
}

// FromProperties maps properties onto an EnvConfig, filling defaults for absent values.
func FromProperties(props *resource.Properties) *EnvConfig {
	return &EnvConfig{
		ApplicationName: getStringOrDefault(props, "app.name", "weather-widget"),
		Port:            getStringOrDefault(props, "app.server.port", "8080"),
		ContextPath:     strings.TrimRight(props.GetString("app.server.context-path"), "/"),
		ShutdownTimeout: getDurationOrDefault(props, "app.server.shutdown-timeout", 10*time.Second),
		OpenWeather: OpenWeatherConfig{
			BaseURL: getStringOrDefault(props, "openweather.base-url", "https://api.openweathermap.org/data/2.5"),
			APIKey:  strings.TrimSpace(props.GetString("openweather.api-key")),
			Units:   getStringOrDefault(props, "openweather.units", "metric"),
			Format:  getStringOrDefault(props, "openweather.format", "json"),
			Timeout: props.GetDuration("openweather.timeout"),
		},
		Widget: WidgetConfig{
			DefaultCity: getStringOrDefault(props, "widget.default-city", "Kyiv"),
			RenderWait:  getDurationOrDefault(props, "widget.render-wait", 3*time.Second),
			SessionTTL:  getDurationOrDefault(props, "widget.session-ttl", 30*time.Minute),
			MaxSessions: getIntOrDefault(props, "widget.max-sessions", 1000),
			SweepCron:   getStringOrDefault(props, "widget.sweep-cron", "@every 1m"),
		},
	}
}

// Validate reports configuration that would only surface later as failed remote calls.
func (c *EnvConfig) Validate() error {
	var errs []error
	if c.OpenWeather.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	if c.OpenWeather.BaseURL == "" {
		errs = append(errs, errors.New("openweather.base-url is required"))
	}
	if c.OpenWeather.Format != "json" && c.OpenWeather.Format != "xml" {
		errs = append(errs, fmt.Errorf("openweather.format must be json or xml, got %q", c.OpenWeather.Format))
	}
	if c.OpenWeather.Timeout < 0 {
		errs = append(errs, fmt.Errorf("openweather.timeout must be non-negative, got %s", c.OpenWeather.Timeout))
	}
	if c.Widget.MaxSessions < 1 {
		errs = append(errs, fmt.Errorf("widget.max-sessions must be positive, got %d", c.Widget.MaxSessions))
	}
	return errors.Join(errs...)
}

func getStringOrDefault(props *resource.Properties, key, defaultValue string) string {
	value := props.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationOrDefault(props *resource.Properties, key string, defaultValue time.Duration) time.Duration {
	if props.GetString(key) == "" {
		return defaultValue
	}
	return props.GetDuration(key)
}

func getIntOrDefault(props *resource.Properties, key string, defaultValue int) int {
	if props.GetString(key) == "" {
		return defaultValue
	}
	return props.GetInt(key)
}
