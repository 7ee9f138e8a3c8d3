package resource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sample = `
app:
  name: ${TEST_APP_NAME:weather-widget}
  port: 8080
  server:
    context-path: "/widget"
openweather:
  api-key: ${TEST_OPENWEATHER_KEY}
  base-url: "${TEST_OW_HOST:https://api.openweathermap.org}/data/2.5"
  timeout: 2s
`

func TestLoadReaderResolvesEnvironment(t *testing.T) {
	t.Setenv("TEST_OPENWEATHER_KEY", "secret")

	props, err := LoadReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}

	if got := props.GetString("app.name"); got != "weather-widget" {
		t.Errorf("default not applied: %q", got)
	}
	if got := props.GetString("openweather.api-key"); got != "secret" {
		t.Errorf("env not resolved: %q", got)
	}
	if got := props.GetString("openweather.base-url"); got != "https://api.openweathermap.org/data/2.5" {
		t.Errorf("embedded reference not resolved: %q", got)
	}
	if got := props.GetInt("app.port"); got != 8080 {
		t.Errorf("port: %d", got)
	}
	if got := props.GetString("app.server.context-path"); got != "/widget" {
		t.Errorf("plain string lost: %q", got)
	}
	if got := props.GetDuration("openweather.timeout"); got != 2*time.Second {
		t.Errorf("timeout: %v", got)
	}
}

func TestMissingEnvWithoutDefaultIsEmpty(t *testing.T) {
	os.Unsetenv("TEST_OPENWEATHER_KEY")

	props, err := LoadReader(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if got := props.GetString("openweather.api-key"); got != "" {
		t.Errorf("expected empty key, got %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_APP_NAME", "from-env")

	props, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := props.GetString("app.name"); got != "from-env" {
		t.Errorf("app.name: %q", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
