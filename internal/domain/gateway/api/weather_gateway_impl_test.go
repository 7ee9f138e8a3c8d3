package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"weather-widget/internal/domain/model/external"
	pkghttp "weather-widget/pkg/http"
)

const kyivPayload = `{
  "coord": {"lon": 30.52, "lat": 50.43},
  "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01d"},
              {"id": 701, "main": "Mist", "description": "mist", "icon": "50d"}],
  "main": {"temp": 20, "feels_like": 19, "temp_min": 18.5, "humidity": 65, "pressure": 1012},
  "name": "Kyiv",
  "cod": 200
}`

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchWeatherSendsQueryAndParses(t *testing.T) {
	var calls int32
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if r.Method != http.MethodGet || r.URL.Path != "/data/2.5/weather" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "Kyiv" || q.Get("appid") != "test-key" || q.Get("units") != "metric" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(kyivPayload))
	})

	gateway := NewWeatherGateway(srv.URL+"/data/2.5", "test-key", "", FormatJSON, pkghttp.ClientOptions{})
	weather, err := gateway.FetchWeather(context.Background(), "Kyiv")
	if err != nil {
		t.Fatalf("FetchWeather: %v", err)
	}

	if weather.Location != "Kyiv" || weather.Temperature != 20 || weather.FeelsLike != 19 || weather.Humidity != 65 {
		t.Fatalf("unexpected weather: %+v", weather)
	}
	if len(weather.Conditions) != 2 || weather.Description() != "clear sky" {
		t.Fatalf("conditions not kept in order: %v", weather.Conditions)
	}

	// no caching: a repeated city is a new round trip
	if _, err := gateway.FetchWeather(context.Background(), "Kyiv"); err != nil {
		t.Fatalf("second FetchWeather: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 round trips, got %d", got)
	}
}

func TestFetchWeatherStatusFailure(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	gateway := NewWeatherGateway(srv.URL, "k", "metric", FormatJSON, pkghttp.ClientOptions{})
	_, err := gateway.FetchWeather(context.Background(), "NonExistentCity123")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.Kind != FailureStatus || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected classification: %+v", fetchErr)
	}
	if fetchErr.Message != "city not found" || fetchErr.City != "NonExistentCity123" {
		t.Fatalf("provider message not kept: %+v", fetchErr)
	}
}

func TestFetchWeatherUnauthorizedNumericCod(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
	})

	gateway := NewWeatherGateway(srv.URL, "bad", "metric", FormatJSON, pkghttp.ClientOptions{})
	_, err := gateway.FetchWeather(context.Background(), "Kyiv")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Kind != FailureStatus || fetchErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 status failure, got %v", err)
	}
}

func TestFetchWeatherDecodeFailures(t *testing.T) {
	cases := map[string]string{
		"malformed":     `{"name": "Kyiv", "main": `,
		"no conditions": `{"name": "Kyiv", "main": {"temp": 1}, "weather": []}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			})

			gateway := NewWeatherGateway(srv.URL, "k", "metric", FormatJSON, pkghttp.ClientOptions{})
			_, err := gateway.FetchWeather(context.Background(), "Kyiv")

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) || fetchErr.Kind != FailureDecode {
				t.Fatalf("expected decode failure, got %v", err)
			}
		})
	}
}

func TestFetchWeatherNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gateway := NewWeatherGateway(url, "k", "metric", FormatJSON, pkghttp.ClientOptions{})
	_, err := gateway.FetchWeather(context.Background(), "Kyiv")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Kind != FailureNetwork {
		t.Fatalf("expected network failure, got %v", err)
	}
	if fetchErr.Unwrap() == nil {
		t.Fatal("network failure should keep its cause")
	}
}

const kyivXMLPayload = `<?xml version="1.0" encoding="UTF-8"?>
<current>
  <city id="703448" name="Kyiv"><coord lon="30.5167" lat="50.4333"></coord><country>UA</country></city>
  <temperature value="20" min="18.5" max="21" unit="metric"></temperature>
  <feels_like value="19.5" unit="metric"></feels_like>
  <humidity value="65" unit="%"></humidity>
  <pressure value="1012" unit="hPa"></pressure>
  <weather number="800" value="clear sky" icon="01d"></weather>
</current>`

func TestFetchWeatherXMLMode(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("mode") != "xml" || q.Get("q") != "Kyiv" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		if got := r.Header.Get("Accept"); got != "application/xml" {
			t.Errorf("accept: %q", got)
		}
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		_, _ = w.Write([]byte(kyivXMLPayload))
	})

	gateway := NewWeatherGateway(srv.URL, "k", "metric", FormatXML, pkghttp.ClientOptions{})
	weather, err := gateway.FetchWeather(context.Background(), "Kyiv")
	if err != nil {
		t.Fatalf("FetchWeather: %v", err)
	}
	if weather.Location != "Kyiv" || weather.Temperature != 20 || weather.FeelsLike != 19.5 || weather.Humidity != 65 {
		t.Fatalf("unexpected weather: %+v", weather)
	}
	if weather.Description() != "clear sky" {
		t.Fatalf("description: %q", weather.Description())
	}
}

func TestFetchWeatherXMLLegacyCharsetWithoutContentType(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		// "São Paulo" in ISO-8859-1
		body := []byte(`<?xml version="1.0" encoding="ISO-8859-1"?><current><city name="S`)
		body = append(body, 0xE3)
		body = append(body, []byte(`o Paulo"/><temperature value="25"/><feels_like value="26"/><humidity value="70"/><weather value="few clouds"/></current>`)...)
		_, _ = w.Write(body)
	})

	gateway := NewWeatherGateway(srv.URL, "k", "metric", FormatXML, pkghttp.ClientOptions{})
	weather, err := gateway.FetchWeather(context.Background(), "São Paulo")
	if err != nil {
		t.Fatalf("FetchWeather: %v", err)
	}
	if weather.Location != "São Paulo" {
		t.Fatalf("location: %q", weather.Location)
	}
}

func TestFetchWeatherXMLClientError(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><ClientError><cod>404</cod><message>city not found</message></ClientError>`))
	})

	gateway := NewWeatherGateway(srv.URL, "k", "metric", FormatXML, pkghttp.ClientOptions{})
	_, err := gateway.FetchWeather(context.Background(), "NonExistentCity123")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Kind != FailureStatus || fetchErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 status failure, got %v", err)
	}
	if fetchErr.Message != "city not found" {
		t.Fatalf("provider message: %q", fetchErr.Message)
	}
}

func TestToEntityRejectsMissingBody(t *testing.T) {
	for name, resp := range map[string]any{
		"nil":           nil,
		"nil json":      (*external.OpenWeatherResponse)(nil),
		"nil xml":       (*external.OpenWeatherXMLResponse)(nil),
		"unknown shape": &struct{}{},
	} {
		if weather, ok := toEntity(resp); ok || weather != nil {
			t.Errorf("%s: expected rejection, got %+v", name, weather)
		}
	}
}
