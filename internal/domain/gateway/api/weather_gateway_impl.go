package api

import (
	"context"
	"errors"
	"fmt"

	"weather-widget/internal/domain/entity"
	"weather-widget/internal/domain/model/external"
	"weather-widget/pkg/http"
)

// Response formats OpenWeatherMap can answer in.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

// weatherGatewayImpl implements the WeatherGateway interface against OpenWeatherMap
type weatherGatewayImpl struct {
	httpClient *http.Client
	apiKey     string
	units      string
	format     string
}

// NewWeatherGateway creates a new instance of WeatherGateway with HTTP client.
// apiKey and units are sent with every request as appid and units; format selects
// the JSON or XML (mode=xml) rendition of the response.
func NewWeatherGateway(baseUrl string, apiKey string, units string, format string, clientOptions http.ClientOptions) WeatherGateway {
	if units == "" {
		units = "metric"
	}
	if format == "" {
		format = FormatJSON
	}
	if format == FormatXML {
		clientOptions.DefaultContentType = "application/xml"
	}

	return &weatherGatewayImpl{
		httpClient: http.NewHttpClient(baseUrl, clientOptions),
		apiKey:     apiKey,
		units:      units,
		format:     format,
	}
}

// FetchWeather gets the current weather for a city
func (w *weatherGatewayImpl) FetchWeather(ctx context.Context, city string) (*entity.Weather, error) {
	query := map[string]string{
		"q":     city,
		"appid": w.apiKey,
		"units": w.units,
	}
	if w.format == FormatXML {
		query["mode"] = FormatXML
	}

	request := w.httpClient.Request().
		WithPath("/weather").
		WithQueryParams(query)

	if w.format == FormatXML {
		request.
			WithHeaders(map[string]string{"Accept": "application/xml"}).
			WithSuccessResp(&external.OpenWeatherXMLResponse{}).
			WithErrorResp(&external.OpenWeatherXMLErrorResponse{})
	} else {
		request.
			WithHeaders(map[string]string{"Accept": "application/json"}).
			WithSuccessResp(&external.OpenWeatherResponse{}).
			WithErrorResp(&external.OpenWeatherErrorResponse{})
	}

	successResp, errResp, status, err := request.Execute(ctx)
	if err != nil {
		return nil, classify(city, status, errResp, err)
	}

	weather, ok := toEntity(successResp)
	if !ok {
		return nil, &FetchError{
			Kind:       FailureDecode,
			City:       city,
			StatusCode: status,
			Err:        fmt.Errorf("unexpected response type %T", successResp),
		}
	}
	if len(weather.Conditions) == 0 {
		return nil, &FetchError{
			Kind:       FailureDecode,
			City:       city,
			StatusCode: status,
			Err:        errors.New("response has no weather conditions"),
		}
	}

	return weather, nil
}

// classify maps a pkg/http failure onto a FetchError
func classify(city string, status int, errResp any, err error) *FetchError {
	var statusErr *http.StatusError
	if errors.As(err, &statusErr) {
		fetchErr := &FetchError{Kind: FailureStatus, City: city, StatusCode: statusErr.StatusCode, Err: err}
		switch body := errResp.(type) {
		case *external.OpenWeatherErrorResponse:
			fetchErr.Message = body.Message
		case *external.OpenWeatherXMLErrorResponse:
			fetchErr.Message = body.Message
		}
		return fetchErr
	}

	var decodeErr *http.DecodeError
	if errors.As(err, &decodeErr) {
		return &FetchError{Kind: FailureDecode, City: city, StatusCode: status, Err: err}
	}

	return &FetchError{Kind: FailureNetwork, City: city, StatusCode: status, Err: err}
}

// toEntity converts either API response rendition to the weather entity
func toEntity(successResp any) (*entity.Weather, bool) {
	switch response := successResp.(type) {
	case *external.OpenWeatherResponse:
		if response == nil {
			return nil, false
		}
		conditions := make([]string, 0, len(response.Weather))
		for _, condition := range response.Weather {
			conditions = append(conditions, condition.Description)
		}
		return &entity.Weather{
			Location:    response.Name,
			Temperature: response.Main.Temp,
			FeelsLike:   response.Main.FeelsLike,
			Humidity:    response.Main.Humidity,
			Conditions:  conditions,
		}, true
	case *external.OpenWeatherXMLResponse:
		if response == nil {
			return nil, false
		}
		conditions := make([]string, 0, len(response.Weather))
		for _, condition := range response.Weather {
			conditions = append(conditions, condition.Value)
		}
		return &entity.Weather{
			Location:    response.City.Name,
			Temperature: response.Temp.Value,
			FeelsLike:   response.FeelsLike.Value,
			Humidity:    response.Humidity.Value,
			Conditions:  conditions,
		}, true
	default:
		return nil, false
	}
}
