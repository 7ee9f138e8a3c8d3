package external

// OpenWeatherResponse is the subset of the OpenWeatherMap current weather payload
// (GET /data/2.5/weather) used by the widget. Other fields are ignored.
type OpenWeatherResponse struct {
	Name    string                 `json:"name"`
	Main    OpenWeatherMain        `json:"main"`
	Weather []OpenWeatherCondition `json:"weather"`
}

type OpenWeatherMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
}

type OpenWeatherCondition struct {
	Description string `json:"description"`
}

// OpenWeatherErrorResponse is the error body OpenWeatherMap returns with non-2xx statuses.
// cod is a string for some errors and a number for others.
type OpenWeatherErrorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

// OpenWeatherXMLResponse is the same subset of the current weather payload requested
// with mode=xml.
type OpenWeatherXMLResponse struct {
	City      OpenWeatherXMLCity        `xml:"city"`
	Temp      OpenWeatherXMLValue       `xml:"temperature"`
	FeelsLike OpenWeatherXMLValue       `xml:"feels_like"`
	Humidity  OpenWeatherXMLValue       `xml:"humidity"`
	Weather   []OpenWeatherXMLCondition `xml:"weather"`
}

type OpenWeatherXMLCity struct {
	Name string `xml:"name,attr"`
}

type OpenWeatherXMLValue struct {
	Value float64 `xml:"value,attr"`
}

type OpenWeatherXMLCondition struct {
	Value string `xml:"value,attr"`
}

// OpenWeatherXMLErrorResponse is the ClientError body returned with mode=xml.
type OpenWeatherXMLErrorResponse struct {
	Cod     string `xml:"cod"`
	Message string `xml:"message"`
}
