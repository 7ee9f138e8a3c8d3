package entity

// Weather is the current conditions for one location, in metric units.
type Weather struct {
	Location    string   `json:"location"`
	Temperature float64  `json:"temperature"`
	FeelsLike   float64  `json:"feelsLike"`
	Humidity    float64  `json:"humidity"`
	Conditions  []string `json:"conditions"`
}

// Description returns the first condition, the one shown to the user.
func (w Weather) Description() string {
	if len(w.Conditions) == 0 {
		return ""
	}
	return w.Conditions[0]
}
