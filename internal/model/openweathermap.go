package model

// WeatherReport is the current-weather body returned by OpenWeatherMap with
// units=metric. Only the fields the widget shows are decoded.
type WeatherReport struct {
	Name       string         `json:"name" validate:"required"`
	Sys        Sys            `json:"sys"`
	Main       Main           `json:"main"`
	Weather    []Condition    `json:"weather" validate:"required,min=1,dive"`
	Wind       Wind           `json:"wind"`
	Clouds     Clouds         `json:"clouds"`
	Visibility int            `json:"visibility"`
	Rain       *Precipitation `json:"rain,omitempty"`
	Snow       *Precipitation `json:"snow,omitempty"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

type Main struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon" validate:"required"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

type Clouds struct {
	All int `json:"all"`
}

// Precipitation holds the volume for the last hour in mm. The provider
// omits the whole object when there is none.
type Precipitation struct {
	OneHour *float64 `json:"1h,omitempty"`
}

// PrimaryCondition returns the first weather entry. Validated reports always
// have one.
func (r *WeatherReport) PrimaryCondition() Condition {
	if len(r.Weather) == 0 {
		return Condition{}
	}
	return r.Weather[0]
}

// LastHour returns the last-hour volume and whether it was reported.
func (p *Precipitation) LastHour() (float64, bool) {
	if p == nil || p.OneHour == nil {
		return 0, false
	}
	return *p.OneHour, true
}
