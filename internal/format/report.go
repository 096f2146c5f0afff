package format

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fakhrymubarak/weather-widget/internal/model"
)

const (
	noRain = "No rain"
	noSnow = "No snow"
)

// DisplayReport is a WeatherReport with every field rendered to the string
// the widget shows.
type DisplayReport struct {
	Location    string
	IconURL     string
	Condition   string
	Description string
	Temperature string
	FeelsLike   string
	Humidity    string
	Pressure    string
	Clouds      string
	Wind        string
	WindBand    string
	Visibility  string
	Rain        string
	Snow        string
	Sunrise     string
	Sunset      string
}

// NewDisplayReport derives display values from r. iconURL is a format string
// with one %s for the icon identifier.
func NewDisplayReport(r *model.WeatherReport, clock *ClockFormatter, iconURL string) DisplayReport {
	cond := r.PrimaryCondition()
	location := r.Name
	if r.Sys.Country != "" {
		location += ", " + r.Sys.Country
	}

	return DisplayReport{
		Location:    location,
		IconURL:     IconURL(iconURL, cond.Icon),
		Condition:   cond.Main,
		Description: cases.Title(language.English).String(cond.Description),
		Temperature: number(r.Main.Temp) + "°C",
		FeelsLike:   number(r.Main.FeelsLike) + "°C",
		Humidity:    strconv.Itoa(r.Main.Humidity) + "%",
		Pressure:    strconv.Itoa(r.Main.Pressure) + " hPa",
		Clouds:      strconv.Itoa(r.Clouds.All) + "%",
		Wind:        number(r.Wind.Speed) + " m/s",
		WindBand:    DescribeWind(r.Wind.Speed),
		Visibility:  number(float64(r.Visibility)/1000) + " km",
		Rain:        Precipitation(r.Rain, noRain),
		Snow:        Precipitation(r.Snow, noSnow),
		Sunrise:     clock.Format(r.Sys.Sunrise),
		Sunset:      clock.Format(r.Sys.Sunset),
	}
}

// Precipitation renders the last-hour volume as "{value} mm", or absent when
// the provider reported none.
func Precipitation(p *model.Precipitation, absent string) string {
	v, ok := p.LastHour()
	if !ok {
		return absent
	}
	return number(v) + " mm"
}

// IconURL fills the icon identifier into the provider's image URL template.
func IconURL(template, icon string) string {
	if icon == "" {
		return ""
	}
	if !strings.Contains(template, "%s") {
		return strings.TrimSuffix(template, "/") + "/" + icon + ".png"
	}
	return fmt.Sprintf(template, icon)
}

// number prints the shortest decimal that round-trips, e.g. 0.25 or 15.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
