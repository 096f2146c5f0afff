package handler

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fakhrymubarak/weather-widget/internal/format"
	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/service"
)

const (
	title      = "Weather App"
	idleHint   = "Enter a city to see current conditions."
	panelWidth = 56
)

type palette struct {
	text, muted, accent, danger, panel lipgloss.Color
}

var (
	darkPalette = palette{
		text:   lipgloss.Color("#F9FAFB"),
		muted:  lipgloss.Color("#9CA3AF"),
		accent: lipgloss.Color("#3B82F6"),
		danger: lipgloss.Color("#EF4444"),
		panel:  lipgloss.Color("#1F2937"),
	}
	lightPalette = palette{
		text:   lipgloss.Color("#111827"),
		muted:  lipgloss.Color("#6B7280"),
		accent: lipgloss.Color("#2563EB"),
		danger: lipgloss.Color("#DC2626"),
		panel:  lipgloss.Color("#F3F4F6"),
	}
)

type styles struct {
	title, hint, error, heading, line, panel lipgloss.Style
}

// Renderer draws the widget. Colors are only emitted when out is a terminal
// that supports them.
type Renderer struct {
	lg      *lipgloss.Renderer
	clock   *format.ClockFormatter
	iconURL string
	dark    styles
	light   styles
}

// NewRenderer binds a renderer to out. iconURL is the provider image URL
// template with one %s.
func NewRenderer(out io.Writer, clock *format.ClockFormatter, iconURL string) *Renderer {
	lg := lipgloss.NewRenderer(out)
	return &Renderer{
		lg:      lg,
		clock:   clock,
		iconURL: iconURL,
		dark:    newStyles(lg, darkPalette),
		light:   newStyles(lg, lightPalette),
	}
}

func newStyles(lg *lipgloss.Renderer, p palette) styles {
	return styles{
		title:   lg.NewStyle().Bold(true).Foreground(p.accent),
		hint:    lg.NewStyle().Foreground(p.muted),
		error:   lg.NewStyle().Bold(true).Foreground(p.danger),
		heading: lg.NewStyle().Bold(true).Foreground(p.text),
		line:    lg.NewStyle().Foreground(p.text),
		panel: lg.NewStyle().
			Background(p.panel).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(1, 2).
			Width(panelWidth),
	}
}

// Render returns the full view for state under theme.
func (r *Renderer) Render(state service.QueryState, theme model.Theme) string {
	s := r.light
	if theme.IsDark() {
		s = r.dark
	}

	var b strings.Builder
	b.WriteString(s.title.Render(title + " (" + theme.String() + " mode)"))
	b.WriteString("\n")
	b.WriteString(s.hint.Render("City: " + state.City))
	b.WriteString("\n\n")

	switch state.Status() {
	case service.Errored:
		b.WriteString(s.error.Render(state.Err))
	case service.Ready:
		b.WriteString(r.renderReport(s, state.Report))
	default:
		b.WriteString(s.hint.Render(idleHint))
	}
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) renderReport(s styles, report *model.WeatherReport) string {
	d := format.NewDisplayReport(report, r.clock, r.iconURL)

	lines := []string{
		s.heading.Render(d.Location),
		s.hint.Render(d.IconURL),
		"",
		s.line.Render("Condition: " + d.Condition + " (" + d.Description + ")"),
		s.line.Render("Temperature: " + d.Temperature),
		s.line.Render("Feels Like: " + d.FeelsLike),
		s.line.Render("Humidity: " + d.Humidity),
		s.line.Render("Pressure: " + d.Pressure),
		s.line.Render("Clouds: " + d.Clouds),
		s.line.Render("Wind: " + d.Wind + " (" + d.WindBand + ")"),
		s.line.Render("Visibility: " + d.Visibility),
		s.line.Render("Rain: " + d.Rain),
		s.line.Render("Snow: " + d.Snow),
		s.line.Render("Sunrise: " + d.Sunrise),
		s.line.Render("Sunset: " + d.Sunset),
	}
	return s.panel.Render(strings.Join(lines, "\n"))
}
