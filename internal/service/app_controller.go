package service

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-widget/internal/model"
	"github.com/fakhrymubarak/weather-widget/internal/repository"
)

// LookupFailedMessage is the only error text the widget ever shows.
const LookupFailedMessage = "City Not Found! Try Again."

// Status is the observable state of the widget.
type Status int

const (
	Idle Status = iota
	Ready
	Errored
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "idle"
	}
}

// QueryState is a snapshot of the query. Report and Err are never both set.
type QueryState struct {
	City   string
	Report *model.WeatherReport
	Err    string
}

func (s QueryState) Status() Status {
	switch {
	case s.Report != nil:
		return Ready
	case s.Err != "":
		return Errored
	default:
		return Idle
	}
}

// Options configures an AppController.
type Options struct {
	DefaultCity string
	Logger      *zap.SugaredLogger
}

// AppController owns the query state and the theme preference.
//
// Lookups may overlap when Submit is called from several goroutines. Each
// Submit takes a sequence number and a response is applied only if no later
// Submit has started, so the state always reflects the newest request.
type AppController struct {
	repo        repository.WeatherRepository
	themes      repository.ThemeStore
	defaultCity string
	logger      *zap.SugaredLogger

	mu    sync.Mutex
	state QueryState
	theme model.Theme
	seq   uint64
}

// NewAppController loads the theme once from themes. A load failure is
// logged and the widget starts light.
func NewAppController(ctx context.Context, repo repository.WeatherRepository, themes repository.ThemeStore, opts Options) *AppController {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	theme, err := themes.Load(ctx)
	if err != nil {
		logger.Warnw("Could not load theme preference, using light", "error", err)
		theme = model.ThemeLight
	}

	return &AppController{
		repo:        repo,
		themes:      themes,
		defaultCity: opts.DefaultCity,
		logger:      logger,
		state:       QueryState{City: opts.DefaultCity},
		theme:       theme,
	}
}

// Init performs the automatic lookup for the default city.
func (c *AppController) Init(ctx context.Context) bool {
	return c.Submit(ctx, c.defaultCity)
}

// SetCity updates the query text without looking anything up.
func (c *AppController) SetCity(city string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.City = city
}

// Submit looks up city and moves to Ready or Errored. A blank city is
// ignored: no lookup happens, the state is untouched and false is returned.
func (c *AppController) Submit(ctx context.Context, city string) bool {
	city = strings.TrimSpace(city)
	if city == "" {
		return false
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state.City = city
	c.mu.Unlock()

	report, err := c.repo.FetchCurrentWeather(ctx, city)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.logger.Debugw("Dropping stale lookup result", "city", city, "seq", seq, "latest", c.seq)
		return true
	}
	if err != nil {
		c.logger.Infow("Lookup failed", "city", city, "error", err)
		c.state.Report = nil
		c.state.Err = LookupFailedMessage
		return true
	}
	c.state.Report = report
	c.state.Err = ""
	return true
}

// State returns a snapshot of the query state.
func (c *AppController) State() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Theme returns the current theme preference.
func (c *AppController) Theme() model.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// ToggleTheme flips the theme and saves it before returning. If the save
// fails the in-memory theme is still flipped and the error is returned.
func (c *AppController) ToggleTheme(ctx context.Context) (model.Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.theme = c.theme.Toggle()
	if err := c.themes.Save(ctx, c.theme); err != nil {
		c.logger.Errorw("Could not save theme preference", "theme", c.theme, "error", err)
		return c.theme, err
	}
	return c.theme, nil
}
