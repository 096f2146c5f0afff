package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/format"
	"github.com/fakhrymubarak/weather-widget/internal/handler"
	"github.com/fakhrymubarak/weather-widget/internal/middleware"
	"github.com/fakhrymubarak/weather-widget/internal/redis"
	"github.com/fakhrymubarak/weather-widget/internal/repository"
	"github.com/fakhrymubarak/weather-widget/internal/service"
)

func main() {
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("Failed to load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdin, os.Stdout, logger, nil); err != nil {
		logger.Fatalw("Weather widget stopped", "error", err)
	}
}

// run wires the widget and blocks until the user quits, input ends or ctx
// is done. transport overrides the outbound base transport when non-nil.
func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, logger *zap.SugaredLogger, transport http.RoundTripper) error {
	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}
	clock, err := format.NewClockFormatter(cfg.App.Locale, loc)
	if err != nil {
		return err
	}

	if cfg.OpenWeatherMap.APIKey == "" {
		logger.Warnw("OPENWEATHERMAP_API_KEY is not set, every lookup will fail")
	}
	httpClient := middleware.NewHTTPClient(cfg.OpenWeatherMap, logger, transport)
	weatherRepo := repository.NewWeatherRepository(cfg.OpenWeatherMap, logger, httpClient)

	themes, closeThemes := newThemeStore(ctx, cfg, logger)
	defer closeThemes()

	ctrl := service.NewAppController(ctx, weatherRepo, themes, service.Options{
		DefaultCity: cfg.App.DefaultCity,
		Logger:      logger,
	})
	ctrl.Init(ctx)

	renderer := handler.NewRenderer(out, clock, cfg.OpenWeatherMap.IconURL)
	return handler.NewConsoleHandler(ctrl, renderer, in, out, logger).Run(ctx)
}

// newThemeStore picks the configured backend. An unreachable Redis falls
// back to the theme file so the widget still starts.
func newThemeStore(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (repository.ThemeStore, func()) {
	if cfg.Theme.Store == "redis" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err == nil {
			return repository.NewRedisThemeStore(client, cfg.Theme.Key), func() { _ = client.Close() }
		}
		logger.Warnw("Redis theme store unavailable, falling back to file", "error", err, "file", cfg.Theme.File)
	}
	return repository.NewFileThemeStore(cfg.Theme.File), func() {}
}
