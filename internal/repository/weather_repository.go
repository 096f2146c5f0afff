package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/weather-widget/internal/config"
	"github.com/fakhrymubarak/weather-widget/internal/middleware"
	"github.com/fakhrymubarak/weather-widget/internal/model"
)

// ErrLookupFailed is the only error a lookup returns. The cause is logged,
// never surfaced.
var ErrLookupFailed = errors.New("lookup failed")

// Causes, kept for logs.
var (
	errEmptyCity        = errors.New("empty city name")
	errAPIKeyMissing    = errors.New("API key missing")
	errLocationNotFound = errors.New("location not found")
	errExternalAPI      = errors.New("external API error")
	errMalformedBody    = errors.New("malformed response body")
)

const maxBodyBytes = 1 << 20

// WeatherRepository fetches current conditions for a city.
type WeatherRepository interface {
	FetchCurrentWeather(ctx context.Context, city string) (*model.WeatherReport, error)
}

// weatherRepository implements WeatherRepository against OpenWeatherMap
type weatherRepository struct {
	cfg        config.OpenWeatherMap
	httpClient *http.Client
	validate   *validator.Validate
	logger     *zap.SugaredLogger
}

// NewWeatherRepository creates a repository for cfg. httpClient is optional;
// http.DefaultClient is used otherwise.
func NewWeatherRepository(cfg config.OpenWeatherMap, logger *zap.SugaredLogger, httpClient ...*http.Client) WeatherRepository {
	client := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &weatherRepository{
		cfg:        cfg,
		httpClient: client,
		validate:   validator.New(),
		logger:     logger,
	}
}

// FetchCurrentWeather performs one lookup. Every failure is ErrLookupFailed.
func (r *weatherRepository) FetchCurrentWeather(ctx context.Context, city string) (*model.WeatherReport, error) {
	lookupID := uuid.NewString()
	ctx = middleware.WithLookupID(ctx, lookupID)

	report, err := r.fetchFromExternalAPI(ctx, city)
	if err != nil {
		r.logger.Warnw("Weather lookup failed", "lookup_id", lookupID, "city", city, "error", err)
		return nil, ErrLookupFailed
	}

	r.logger.Debugw("Weather lookup succeeded", "lookup_id", lookupID, "city", city, "name", report.Name)
	return report, nil
}

// fetchFromExternalAPI retrieves and validates the current-weather body.
func (r *weatherRepository) fetchFromExternalAPI(ctx context.Context, city string) (*model.WeatherReport, error) {
	if strings.TrimSpace(city) == "" {
		return nil, errEmptyCity
	}
	if r.cfg.APIKey == "" {
		return nil, errAPIKeyMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.buildURL(city), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		// *url.Error prints the request URL, and its query holds the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("%w: %w", errExternalAPI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, errLocationNotFound
		}
		return nil, fmt.Errorf("%w: status %d", errExternalAPI, resp.StatusCode)
	}

	var report model.WeatherReport
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&report); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
	}
	if err := r.validate.Struct(&report); err != nil {
		return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	return &report, nil
}

func (r *weatherRepository) buildURL(city string) string {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", r.cfg.APIKey)
	values.Set("units", "metric")
	return r.cfg.APIURL + "?" + values.Encode()
}
