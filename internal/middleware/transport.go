package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/weather-widget/internal/config"
)

// ErrRateLimited is returned by the rate limiting transport when the
// outbound budget is spent. The request is not sent and not queued.
var ErrRateLimited = errors.New("outbound rate limit exceeded")

type lookupIDKey struct{}

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// WithLookupID tags ctx so outbound log lines can be correlated with the
// lookup that caused them.
func WithLookupID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, lookupIDKey{}, id)
}

// LookupID returns the id set by WithLookupID, or "".
func LookupID(ctx context.Context) string {
	id, _ := ctx.Value(lookupIDKey{}).(string)
	return id
}

// NewLimiter builds the outbound limiter. A zero rate disables limiting.
func NewLimiter(cfg config.RateLimit) *rate.Limiter {
	if cfg.Rate <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.Rate), burst)
}

// RateLimit fails requests fast with ErrRateLimited once limiter is empty.
func RateLimit(next http.RoundTripper, limiter *rate.Limiter) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if !limiter.Allow() {
			return nil, ErrRateLimited
		}
		return next.RoundTrip(req)
	})
}

// Logging logs each outbound request. The query string carries the API key
// and is never logged.
func Logging(next http.RoundTripper, logger *zap.SugaredLogger) http.RoundTripper {
	return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(req)
		fields := []interface{}{
			"lookup_id", LookupID(req.Context()),
			"method", req.Method,
			"host", req.URL.Host,
			"path", req.URL.Path,
			"duration", time.Since(start),
		}
		if err != nil {
			logger.Warnw("Outbound request failed", append(fields, "error", err)...)
			return nil, err
		}
		logger.Debugw("Outbound request", append(fields, "status", resp.StatusCode)...)
		return resp, nil
	})
}

// NewHTTPClient returns the client used for provider lookups: rate limited,
// then logged, over base (http.DefaultTransport when nil). No timeout is set
// beyond the transport defaults.
func NewHTTPClient(cfg config.OpenWeatherMap, logger *zap.SugaredLogger, base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &http.Client{
		Transport: Logging(RateLimit(base, NewLimiter(cfg.RateLimit)), logger),
	}
}
