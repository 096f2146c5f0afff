package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const apiKeyEnv = "OPENWEATHERMAP_API_KEY"

var logger *zap.SugaredLogger
var loggerOnce sync.Once

// Config is the explicit configuration handed to every component at
// construction. Nothing outside this package reads viper or the environment.
type Config struct {
	OpenWeatherMap OpenWeatherMap `mapstructure:"openweathermap"`
	App            App            `mapstructure:"app"`
	Theme          Theme          `mapstructure:"theme"`
	Redis          Redis          `mapstructure:"redis"`
}

type OpenWeatherMap struct {
	APIURL  string `mapstructure:"api_url" validate:"required,url"`
	IconURL string `mapstructure:"icon_url" validate:"required"`
	// APIKey comes from the environment (or .env), never from yaml. An empty
	// key is allowed: every lookup then fails instead of the process exiting.
	APIKey    string    `mapstructure:"-"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
}

// RateLimit caps outbound lookups. Rate is in requests per second.
type RateLimit struct {
	Rate  float64 `mapstructure:"rate" validate:"gte=0"`
	Burst int     `mapstructure:"burst" validate:"gte=0"`
}

type App struct {
	DefaultCity string `mapstructure:"default_city"`
	Locale      string `mapstructure:"locale" validate:"required"`
	Timezone    string `mapstructure:"timezone"`
}

type Theme struct {
	Store string `mapstructure:"store" validate:"oneof=file redis"`
	File  string `mapstructure:"file" validate:"required_if=Store file"`
	Key   string `mapstructure:"key" validate:"required_if=Store redis"`
}

type Redis struct {
	Addr string `mapstructure:"addr"`
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

// Load reads config.yaml from the project root, merges config_test.yaml when
// running under go test, applies environment overrides and validates the
// result.
func Load() (*Config, error) {
	root, err := getProjectRoot()
	if err != nil {
		GetLogger().Warnw("Error finding project root, using working directory", "error", err)
		root = "."
	}
	return LoadFrom(root)
}

// LoadFrom is Load with an explicit directory holding the yaml files.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetConfigName("config")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		GetLogger().Warnw("Error reading config file, using defaults", "error", err)
	}

	if isTestRun() {
		v.SetConfigName("config_test")
		if err := v.MergeInConfig(); err != nil {
			GetLogger().Debugw("No test config merged", "error", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.OpenWeatherMap.APIKey = GetOpenWeatherMapAPIKey(dir)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("openweathermap.icon_url", "https://openweathermap.org/img/wn/%s.png")
	v.SetDefault("openweathermap.rate_limit.rate", 1.0)
	v.SetDefault("openweathermap.rate_limit.burst", 5)
	v.SetDefault("app.default_city", "London")
	v.SetDefault("app.locale", "en-US")
	v.SetDefault("app.timezone", "Local")
	v.SetDefault("theme.store", "file")
	v.SetDefault("theme.file", ".weather-theme.env")
	v.SetDefault("theme.key", "weather:theme")
	v.SetDefault("redis.addr", "localhost:6379")
}

// Validate checks the struct tags section by section. The redis address is
// only required when the theme store is redis.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg.OpenWeatherMap); err != nil {
		return fmt.Errorf("invalid openweathermap config: %w", err)
	}
	if err := validate.Struct(cfg.App); err != nil {
		return fmt.Errorf("invalid app config: %w", err)
	}
	if err := validate.Struct(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme config: %w", err)
	}
	if cfg.Theme.Store == "redis" && cfg.Redis.Addr == "" {
		return fmt.Errorf("invalid redis config: addr is required for the redis theme store")
	}
	return nil
}

// Location resolves App.Timezone. Empty or "Local" means the host zone.
func (a App) Location() (*time.Location, error) {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// GetOpenWeatherMapAPIKey loads dir/.env, next to config.yaml, and returns the
// API key. A variable already set in the environment wins over the file.
func GetOpenWeatherMapAPIKey(dir string) string {
	_ = godotenv.Load(filepath.Join(dir, ".env"))
	return os.Getenv(apiKeyEnv)
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
