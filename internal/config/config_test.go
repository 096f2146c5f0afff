package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetOpenWeatherMapAPIKey(t *testing.T) {
	dir := t.TempDir()

	// Test with the environment variable set
	expectedKey := "test_api_key_123"
	t.Setenv("OPENWEATHERMAP_API_KEY", expectedKey)

	result := GetOpenWeatherMapAPIKey(dir)
	if result != expectedKey {
		t.Errorf("Expected API key %s, got %s", expectedKey, result)
	}

	// Test with environment variable not set
	os.Unsetenv("OPENWEATHERMAP_API_KEY")
	result = GetOpenWeatherMapAPIKey(dir)
	if result != "" {
		t.Errorf("Expected empty string, got %s", result)
	}
}

func TestGetOpenWeatherMapAPIKey_DotEnvInDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENWEATHERMAP_API_KEY=from_dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Restored after the test, since godotenv sets the variable process-wide.
	t.Setenv("OPENWEATHERMAP_API_KEY", "from_env")
	if got := GetOpenWeatherMapAPIKey(dir); got != "from_env" {
		t.Errorf("Expected environment to win over .env, got %s", got)
	}

	os.Unsetenv("OPENWEATHERMAP_API_KEY")
	if got := GetOpenWeatherMapAPIKey(dir); got != "from_dotenv" {
		t.Errorf("Expected API key from %s/.env, got %s", dir, got)
	}
}

func TestLoadFrom_DotEnvNextToConfig(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("OPENWEATHERMAP_API_KEY=root_key\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "internal", "config")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(sub); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("OPENWEATHERMAP_API_KEY", "")
	os.Unsetenv("OPENWEATHERMAP_API_KEY")

	cfg, err := LoadFrom(root)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.OpenWeatherMap.APIKey != "root_key" {
		t.Errorf("Expected API key from root .env while running in a subdirectory, got %q", cfg.OpenWeatherMap.APIKey)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if want := "https://api.openweathermap.org/data/2.5/weather"; cfg.OpenWeatherMap.APIURL != want {
		t.Errorf("Expected API URL %s, got %s", want, cfg.OpenWeatherMap.APIURL)
	}
	if want := "https://openweathermap.org/img/wn/%s.png"; cfg.OpenWeatherMap.IconURL != want {
		t.Errorf("Expected icon URL %s, got %s", want, cfg.OpenWeatherMap.IconURL)
	}
	if cfg.App.DefaultCity != "London" {
		t.Errorf("Expected default city London, got %s", cfg.App.DefaultCity)
	}
	if cfg.App.Locale != "en-US" {
		t.Errorf("Expected locale en-US, got %s", cfg.App.Locale)
	}
	if cfg.Theme.Store != "file" {
		t.Errorf("Expected theme store file, got %s", cfg.Theme.Store)
	}
	if cfg.OpenWeatherMap.RateLimit.Burst != 5 {
		t.Errorf("Expected burst 5, got %d", cfg.OpenWeatherMap.RateLimit.Burst)
	}
}

func TestLoad_TestConfigMerged(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.App.Timezone != "UTC" {
		t.Errorf("Expected test timezone UTC, got %s", cfg.App.Timezone)
	}
	if cfg.Theme.File != ".weather-theme.test.env" {
		t.Errorf("Expected test theme file, got %s", cfg.Theme.File)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("APP_DEFAULT_CITY", "Paris")
	t.Setenv("OPENWEATHERMAP_API_KEY", "env_key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Redis.Addr != "redis.internal:6380" {
		t.Errorf("Expected Redis addr from env, got %s", cfg.Redis.Addr)
	}
	if cfg.App.DefaultCity != "Paris" {
		t.Errorf("Expected default city from env, got %s", cfg.App.DefaultCity)
	}
	if cfg.OpenWeatherMap.APIKey != "env_key" {
		t.Errorf("Expected API key from env, got %s", cfg.OpenWeatherMap.APIKey)
	}
}

func TestLoadFrom_MissingConfigFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected default Redis addr localhost:6379, got %s", cfg.Redis.Addr)
	}
	if cfg.Theme.Key != "weather:theme" {
		t.Errorf("Expected default theme key, got %s", cfg.Theme.Key)
	}
}

func TestLoadFrom_InvalidThemeStore(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("theme:\n  store: sqlite\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(dir); err == nil {
		t.Error("Expected validation error for unknown theme store, got nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			OpenWeatherMap: OpenWeatherMap{
				APIURL:  "https://api.openweathermap.org/data/2.5/weather",
				IconURL: "https://openweathermap.org/img/wn/%s.png",
			},
			App:   App{Locale: "en-US"},
			Theme: Theme{Store: "redis", Key: "weather:theme"},
			Redis: Redis{Addr: "localhost:6379"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty API key is allowed", mutate: func(c *Config) { c.OpenWeatherMap.APIKey = "" }},
		{name: "bad API URL", mutate: func(c *Config) { c.OpenWeatherMap.APIURL = "not a url" }, wantErr: true},
		{name: "missing locale", mutate: func(c *Config) { c.App.Locale = "" }, wantErr: true},
		{name: "negative rate", mutate: func(c *Config) { c.OpenWeatherMap.RateLimit.Rate = -1 }, wantErr: true},
		{name: "redis store without addr", mutate: func(c *Config) { c.Redis.Addr = "" }, wantErr: true},
		{name: "file store without path", mutate: func(c *Config) { c.Theme = Theme{Store: "file"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestAppLocation(t *testing.T) {
	loc, err := App{Timezone: "Local"}.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Expected time.Local, got %v (%v)", loc, err)
	}

	loc, err = App{Timezone: "UTC"}.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Expected UTC, got %v (%v)", loc, err)
	}

	if _, err = (App{Timezone: "Mars/Olympus_Mons"}).Location(); err == nil {
		t.Error("Expected error for unknown timezone, got nil")
	}
}

func TestGetProjectRoot(t *testing.T) {
	root, err := getProjectRoot()
	if err != nil {
		t.Fatalf("Expected project root, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Errorf("Expected go.mod in %s", root)
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("Expected logger to be created")
	}
	if GetLogger() != GetLogger() {
		t.Error("Expected same logger instance (singleton)")
	}
}
