package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/fakhrymubarak/weather-widget/internal/model"
)

const themeFileKey = "THEME"

// ThemeStore persists the theme preference between sessions.
type ThemeStore interface {
	Load(ctx context.Context) (model.Theme, error)
	Save(ctx context.Context, theme model.Theme) error
}

// fileThemeStore keeps the preference in a small KEY="value" file.
type fileThemeStore struct {
	path string
}

// NewFileThemeStore returns a ThemeStore backed by the file at path. A missing
// file loads as light.
func NewFileThemeStore(path string) ThemeStore {
	return &fileThemeStore{path: path}
}

func (s *fileThemeStore) Load(_ context.Context) (model.Theme, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ThemeLight, nil
		}
		return model.ThemeLight, fmt.Errorf("read theme file %s: %w", s.path, err)
	}
	return model.ParseTheme(values[themeFileKey]), nil
}

func (s *fileThemeStore) Save(_ context.Context, theme model.Theme) error {
	if err := godotenv.Write(map[string]string{themeFileKey: theme.String()}, s.path); err != nil {
		return fmt.Errorf("write theme file %s: %w", s.path, err)
	}
	return nil
}

// redisThemeClient is the part of the Redis client the theme store uses.
type redisThemeClient interface {
	Get(ctx context.Context, key string) *redisv9.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redisv9.StatusCmd
}

// redisThemeStore keeps the preference under a single Redis key.
type redisThemeStore struct {
	client redisThemeClient
	key    string
}

// NewRedisThemeStore returns a ThemeStore backed by key in Redis. A missing
// key loads as light.
func NewRedisThemeStore(client *redisv9.Client, key string) ThemeStore {
	return &redisThemeStore{client: client, key: key}
}

func (s *redisThemeStore) Load(ctx context.Context) (model.Theme, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redisv9.Nil) {
		return model.ThemeLight, nil
	}
	if err != nil {
		return model.ThemeLight, fmt.Errorf("get %s: %w", s.key, err)
	}
	return model.ParseTheme(val), nil
}

func (s *redisThemeStore) Save(ctx context.Context, theme model.Theme) error {
	if err := s.client.Set(ctx, s.key, theme.String(), 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}
