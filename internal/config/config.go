package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything curator needs at startup.
type Config struct {
	BaseURL          string
	APIKey           string
	Timeout          time.Duration
	BreakerThreshold int
	RefreshPolicy    string // "replace" or "append"
	LogDir           string
	LogLevel         string
}

const (
	// APIKeyEnv is read once at load time and wins over api_key in the file.
	APIKeyEnv = "API_KEY"

	defaultConfigPath       = "~/.config/curator/config.toml"
	defaultBaseURL          = "https://api.harvardartmuseums.org"
	defaultTimeout          = 1000 * time.Second
	defaultBreakerThreshold = 5
	defaultRefreshPolicy    = "replace"
	defaultLogDir           = "~/.local/state/curator"
	defaultLogLevel         = "info"
	defaultEnvFile          = ".env"
)

// Load locates and parses the curator config, falling back to defaults when
// missing. A .env file in the working directory is loaded first; it never
// overrides variables that are already set.
func Load(path string) (Config, error) {
	_ = godotenv.Load(defaultEnvFile)

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:          defaultBaseURL,
		Timeout:          defaultTimeout,
		BreakerThreshold: defaultBreakerThreshold,
		RefreshPolicy:    defaultRefreshPolicy,
		LogDir:           mustExpand(defaultLogDir),
		LogLevel:         defaultLogLevel,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.APIKey = strings.TrimSpace(os.Getenv(APIKeyEnv))
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL          string `toml:"base_url"`
		APIKey           string `toml:"api_key"`
		Timeout          string `toml:"timeout"`
		BreakerThreshold *int   `toml:"breaker_threshold"`
		RefreshPolicy    string `toml:"refresh_policy"`
		LogDir           string `toml:"log_dir"`
		LogLevel         string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)

	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("parse config: invalid timeout %q", raw.Timeout)
		}
		cfg.Timeout = d
	}

	if raw.BreakerThreshold != nil {
		if *raw.BreakerThreshold < 0 {
			return Config{}, fmt.Errorf("parse config: breaker_threshold must be >= 0")
		}
		cfg.BreakerThreshold = *raw.BreakerThreshold
	}

	switch policy := strings.ToLower(strings.TrimSpace(raw.RefreshPolicy)); policy {
	case "":
	case "replace", "append":
		cfg.RefreshPolicy = policy
	default:
		return Config{}, fmt.Errorf("parse config: unknown refresh_policy %q", raw.RefreshPolicy)
	}

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.APIKey = key
	}

	return cfg, nil
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/curator.log")
	}
	return filepath.Join(c.LogDir, "curator.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
