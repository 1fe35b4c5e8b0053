// Package config loads the adapter's startup configuration.
//
// Sources in increasing precedence: an optional YAML file (explicit path,
// ./timetrack-mcp.yaml, then ~/.timetrack-mcp/config.yaml, first match wins),
// a best-effort .env file, and the process environment. Credentials are read
// once at startup; a missing account or application password is a fatal
// configuration error, never a per-call one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	projectConfigName = "timetrack-mcp.yaml"
	homeConfigDir     = ".timetrack-mcp"
	homeConfigName    = "config.yaml"
)

// Environment variable names. The application password is a revocable
// credential scoped to API access, distinct from the account owner's primary
// password.
const (
	EnvAccount     = "TIMETRACK_ACCOUNT"
	EnvAppPassword = "TIMETRACK_APP_PASSWORD"
	EnvBaseURL     = "TIMETRACK_BASE_URL"
	EnvTimeout     = "TIMETRACK_TIMEOUT"
)

// Config is the resolved process configuration, immutable after Load.
type Config struct {
	Account     string
	AppPassword string
	BaseURL     string
	Timeout     time.Duration
}

// fileConfig is the YAML file shape; the timeout is kept as a duration
// string ("30s") to match what the environment variable accepts.
type fileConfig struct {
	Account     string `yaml:"account"`
	AppPassword string `yaml:"app_password"`
	BaseURL     string `yaml:"base_url"`
	Timeout     string `yaml:"timeout"`
}

// Load resolves configuration from file, .env, and environment.
func Load(explicitPath string) (Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve user home: %w", err)
	}
	// .env values become visible through os.Getenv; absence is not an error.
	_ = godotenv.Load()
	return loadFrom(explicitPath, cwd, homeDir, os.Getenv)
}

func loadFrom(explicitPath, cwd, homeDir string, getenv func(string) string) (Config, error) {
	var cfg Config

	path, found, err := discoverPath(explicitPath, cwd, homeDir)
	if err != nil {
		return Config{}, err
	}
	if found {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var file fileConfig
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg.Account = file.Account
		cfg.AppPassword = file.AppPassword
		cfg.BaseURL = file.BaseURL
		if file.Timeout != "" {
			timeout, err := time.ParseDuration(file.Timeout)
			if err != nil {
				return Config{}, fmt.Errorf("config: invalid timeout in %s: %w", path, err)
			}
			cfg.Timeout = timeout
		}
	}

	if v := strings.TrimSpace(getenv(EnvAccount)); v != "" {
		cfg.Account = v
	}
	if v := strings.TrimSpace(getenv(EnvAppPassword)); v != "" {
		cfg.AppPassword = v
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(getenv(EnvTimeout)); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = timeout
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var missing []string
	if c.Account == "" {
		missing = append(missing, EnvAccount)
	}
	if c.AppPassword == "" {
		missing = append(missing, EnvAppPassword)
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required credentials: set %s", strings.Join(missing, ", "))
	}
	return nil
}

// discoverPath resolves the config file location with first-match semantics.
func discoverPath(explicitPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if clean := strings.TrimSpace(explicitPath); clean != "" {
		candidates = append(candidates, filepath.Clean(clean))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, homeConfigDir, homeConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %s: %w", candidate, err)
		}
		// An explicit path that does not exist is an error; fallback
		// candidates are allowed to be absent.
		if i == 0 && strings.TrimSpace(explicitPath) != "" {
			return "", false, fmt.Errorf("config: file not found: %s", candidate)
		}
	}
	return "", false, nil
}
