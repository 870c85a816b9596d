// Package config loads the gateway configuration: a YAML file plus a
// small set of environment overrides. Discovery follows first-match
// semantics so an explicit path always wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rationsmart/rationsmart/backend"
	"github.com/rationsmart/rationsmart/probe"
)

const (
	projectConfigName = "rationsmart.yaml"
	homeConfigDir     = ".rationsmart"

	// EnvConfigPath points at the config file when no flag is given.
	EnvConfigPath = "RATIONSMART_CONFIG"
	// EnvBackendURL overrides backend.base_url.
	EnvBackendURL = "RATIONSMART_BACKEND_URL"
	// EnvAPIKey overrides backend.api_key.
	EnvAPIKey = "RATIONSMART_API_KEY"
	// EnvPort overrides server.port, for platform-injected ports.
	EnvPort = "PORT"
)

// Config is the gateway configuration file shape.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Server  ServerConfig  `yaml:"server"`
	Probe   ProbeConfig   `yaml:"probe"`
	Otel    OtelConfig    `yaml:"otel"`
}

// BackendConfig configures the backend client connection.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	CORSOrigin   string        `yaml:"cors_origin"`
	MaxBody      int64         `yaml:"max_body"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ProbeConfig configures the backend reachability probe.
type ProbeConfig struct {
	Schedule string `yaml:"schedule"`
}

// OtelConfig toggles trace export.
type OtelConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL: backend.DefaultBaseURL,
			Timeout: backend.DefaultTimeout,
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			CORSOrigin:   "*",
			MaxBody:      1 << 20,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Probe: ProbeConfig{Schedule: probe.DefaultSchedule},
	}
}

// Load reads path over the defaults. Unset fields keep their default
// values, so a partial file is valid.
func Load(path string) (Config, error) {
	cfg := Default()
	// #nosec G304 -- path resolved from explicit local config discovery.
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, nil
}

// Discover resolves the config file location with first-match
// semantics: explicit path, then RATIONSMART_CONFIG, then the working
// directory, then the home directory.
func Discover(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve user home: %w", err)
	}
	return DiscoverFrom(explicitPath, os.Getenv(EnvConfigPath), cwd, homeDir)
}

// DiscoverFrom is a testable variant of Discover.
func DiscoverFrom(explicitPath, envPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 3)
	explicit := strings.TrimSpace(explicitPath)
	if explicit == "" {
		explicit = strings.TrimSpace(envPath)
	}
	if explicit != "" {
		candidates = append(candidates, filepath.Clean(explicit))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, homeConfigDir, projectConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			// An explicit path that does not exist is an error.
			if i == 0 && explicit != "" {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// ApplyEnv layers environment overrides on top of the loaded file.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvBackendURL)); v != "" {
		c.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvAPIKey)); v != "" {
		c.Backend.APIKey = v
	}
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	return nil
}
