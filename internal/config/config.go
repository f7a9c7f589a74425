// Package config loads the simform YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-simform/pkg/submit"
)

// Config is the full configuration tree.
type Config struct {
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
	Theme  ThemeConfig  `yaml:"theme"`
	Log    LogConfig    `yaml:"log"`
}

// ClientConfig controls outgoing submissions.
type ClientConfig struct {
	BaseURL string `yaml:"base_url"`
}

// ServerConfig controls the host page server.
type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	Upstream      string        `yaml:"upstream"`
	CORSOrigins   []string      `yaml:"cors_origins"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
}

// ThemeConfig selects the page theme. Tokens override the built-in manifest.
type ThemeConfig struct {
	Name    string            `yaml:"name"`
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Client: ClientConfig{BaseURL: submit.DefaultBaseURL},
		Server: ServerConfig{
			Addr:          ":8080",
			ShutdownGrace: 5 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path and layers it over Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Client.BaseURL) == "" {
		errs = append(errs, errors.New("client.base_url is required"))
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownGrace <= 0 {
		errs = append(errs, errors.New("server.shutdown_grace must be positive"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not supported", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
