// Package config loads server settings from the environment.
//
// A .env file is read first (godotenv, as before), then SHOWCASE_* variables
// are overlaid on the defaults through koanf. The bare PORT variable used by
// most hosting platforms is still honored.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every recognized environment variable.
const EnvPrefix = "SHOWCASE_"

// Config holds every tunable of the server.
type Config struct {
	Port      string `koanf:"port"`
	DBPath    string `koanf:"db_path"`
	Templates string `koanf:"templates"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	AutoplayInterval  time.Duration `koanf:"autoplay_interval"`
	SwipeThreshold    float64       `koanf:"swipe_threshold"`
	ScrolledThreshold float64       `koanf:"scrolled_threshold"`
	TabGuard          time.Duration `koanf:"tab_guard"`

	CommandRate  float64 `koanf:"command_rate"`
	CommandBurst int     `koanf:"command_burst"`

	VisitorRetention time.Duration `koanf:"visitor_retention"`
	AdminUsername    string        `koanf:"admin_username"`
	AdminPassword    string        `koanf:"admin_password"`

	SMTPHost string `koanf:"smtp_host"`
	SMTPPort string `koanf:"smtp_port"`
	SMTPUser string `koanf:"smtp_user"`
	SMTPPass string `koanf:"smtp_pass"`
	ToEmail  string `koanf:"to_email"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Port:              "8080",
		DBPath:            "showcase.db",
		Templates:         "templates/*",
		LogLevel:          "info",
		LogFormat:         "console",
		AutoplayInterval:  8 * time.Second,
		SwipeThreshold:    100,
		ScrolledThreshold: 50,
		TabGuard:          500 * time.Millisecond,
		CommandRate:       20,
		CommandBurst:      10,
		VisitorRetention:  365 * 24 * time.Hour,
		AdminUsername:     "admin",
		SMTPHost:          "smtp.gmail.com",
		SMTPPort:          "587",
	}
}

// Load reads the given .env files (missing files are skipped; none means
// ".env"), then overlays SHOWCASE_* variables on the defaults.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", f, err)
		}
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if !k.Exists("port") {
		if port := os.Getenv("PORT"); port != "" {
			cfg.Port = port
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the interaction core cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if c.AutoplayInterval <= 0 {
		errs = append(errs, fmt.Errorf("autoplay_interval must be positive, got %s", c.AutoplayInterval))
	}
	if c.SwipeThreshold <= 0 {
		errs = append(errs, fmt.Errorf("swipe_threshold must be positive, got %g", c.SwipeThreshold))
	}
	if c.ScrolledThreshold < 0 {
		errs = append(errs, fmt.Errorf("scrolled_threshold must not be negative, got %g", c.ScrolledThreshold))
	}
	if c.TabGuard <= 0 {
		errs = append(errs, fmt.Errorf("tab_guard must be positive, got %s", c.TabGuard))
	}
	if c.CommandRate <= 0 || c.CommandBurst <= 0 {
		errs = append(errs, errors.New("command_rate and command_burst must be positive"))
	}
	if c.VisitorRetention <= 0 {
		errs = append(errs, fmt.Errorf("visitor_retention must be positive, got %s", c.VisitorRetention))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SMTPEnabled reports whether contact messages should also be mailed.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPass != "" && c.ToEmail != ""
}
