package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "CO2DASH_"

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CO2DASH_CONFIG is set
//  3. env (prefix CO2DASH_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// CO2DASH_EMISSIONS_PATH -> emissions_path; underscores are kept to match koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the process relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.EmissionsPath) == "":
		return fmt.Errorf("%w: emissions_path must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.SectorsPath) == "":
		return fmt.Errorf("%w: sectors_path must not be empty", ErrInvalidConfig)
	case utf8.RuneCountInString(c.Delimiter) != 1:
		return fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidConfig, c.Delimiter)
	case c.YearMin > c.YearMax:
		return fmt.Errorf("%w: year_min %d is after year_max %d", ErrInvalidConfig, c.YearMin, c.YearMax)
	case c.SessionCapacity <= 0:
		return fmt.Errorf("%w: session_capacity must be positive", ErrInvalidConfig)
	case c.ExportWidth <= 0 || c.ExportHeight <= 0:
		return fmt.Errorf("%w: export size must be positive", ErrInvalidConfig)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
