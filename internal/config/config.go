// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/hitext/internal/highlight"
	"github.com/xonecas/hitext/internal/presets"
	"github.com/xonecas/hitext/internal/rules"
	"github.com/xonecas/hitext/internal/style"
	"github.com/xonecas/hitext/internal/theme"
)

// Config is the root configuration structure.
type Config struct {
	// Theme is the Chroma style the palette is derived from.
	Theme    string       `toml:"theme"`
	Presets  []string     `toml:"presets"`
	LogLevel string       `toml:"log_level"`
	Font     FontConfig   `toml:"font"`
	Store    StoreConfig  `toml:"store"`
	Rules    []rules.Spec `toml:"rules"`
}

// FontConfig sets the body font.
type FontConfig struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

// Font returns the configured font, filling unset fields from style.DefaultFont.
func (f FontConfig) Font() style.Font {
	out := style.DefaultFont
	if f.Family != "" {
		out.Family = f.Family
	}
	if f.Size > 0 {
		out.Size = f.Size
	}
	return out
}

// StoreConfig locates the rule-set catalog.
type StoreConfig struct {
	Path string `toml:"path"`
}

// PathOrDefault returns the catalog path with a leading ~ expanded, or
// rules.db in the data directory if unset.
func (s StoreConfig) PathOrDefault() (string, error) {
	if s.Path == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "rules.db"), nil
	}
	if s.Path == "~" || strings.HasPrefix(s.Path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(s.Path, "~")), nil
	}
	return s.Path, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Theme:    theme.DefaultName,
		Presets:  presets.Names(),
		LogLevel: "info",
	}
}

// Load reads configuration from a TOML file and applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	// Config file is required
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}

	// File must exist
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault returns the default configuration with environment variable
// overrides applied, for runs without a config file.
func LoadDefault() (*Config, error) {
	cfg := Default()
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Theme != "" && !theme.Exists(c.Theme) {
		errs = append(errs, fmt.Errorf("theme=%q is not a known chroma style", c.Theme))
	}

	known := presets.Names()
	for _, name := range c.Presets {
		if !slices.Contains(known, name) {
			errs = append(errs, fmt.Errorf("presets: %q is not one of %v", name, known))
		}
	}

	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", c.LogLevel, err))
		}
	}

	if c.Font.Size < 0 {
		errs = append(errs, fmt.Errorf("font.size=%v must be positive", c.Font.Size))
	}

	if _, err := rules.CompileSpecs(c.Rules); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}

	return errors.Join(errs...)
}

// Palette derives the colors from the configured theme.
func (c *Config) Palette() theme.Palette {
	return theme.Load(c.Theme)
}

// Base is the body font and foreground unmatched text is shown in.
func (c *Config) Base() highlight.Base {
	return highlight.Base{Font: c.Font.Font(), Foreground: c.Palette().Fg}
}

// Options configures the presets from the palette and body font.
func (c *Config) Options() presets.Options {
	return presets.Options{Palette: c.Palette(), Font: c.Font.Font()}
}

// RuleList builds the configured presets followed by the custom rules.
func (c *Config) RuleList() ([]rules.Rule, error) {
	return c.RuleListFor(c.Presets)
}

// RuleListFor builds the named presets followed by the custom rules.
func (c *Config) RuleListFor(names []string) ([]rules.Rule, error) {
	out, err := presets.Combine(names, c.Options())
	if err != nil {
		return nil, err
	}
	custom, err := rules.CompileSpecs(c.Rules)
	if err != nil {
		return nil, fmt.Errorf("config rules: %w", err)
	}
	return append(out, custom...), nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"HITEXT_THEME", func(v string) {
			if v != "" {
				cfg.Theme = v
			}
		}},
		{"HITEXT_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.LogLevel = v
			}
		}},
		{"HITEXT_STORE", func(v string) {
			if v != "" {
				cfg.Store.Path = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the hitext data directory (~/.config/hitext).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hitext"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
