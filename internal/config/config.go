// Package config loads unseenbook settings from defaults, a YAML file and
// the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/unseenbook/internal/i18n"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "UNSEENBOOK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (UNSEENBOOK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: UNSEENBOOK_SERVER__PORT -> server.port.
	// A literal "." in the variable name works too.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats is the set of recognized log formats.
var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if _, err := i18n.ParseLanguage(c.Preferences.DefaultLanguage); err != nil {
		return fmt.Errorf("invalid preferences.default_language %q: must be one of en, ar", c.Preferences.DefaultLanguage)
	}
	if _, err := theme.ParseTheme(c.Preferences.DefaultTheme); err != nil {
		return fmt.Errorf("invalid preferences.default_theme %q: must be one of light, dark", c.Preferences.DefaultTheme)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Loader.Attempts < 1 {
		return fmt.Errorf("loader.attempts must be at least 1")
	}
	if c.Loader.RetryDelay < 0 {
		return fmt.Errorf("loader.retry_delay must be non-negative")
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log.format %q: must be one of console, json", c.Log.Format)
	}

	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}

	return nil
}

// DefaultPreferences returns the preferences given to new readers.
// Call Validate first; invalid values fall back to English and light.
func (c *Config) DefaultPreferences() prefs.Preferences {
	p := prefs.Default()
	if l, err := i18n.ParseLanguage(c.Preferences.DefaultLanguage); err == nil {
		p.Language = l
	}
	if t, err := theme.ParseTheme(c.Preferences.DefaultTheme); err == nil {
		p.Theme = t
	}
	return p
}
