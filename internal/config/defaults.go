package config

import "time"

// DefaultPath is where the config file is looked up by default.
const DefaultPath = ".unseenbook.yml"

// DefaultIncludes are the chapter file globs read from a content directory.
var DefaultIncludes = []string{"**/*.md"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Content: ContentConfig{
			Include: DefaultIncludes,
		},
		Preferences: PreferencesConfig{
			DefaultLanguage: "en",
			DefaultTheme:    "light",
			DBPath:          ".unseenbook/unseenbook.db",
		},
		Markdown: MarkdownConfig{
			TrimCodeIndent: true,
			LightStyle:     "github",
			DarkStyle:      "monokai",
		},
		Loader: LoaderConfig{
			Attempts:   3,
			RetryDelay: time.Second,
		},
		Site: SiteConfig{
			OutputDir: "_site",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
