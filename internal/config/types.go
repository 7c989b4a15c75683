package config

import "time"

// Config is the top-level unseenbook configuration, corresponding to .unseenbook.yml.
type Config struct {
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Content     ContentConfig     `yaml:"content" koanf:"content"`
	Preferences PreferencesConfig `yaml:"preferences" koanf:"preferences"`
	Markdown    MarkdownConfig    `yaml:"markdown" koanf:"markdown"`
	Loader      LoaderConfig      `yaml:"loader" koanf:"loader"`
	Site        SiteConfig        `yaml:"site" koanf:"site"`
	Log         LogConfig         `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string `yaml:"host" koanf:"host"`
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ContentConfig selects where the book is read from. An empty Dir uses the
// book compiled into the binary.
type ContentConfig struct {
	Dir       string   `yaml:"dir" koanf:"dir"`
	Include   []string `yaml:"include" koanf:"include"`
	StrictIDs bool     `yaml:"strict_ids" koanf:"strict_ids"`
}

// PreferencesConfig holds reader preference defaults and storage.
type PreferencesConfig struct {
	DefaultLanguage string `yaml:"default_language" koanf:"default_language"`
	DefaultTheme    string `yaml:"default_theme" koanf:"default_theme"`
	DBPath          string `yaml:"db_path" koanf:"db_path"`
}

// MarkdownConfig controls chapter rendering.
type MarkdownConfig struct {
	Highlight      bool   `yaml:"highlight" koanf:"highlight"`
	TrimCodeIndent bool   `yaml:"trim_code_indent" koanf:"trim_code_indent"`
	LightStyle     string `yaml:"light_style" koanf:"light_style"`
	DarkStyle      string `yaml:"dark_style" koanf:"dark_style"`
}

// LoaderConfig controls retries when loading the book.
type LoaderConfig struct {
	Attempts   int           `yaml:"attempts" koanf:"attempts"`
	RetryDelay time.Duration `yaml:"retry_delay" koanf:"retry_delay"`
}

// SiteConfig holds static export settings.
type SiteConfig struct {
	OutputDir string `yaml:"output_dir" koanf:"output_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
