package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/config"
	"github.com/ziadkadry99/unseenbook/internal/content"
	"github.com/ziadkadry99/unseenbook/internal/db"
	"github.com/ziadkadry99/unseenbook/internal/logging"
	"github.com/ziadkadry99/unseenbook/internal/markdown"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `unseenbook init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// newCatalog builds the book catalog from the content directory, or from
// the book compiled into the binary when none is configured.
func newCatalog(cfg *config.Config, logger *zap.Logger) (*content.Catalog, error) {
	var src *content.FSSource
	if cfg.Content.Dir == "" {
		src = content.Embedded()
	} else {
		info, err := os.Stat(cfg.Content.Dir)
		if err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content dir %s is not a directory", cfg.Content.Dir)
		}
		src = content.NewFSSource(os.DirFS(cfg.Content.Dir), cfg.Content.Include)
	}
	return content.NewCatalog(src, content.CatalogConfig{
		Retry: content.Retry{
			Attempts: cfg.Loader.Attempts,
			Delay:    cfg.Loader.RetryDelay,
		},
		StrictIDs: cfg.Content.StrictIDs,
	}, logger), nil
}

func newMarkdown(cfg *config.Config) *markdown.Renderer {
	return markdown.NewRenderer(markdown.Options{
		TrimCodeIndent: cfg.Markdown.TrimCodeIndent,
		Highlight:      cfg.Markdown.Highlight,
		LightStyle:     cfg.Markdown.LightStyle,
		DarkStyle:      cfg.Markdown.DarkStyle,
	})
}

// openPrefs opens the preference database. Readers without stored values
// get the configured defaults. The caller closes the returned DB.
func openPrefs(cfg *config.Config) (*prefs.SQLStore, *db.DB, error) {
	database, err := db.Open(cfg.Preferences.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening preference store: %w", err)
	}
	return prefs.NewSQLStore(database, cfg.DefaultPreferences()), database, nil
}
