package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/unseenbook/internal/progress"
	"github.com/ziadkadry99/unseenbook/internal/site"
)

var (
	buildOutput string
	buildServe  bool
	buildPort   int
	buildOpen   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Export the book as a static website",
	Long: `Renders every page in both languages and both themes into a
self-contained static site, with a search index per language.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if buildOutput != "" {
			cfg.Site.OutputDir = buildOutput
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		catalog, err := newCatalog(cfg, logger)
		if err != nil {
			return err
		}

		gen, err := site.NewGenerator(catalog, newMarkdown(cfg), site.Options{
			OutputDir: cfg.Site.OutputDir,
			Default:   cfg.DefaultPreferences(),
			Reporter:  progress.NewReporter("Building site"),
			Logger:    logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pages, err := gen.Generate(ctx)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Built %d pages into %s\n", pages, cfg.Site.OutputDir)

		if !buildServe {
			return nil
		}
		return site.Serve(ctx, cfg.Site.OutputDir, buildPort, buildOpen, logger)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (default from config)")
	buildCmd.Flags().BoolVar(&buildServe, "serve", false, "serve the site after building")
	buildCmd.Flags().IntVar(&buildPort, "port", 8000, "port for --serve")
	buildCmd.Flags().BoolVar(&buildOpen, "open", false, "open the site in a browser with --serve")
	rootCmd.AddCommand(buildCmd)
}
