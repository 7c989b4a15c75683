package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/unseenbook/internal/mcp"
	"github.com/ziadkadry99/unseenbook/internal/theme"
)

var mcpTheme string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing tools that
list the parts of the book, read chapters and step between them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		th := cfg.DefaultPreferences().Theme
		if mcpTheme != "" {
			if th, err = theme.ParseTheme(mcpTheme); err != nil {
				return err
			}
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

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "unseenbook MCP server started on stdio (content=%s)\n", contentLabel(cfg.Content.Dir))
		logger.Debug("mcp theme", zap.String("theme", string(th)))

		srv := mcpserver.NewServer(catalog, newMarkdown(cfg), th, logger)
		return srv.Serve()
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTheme, "theme", "", "theme for chapters read as HTML (light or dark)")
	rootCmd.AddCommand(mcpCmd)
}
