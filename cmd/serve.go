package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/server"
)

var (
	servePort    int
	serveHost    string
	servePreload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reader web server",
	Long:  `Starts the HTTP reader: server-rendered pages, live navigation over a websocket and a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = serveHost
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

		store, database, err := openPrefs(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// A broken content directory fails here rather than on the first request.
		if servePreload {
			if err := catalog.Preload(ctx); err != nil {
				return fmt.Errorf("loading book: %w", err)
			}
		}

		srv, err := server.New(server.Config{
			Host:     cfg.Server.Host,
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, catalog, store, newMarkdown(cfg), logger)
		if err != nil {
			return err
		}

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
			}
		}()

		logger.Info("unseenbook starting",
			zap.String("version", Version),
			zap.String("db", database.Path()),
			zap.String("content", contentLabel(cfg.Content.Dir)),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func contentLabel(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind")
	serveCmd.Flags().BoolVar(&servePreload, "preload", true, "load both languages before accepting requests")
	rootCmd.AddCommand(serveCmd)
}
