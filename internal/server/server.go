// Package server serves the book over HTTP: reader pages, the preference
// and catalog JSON API, and the websocket that drives live navigation.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/unseenbook/internal/logging"
	"github.com/ziadkadry99/unseenbook/internal/markdown"
	"github.com/ziadkadry99/unseenbook/internal/navigation"
	"github.com/ziadkadry99/unseenbook/internal/prefs"
	"github.com/ziadkadry99/unseenbook/internal/view"
)

// Config holds server configuration.
type Config struct {
	Host     string
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the reader-facing HTTP server.
type Server struct {
	cfg        Config
	books      navigation.Books
	store      prefs.Store
	md         *markdown.Renderer
	views      *view.Renderer
	nav        *navigation.Controller
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the given catalog and preference store.
func New(cfg Config, books navigation.Books, store prefs.Store, md *markdown.Renderer, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if md == nil {
		md = markdown.NewRenderer(markdown.DefaultOptions())
	}
	views, err := view.New(md)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		books:  books,
		store:  store,
		md:     md,
		views:  views,
		nav:    navigation.NewController(books, views, store, view.ServerLinks{}, logger),
		logger: logger,
	}
	s.router = s.buildRouter()
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(view.Static())))

	r.Group(func(r chi.Router) {
		r.Use(s.readers)

		// The websocket outlives the request timeout.
		r.Get("/ws/nav", s.handleNav)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/", s.handleHome)
			r.Get("/parts/{partID}", s.handlePart)
			r.Get("/chapters/{chapterID}", s.handleChapter)
			r.Post("/preferences/{name}/toggle", s.handleToggle)

			registerAPI(r, s)
		})
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("unseenbook server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
