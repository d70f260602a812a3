// Package server wires the application together: it owns the router, the
// database connection, and the dependency graph from store to handler.
// main.go stays minimal — read config, build a Server, Start it.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/api-catalog/internal/auth"
	"github.com/sakif/api-catalog/internal/handler"
	"github.com/sakif/api-catalog/internal/middleware"
	"github.com/sakif/api-catalog/internal/repository/sqlstore"
	"github.com/sakif/api-catalog/internal/service"
)

// Config holds server configuration, assembled in main from the
// environment.
type Config struct {
	Port        int
	TemplateDir string
	DatabaseURL string // postgres:// URL or a SQLite file path
	SecretKey   string // signs session tokens
}

// Server is the HTTP server and its owned resources. The database
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	store  *sqlstore.Store
}

// New opens the database and assembles the full dependency chain:
//
//	sqlstore.Store → services → handlers → routes
//
// Handlers receive services, services receive repository interfaces; no
// layer reaches past the one below it.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	store, err := sqlstore.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		store.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware, builds the handlers, and binds every
// route.
//
//	GET  /               → catalog listing
//	GET  /generate/{id}  → language-selection form        (404 if missing)
//	POST /generate/{id}  → generated code sample          (404 if missing)
//	GET  /admin          → entry creation form            (session required)
//	POST /admin          → create entry                   (session required)
//	GET  /delete/{id}    → delete entry                   (ungated, historical)
//	GET  /signup         → signup form
//	POST /signup         → create account
//	GET  /login          → login form
//	POST /login          → authenticate, set session cookie
//	GET  /logout         → clear session cookie
//	GET  /profile        → profile page                   (session required)
//	POST /rate/{id}      → overwrite entry rating         (session required)
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	sessions, err := auth.NewSessionService(s.config.SecretKey)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}

	render, err := handler.NewRenderer(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	passwords := auth.NewPasswordService()
	catalogSvc := service.NewCatalogService(s.store, s.logger)
	authSvc := service.NewAuthService(s.store, passwords, s.logger)

	catalogHandler := handler.NewCatalogHandler(catalogSvc, authSvc, render, s.logger)
	authHandler := handler.NewAuthHandler(authSvc, catalogSvc, sessions, render, s.logger)

	// Public routes. OptionalSession lets the home page greet a logged-in
	// visitor without gating anonymous access.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.OptionalSession(sessions))
		r.Get("/", catalogHandler.HandleHome)
	})

	s.router.Get("/generate/{id}", catalogHandler.HandleGenerateForm)
	s.router.Post("/generate/{id}", catalogHandler.HandleGenerate)

	// Delete is intentionally outside the session group — see DESIGN.md.
	s.router.Get("/delete/{id}", catalogHandler.HandleDelete)

	s.router.Get("/signup", authHandler.HandleSignupForm)
	s.router.Post("/signup", authHandler.HandleSignup)
	s.router.Get("/login", authHandler.HandleLoginForm)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/logout", authHandler.HandleLogout)

	// Session-gated routes: visitors without a valid session cookie are
	// redirected to /login.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(sessions))
		r.Get("/admin", catalogHandler.HandleAdminForm)
		r.Post("/admin", catalogHandler.HandleAdminCreate)
		r.Get("/profile", authHandler.HandleProfile)
		r.Post("/rate/{id}", catalogHandler.HandleRate)
	})

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
