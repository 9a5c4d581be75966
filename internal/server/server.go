// Package server wires the site together: it builds every component from
// the configuration, mounts the routes and runs the HTTP server with a
// graceful shutdown.
//
// All dependencies are assembled here, in New, and nowhere else. Handlers
// receive services and widgets, services receive repositories, and only
// this package knows the concrete types.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/devraikou/portfolio/internal/auth"
	"github.com/devraikou/portfolio/internal/config"
	"github.com/devraikou/portfolio/internal/content"
	"github.com/devraikou/portfolio/internal/handler"
	"github.com/devraikou/portfolio/internal/live"
	"github.com/devraikou/portfolio/internal/middleware"
	"github.com/devraikou/portfolio/internal/nav"
	"github.com/devraikou/portfolio/internal/presence"
	"github.com/devraikou/portfolio/internal/projects"
	sqliteRepo "github.com/devraikou/portfolio/internal/repository/sqlite"
	"github.com/devraikou/portfolio/internal/schedule"
	"github.com/devraikou/portfolio/internal/service"
)

const (
	upstreamTimeout = 15 * time.Second
	shutdownTimeout = 30 * time.Second
)

// Server owns the router and every long-lived component. The database,
// the presence poller, the repository fetcher and the live hub are all
// released by Close.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger

	db      *sqliteRepo.DB
	poller  *presence.Poller
	fetcher *projects.Fetcher
	hub     *live.Hub
}

// Options replaces parts of the default wiring. Tests use it to drive the
// poller with a fake clock.
type Options struct {
	HTTPClient *http.Client
	Clock      schedule.Clock
}

// New builds the server. Nothing runs in the background until Start.
func New(cfg *config.Config, logger *slog.Logger, opts Options) (*Server, error) {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: upstreamTimeout}
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	presenceClient := presence.NewClient(opts.HTTPClient, cfg.Presence.BaseURL, cfg.Presence.UserID)
	poller := presence.NewPoller(presenceClient, opts.Clock, presence.Config{
		PollInterval:    cfg.Presence.PollInterval,
		ElapsedInterval: cfg.Presence.ElapsedInterval,
		FetchTimeout:    upstreamTimeout,
	}, logger.With(slog.String("component", "presence")))

	githubClient := projects.NewClient(opts.HTTPClient, cfg.GitHub.APIURL, cfg.GitHub.Account, cfg.GitHub.Token)
	fetcher := projects.NewFetcher(githubClient, cfg.GitHub.DisplayCount, cfg.GitHub.FetchTimeout,
		logger.With(slog.String("component", "projects")))

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		db:      db,
		poller:  poller,
		fetcher: fetcher,
		hub:     live.NewHub(poller, live.Options{}, logger.With(slog.String("component", "live"))),
	}

	if err := s.setupRoutes(); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes mounts middleware and handlers.
//
//	GET    /                          page
//	GET    /partials/presence         presence card fragment
//	GET    /partials/projects         gallery fragment (triggers the fetch)
//	GET    /api/presence              presence card JSON
//	GET    /api/projects              gallery JSON (triggers the fetch)
//	POST   /api/nav/active            active section
//	GET    /api/nav/config            classifier thresholds
//	POST   /api/contact               contact form
//	POST   /auth/login, /auth/logout  admin session       (admin enabled only)
//	GET    /api/messages              inbox               (admin)
//	PUT    /api/messages/{id}/read    mark read           (admin)
//	DELETE /api/messages/{id}         delete              (admin)
//	GET    /ws/presence               live presence cards
//	GET    /healthz                   health
//	GET    /static/*                  embedded assets
//
// Middleware order: request id, real ip, logging, panic recovery, then
// security headers.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.ImageDomains))

	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(handler.StaticFiles()))))

	renderer, err := handler.NewRenderer(s.logger)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	site := content.DefaultSite(s.config.GitHub.Account)
	messages := service.NewMessageService(s.db, s.logger)

	pages := handler.NewPageHandler(renderer, site, s.config.Nav, s.poller, s.fetcher,
		s.config.GitHub.DisplayCount, s.logger)
	contact := handler.NewContactHandler(messages, pages, s.logger)
	navHandler := handler.NewNavHandler(nav.NewClassifier(s.config.Nav))
	health := handler.NewHealthHandler(s.db, s.poller, s.fetcher)

	s.router.NotFound(pages.HandleNotFound)
	s.router.Get("/", pages.HandleIndex)
	s.router.Get("/partials/presence", pages.HandlePresence)
	s.router.Get("/partials/projects", pages.HandleProjects)
	s.router.Get("/healthz", health.HandleHealth)
	s.router.Handle("/ws/presence", s.hub)

	var admin *adminRoutes
	if s.config.Auth.AdminEnabled() {
		admin, err = s.newAdminRoutes(messages)
		if err != nil {
			return err
		}
		s.router.Post("/auth/login", admin.auth.HandleLogin)
		s.router.Post("/auth/logout", admin.auth.HandleLogout)
	} else {
		s.logger.Warn("JWT_SECRET or ADMIN_PASSWORD_HASH not set: admin inbox disabled")
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/presence", pages.HandlePresenceJSON)
		r.Get("/projects", pages.HandleProjectsJSON)
		r.Post("/nav/active", navHandler.HandleActive)
		r.Get("/nav/config", navHandler.HandleConfig)
		r.Post("/contact", contact.HandleSubmit)

		if admin == nil {
			return
		}
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(admin.tokens))
			r.Get("/messages", admin.inbox.HandleList)
			r.Put("/messages/{id}/read", admin.inbox.HandleMarkRead)
			r.Delete("/messages/{id}", admin.inbox.HandleDelete)
		})
	})

	return nil
}

type adminRoutes struct {
	tokens *auth.TokenService
	auth   *handler.AuthHandler
	inbox  *handler.MessageHandler
}

func (s *Server) newAdminRoutes(messages *service.MessageService) (*adminRoutes, error) {
	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret, auth.DefaultSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}
	authService := service.NewAuthService(s.config.Auth.AdminPasswordHash,
		auth.NewPasswordHasher(auth.DefaultCost), tokens, s.logger)

	return &adminRoutes{
		tokens: tokens,
		auth:   handler.NewAuthHandler(authService, tokens.TTL(), s.logger),
		inbox:  handler.NewMessageHandler(messages, s.logger),
	}, nil
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the background components and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	s.poller.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
			slog.Bool("admin", s.config.Auth.AdminEnabled()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Websocket connections are hijacked and invisible to Shutdown; close
	// them first so their handlers return.
	s.hub.Close()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("server stopped gracefully")
	return nil
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Close stops the background components and closes the database. It is
// safe to call more than once.
func (s *Server) Close() {
	s.hub.Close()
	s.poller.Stop()
	s.fetcher.Close()
	if err := s.db.Close(); err != nil {
		s.logger.Warn("closing database", slog.String("error", err.Error()))
	}
}
