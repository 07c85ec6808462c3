package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/auth"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/config"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, cfg config.Config, tokens *auth.TokenManager) Server {
	startupTime := time.Now()

	router := newRouter(storesFromDatabase(db), tokens,
		withDevelopment(cfg.IsDevelopment()),
		withAcceptedOrigins(cfg.AcceptedOrigins),
		withMetrics(cfg.MetricsEnabled),
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}
}

type router struct {
	development     bool
	acceptedOrigins []string
	metricsEnabled  bool
}

func withDevelopment(development bool) func(*router) {
	return func(r *router) {
		r.development = development
	}
}

func withAcceptedOrigins(origins []string) func(*router) {
	return func(r *router) {
		r.acceptedOrigins = origins
	}
}

func withMetrics(enabled bool) func(*router) {
	return func(r *router) {
		r.metricsEnabled = enabled
	}
}

func newRouter(s stores, tokens *auth.TokenManager, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	responder := NewResponder(log.With().Str("handlerName", "router").Logger(), router.development)

	chiRouter := chi.NewRouter()
	chiRouter.Use(requestID)
	chiRouter.Use(httpLogging(router.development))

	var metrics *httpMetrics
	if router.metricsEnabled {
		metrics = newHTTPMetrics()
		chiRouter.Use(metrics.middleware)
	}

	chiRouter.Use(recoverPanics(responder))

	// No configured origins means any origin, like a bare cors() setup.
	acceptedOrigins := router.acceptedOrigins
	if len(acceptedOrigins) == 0 {
		acceptedOrigins = []string{"*"}
	}
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins, responder))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !(len(acceptedOrigins) == 1 && acceptedOrigins[0] == "*"),
		MaxAge:           300,
	}))

	handlers := initializeHandlers(s, tokens, router.development)
	authMiddleware := newAuthMiddleware(tokens, s.users, router.development)

	setupRoutes(chiRouter, handlers, authMiddleware)
	if metrics != nil {
		chiRouter.Method(http.MethodGet, "/metrics", metrics.handler())
	}

	return chiRouter
}

// Start blocks serving requests. A graceful shutdown returns nil.
func (s Server) Start() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
