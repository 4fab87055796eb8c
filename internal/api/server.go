// Package api provides the HTTP REST API for the CTC planner.
//
// It exposes the take-home, savings, range, time-to-target and CTC inversion
// calculations under /api/v1/tax, plus health, policy and metrics endpoints.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/ctcplan/ctc-planner/internal/calculation"
	"github.com/ctcplan/ctc-planner/internal/config"
	"github.com/ctcplan/ctc-planner/internal/logging"
)

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	engine   *calculation.CalculationEngine
	settings *config.Settings
	logger   *logging.ZapLogger
	registry *prometheus.Registry
	metrics  *Metrics
	limiter  *IPRateLimiter
}

// NewServer creates a configured API server with all routes and middleware.
// A nil logger discards output.
func NewServer(engine *calculation.CalculationEngine, settings *config.Settings, logger *logging.ZapLogger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	if settings == nil {
		settings = config.DefaultSettings()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &Server{
		engine:   engine,
		settings: settings,
		logger:   logger.With("component", "api"),
		registry: registry,
		metrics:  NewMetrics(registry),
		limiter:  NewIPRateLimiter(rate.Limit(settings.API.RateLimit), settings.API.RateBurst),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// Run serves HTTP on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:         s.settings.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.settings.Server.ReadTimeout,
		WriteTimeout: s.settings.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	evictCtx, stopEvict := context.WithCancel(ctx)
	defer stopEvict()
	go s.limiter.RunEviction(evictCtx, limiterEvictInterval, limiterIdleTTL)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.settings.Server.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.settings.API.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1/tax", func(r chi.Router) {
		r.Use(s.limiter.Middleware(s.onRateLimited))

		r.Get("/policy", s.handlePolicy)
		r.Get("/rebate-cliff", s.handleRebateCliff)
		r.Post("/calculate-take-home", s.handleTakeHome)
		r.Post("/calculate-savings", s.handleSavings)
		r.Post("/calculate-savings-range", s.handleSavingsRange)
		r.Post("/calculate-time-to-target", s.handleTimeToTarget)
		r.Post("/calculate-ctc", s.handleCTC)
	})

	return r
}

func (s *Server) onRateLimited(r *http.Request, ip string) {
	s.logger.Warn("IP rate limit exceeded", "ip", ip, "path", r.URL.Path)
	s.metrics.RateLimited.Inc()
}

// requestLogger logs one line per request through zap.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
