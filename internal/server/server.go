package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apisetup "jobmatch/internal/api"
	applicationHandler "jobmatch/internal/applications/handler"
	authHandler "jobmatch/internal/auth/handler"
	"jobmatch/internal/config"
	jobHandler "jobmatch/internal/jobs/handler"
	"jobmatch/internal/observability"
	"jobmatch/internal/ratelimit"
	"jobmatch/internal/store"
	userHandler "jobmatch/internal/users/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the handlers and shared state the router is built from
type Dependencies struct {
	Monitor            *store.Monitor
	AuthRateLimit      *ratelimit.Service
	AuthHandler        authHandler.Handler
	JobHandler         jobHandler.Handler
	UserHandler        userHandler.Handler
	ApplicationHandler applicationHandler.Handler
}

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	httpServer *http.Server
	addr       string
	router     *gin.Engine
	registry   *prometheus.Registry
	deps       Dependencies
	config     *config.Config
	logger     *observability.Logger
}

// New creates a new Server instance
func New(cfg *config.Config, deps Dependencies, logger *observability.Logger) *Server {
	return &Server{
		config: cfg,
		deps:   deps,
		logger: logger,
	}
}

// Setup configures the HTTP router with middleware and routes
func (s *Server) Setup() {
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	s.router = gin.New()
	s.router.MaxMultipartMemory = 32 << 20
	if err := s.router.SetTrustedProxies(s.config.Server.TrustedProxies); err != nil {
		s.logger.Warn(context.Background(), "invalid trusted proxies, trusting none",
			observability.Field{Key: "trusted_proxies", Value: s.config.Server.TrustedProxies},
			observability.Field{Key: "error", Value: err.Error()},
		)
		_ = s.router.SetTrustedProxies(nil)
	}

	s.registry = prometheus.NewRegistry()
	s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.MustNewMetrics(s.registry, s.deps.Monitor.Gauge)

	s.router.Use(observability.ClientIP(s.config.Server.ClientIPHeader))
	s.router.Use(observability.Middleware(s.logger))
	s.router.Use(cors.New(corsConfig(s.config.CORS)))
	s.router.Use(metrics.Middleware())

	s.router.Static("/uploads", s.config.Uploads.Dir)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := apisetup.New(
		s.router,
		s.config.Environment,
		s.deps.Monitor,
		s.deps.AuthRateLimit,
		s.deps.AuthHandler,
		s.deps.JobHandler,
		s.deps.UserHandler,
		s.deps.ApplicationHandler,
	)
	api.RegisterRoutes()
}

// Router exposes the configured engine. Setup must have been called.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = config.DefaultCORSOrigins
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Accept"},
		ExposeHeaders:    []string{"Content-Range", "X-Content-Range"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// Start binds the listener and serves in the background. A bind failure is
// returned to the caller; it is the only startup error that stops the process.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.addr = listener.Addr().String()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info(ctx, fmt.Sprintf("Server starting on port %d", s.config.Server.Port),
			observability.Field{Key: "environment", Value: s.config.Environment},
			observability.Field{Key: "database", Value: s.deps.Monitor.State().String()},
		)
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(ctx, "server stopped unexpectedly", err)
		}
	}()

	return nil
}

// Addr returns the bound listener address once Start has succeeded.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
