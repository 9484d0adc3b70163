package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	applicationHandler "jobmatch/internal/applications/handler"
	applicationProcessor "jobmatch/internal/applications/processor"
	authHandler "jobmatch/internal/auth/handler"
	authProcessor "jobmatch/internal/auth/processor"
	"jobmatch/internal/clients/mail"
	redisClient "jobmatch/internal/clients/redis"
	"jobmatch/internal/config"
	"jobmatch/internal/email"
	jobHandler "jobmatch/internal/jobs/handler"
	jobProcessor "jobmatch/internal/jobs/processor"
	"jobmatch/internal/observability"
	"jobmatch/internal/ratelimit"
	"jobmatch/internal/server"
	"jobmatch/internal/store"
	userHandler "jobmatch/internal/users/handler"
	userProcessor "jobmatch/internal/users/processor"

	"go.mongodb.org/mongo-driver/mongo"
)

// Result is what a started process holds on to until shutdown
type Result struct {
	// Database is nil when the initial connection failed.
	Database    *mongo.Client
	DatabaseErr error
	Monitor     *store.Monitor
	Redis       *redisClient.Client
	Server      *server.Server

	logger *observability.Logger
}

// Degraded reports whether the server is running without a database.
func (r *Result) Degraded() bool {
	return r.Database == nil
}

// Start connects to the database, builds the dependency graph and starts
// listening. A failed database connection is logged and tolerated; only a
// listener failure is returned as an error.
func Start(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Result, error) {
	result := &Result{
		Monitor: store.NewMonitor(),
		logger:  logger,
	}

	// Phase 1: database
	client, err := store.Connect(ctx, cfg.Database, result.Monitor, logger)
	if err != nil {
		result.DatabaseErr = err
		logger.Warn(ctx, "starting in degraded mode without a database")
	}
	result.Database = client

	// Phase 2: dependencies and listener
	deps := Initialize(ctx, cfg, result, logger)
	result.Server = server.New(cfg, deps, logger)
	result.Server.Setup()
	if err := result.Server.Start(ctx); err != nil {
		_ = result.Shutdown(ctx)
		return nil, err
	}
	return result, nil
}

// Initialize sets up the handlers served by the HTTP server
func Initialize(ctx context.Context, cfg *config.Config, result *Result, logger *observability.Logger) server.Dependencies {
	db := store.New(result.Database, cfg.Database.Name, logger)
	if db.Available() {
		if err := db.EnsureIndexes(ctx); err != nil {
			logger.Error(ctx, "failed to ensure indexes", err)
		}
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.Warn(ctx, "failed to create upload directory",
			observability.Field{Key: "dir", Value: cfg.Uploads.Dir},
			observability.Field{Key: "error", Value: err.Error()},
		)
	}

	rc, err := redisClient.NewClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn(ctx, "redis unavailable, auth rate limiting disabled",
			observability.Field{Key: "error", Value: err.Error()},
		)
	}
	result.Redis = rc

	var counter ratelimit.WindowCounter
	if rc.IsEnabled() {
		counter = rc
	}
	authRateLimit := ratelimit.NewService(counter, cfg.Auth.RateLimitPerMinute, logger)

	authProc := authProcessor.New(db, authProcessor.AuthConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		JWTExpiry: cfg.JWTExpiry(),
	}, logger)
	jobProc := jobProcessor.New(db, logger)
	userProc := userProcessor.New(db, cfg.Uploads.Dir, logger)
	applicationProc := applicationProcessor.New(db, newNotifier(ctx, cfg.Mail, logger), logger)

	return server.Dependencies{
		Monitor:            result.Monitor,
		AuthRateLimit:      authRateLimit,
		AuthHandler:        authHandler.New(authProc, logger),
		JobHandler:         jobHandler.New(jobProc, logger),
		UserHandler:        userHandler.New(userProc, logger),
		ApplicationHandler: applicationHandler.New(applicationProc, logger),
	}
}

// newNotifier returns nil when email is not configured.
func newNotifier(ctx context.Context, cfg config.MailConfig, logger *observability.Logger) applicationProcessor.Notifier {
	if !cfg.Enabled() {
		logger.Info(ctx, "RESEND_API_KEY not set, application emails disabled")
		return nil
	}
	client, err := mail.NewResendClient(cfg.ResendAPIKey, logger)
	if err != nil {
		logger.Warn(ctx, "failed to create mail client, application emails disabled",
			observability.Field{Key: "error", Value: err.Error()},
		)
		return nil
	}
	return email.New(client, cfg.From, logger)
}

// Shutdown stops the HTTP server, then closes redis and the database.
func (r *Result) Shutdown(ctx context.Context) error {
	var errs []error
	if r.Server != nil {
		if err := r.Server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := r.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close redis: %w", err))
	}
	if err := store.Disconnect(ctx, r.Database, r.Monitor, r.logger); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
