package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobmatch/internal/config"
	"jobmatch/internal/observability"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// Connect opens a client against the configured document store and pings the
// primary. It never terminates the process: on failure the diagnostic is
// logged, the half-open client is released and (nil, err) is returned so the
// caller can keep serving in degraded mode.
func Connect(ctx context.Context, cfg config.DatabaseConfig, monitor *Monitor, logger *observability.Logger) (*mongo.Client, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "database", Value: cfg.Name})
	monitor.beginConnect()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetServerMonitor(monitor.serverMonitor())

	logger.Info(ctx, "connecting to document store")

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		monitor.disconnected()
		logConnectFailure(ctx, logger, err)
		return nil, fmt.Errorf("failed to create database client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		monitor.disconnected()
		logConnectFailure(ctx, logger, err)
		// Release monitoring goroutines of the failed client.
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	monitor.connected()
	logger.Info(ctx, "connected to document store")
	return client, nil
}

// Disconnect closes the client gracefully. Safe on a nil client.
func Disconnect(ctx context.Context, client *mongo.Client, monitor *Monitor, logger *observability.Logger) error {
	defer monitor.disconnected()
	if client == nil {
		return nil
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.Error(ctx, "failed to close database connection", err)
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	logger.Info(ctx, "database connection closed")
	return nil
}

// logConnectFailure distinguishes server selection failures, which usually
// mean the host is unreachable or not allow-listed, from other errors.
func logConnectFailure(ctx context.Context, logger *observability.Logger, err error) {
	if IsServerSelectionError(err) {
		logger.Error(ctx, "database server selection failed; server continues without a database", err,
			observability.Field{Key: "hint", Value: "check network connectivity, that the database server is running, and that this host's IP is on the cluster allow-list"},
		)
		return
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		logger.Error(ctx, "database network error; server continues without a database", err,
			observability.Field{Key: "hint", Value: "check the connection string host and port"},
		)
		return
	}
	logger.Error(ctx, "database connection failed; server continues without a database", err,
		observability.Field{Key: "hint", Value: "check MONGODB_URI and credentials"},
	)
}

// IsServerSelectionError reports whether err comes from the driver's server
// selection loop.
func IsServerSelectionError(err error) bool {
	if err == nil {
		return false
	}
	var sse topology.ServerSelectionError
	if errors.As(err, &sse) {
		return true
	}
	return strings.Contains(err.Error(), "server selection error")
}
