package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmatch/internal/apierrors"
	"jobmatch/internal/bootstrap"
	"jobmatch/internal/config"
	"jobmatch/internal/observability"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger := observability.NewLogger()
	defer logger.Sync()
	apierrors.SetLogger(logger)
	ctx := context.Background()

	cfg, err := config.Load(ctx, logger)
	if err != nil {
		logger.Error(ctx, "failed to load configuration", err)
		os.Exit(1)
	}

	// kill (no param) default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	if err := run(ctx, cfg, logger, quit); err != nil {
		logger.Error(ctx, "server failed to start", err)
		os.Exit(1)
	}
}

// run starts the server and blocks until a signal arrives or ctx is done,
// then shuts down within shutdownTimeout. Only a start failure is returned.
func run(ctx context.Context, cfg *config.Config, logger *observability.Logger, quit <-chan os.Signal) error {
	result, err := bootstrap.Start(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}

	select {
	case sig := <-quit:
		logger.Info(ctx, "Shutting down server...", observability.Field{Key: "signal", Value: sig.String()})
	case <-ctx.Done():
		logger.Info(ctx, "Shutting down server...", observability.Field{Key: "reason", Value: ctx.Err().Error()})
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := result.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "shutdown finished with errors", err)
	}

	logger.Info(ctx, "Server exited gracefully")
	return nil
}
