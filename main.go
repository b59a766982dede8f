package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"internhub-api/config"
	"internhub-api/internal/api/handlers"
	"internhub-api/internal/app"
	"internhub-api/internal/logger"
	"internhub-api/internal/server"
)

// @title           InternHub API
// @version         1.0
// @description     Hiring marketplace connecting verified partner organizations with students.

// @contact.name   API Support
// @contact.email  support@internhub.example

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	err = run(cfg, appLog)
	if err != nil {
		appLog.Error("Application stopped with error", map[string]interface{}{"error": err.Error()})
	}
	_ = appLog.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every resource with a deferred cleanup, so they are released
// before main decides the exit code.
func run(cfg *config.Config, appLog logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, appLog, handlers.NewValidator())
	if err != nil {
		return fmt.Errorf("initialising application: %w", err)
	}
	defer application.Close()

	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			serveErr = fmt.Errorf("server error: %w", serveErr)
		}
	case <-ctx.Done():
		appLog.Info("Shutting down server", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}

	if serveErr == nil {
		appLog.Info("Application gracefully stopped.", nil)
	}
	return serveErr
}
