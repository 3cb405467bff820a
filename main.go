package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"produk/internal/app"
	"produk/internal/config"
	"produk/internal/database"
	"produk/internal/logging"
	"produk/internal/metrics"
	"produk/internal/repositories"
	"produk/pkg/rabbitmq"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

// run owns every resource it opens so deferred cleanup happens before main exits.
func run() error {
	// --- Configuration ---
	cfg, err := config.Load(viper.New(), ".env")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	// --- Storage ---
	deps := app.Dependencies{
		Logger:  logger,
		Metrics: metrics.New(),
	}
	if cfg.DBDriver == config.DriverMemory {
		deps.Repo = repositories.NewMemoryProductRepository()
		logger.Warn("Using in-memory product storage; data is lost on exit")
	} else {
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN, logging.NewGormLogger(logger))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close(db)
		deps.DB = db
		deps.Repo = repositories.NewGORMProductRepository(db)
		logger.WithField("driver", cfg.DBDriver).Info("Database ready")
	}

	// --- Product events (optional) ---
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: cfg.EventsExchange,
			Queue:    cfg.EventsQueue,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		deps.Events = mqClient
	}

	application := app.NewApp(deps)

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", cfg.AppPort)
		serverErr <- application.Listen(cfg.AppPort)
	}()

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			logger.Errorf("Server failed: %v", err)
		}
	}

	if err := application.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("error during Fiber shutdown: %w", err)
	}
	logger.Info("Server gracefully stopped")
	return nil
}
