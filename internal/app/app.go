// Package app assembles the fiber application from explicitly constructed
// dependencies.
package app

import (
	"context"
	"time"

	"produk/internal/database"
	"produk/internal/handlers"
	"produk/internal/metrics"
	"produk/internal/middleware"
	"produk/internal/repositories"
	"produk/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Dependencies are the handles the application is built from.
// DB is nil when products are kept in memory; Events may be nil.
type Dependencies struct {
	DB      *gorm.DB
	Repo    repositories.ProductRepository
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
	Events  services.EventPublisher
}

// NewApp wires middleware, product routes, /health and /metrics.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "produk",
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(deps.Logger),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", healthHandler(deps.DB))

	productService := services.NewProductService(deps.Repo, deps.Events, deps.Metrics, deps.Logger)
	productHandler := handlers.NewProductHandler(productService, deps.Logger)
	productHandler.RegisterRoutes(app)

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, dbState := fiber.StatusOK, "memory"
		if db != nil {
			dbState = "connected"
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := database.Ping(ctx, db); err != nil {
				status, dbState = fiber.StatusServiceUnavailable, "unreachable"
			}
		}
		health := "healthy"
		if status != fiber.StatusOK {
			health = "unhealthy"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":   health,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
		})
	}
}
