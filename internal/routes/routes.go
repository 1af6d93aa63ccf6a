// Package routes defines the API routing configuration.
package routes

import (
	"time"

	"posreport/internal/handlers"
	"posreport/internal/metrics"
	"posreport/internal/middleware"
	"posreport/internal/models"
	"posreport/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *middleware.AuthMiddleware
	Datasets  *handlers.DatasetHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler
	Metrics   *metrics.PrometheusCollector
}

// GenerateLimit caps dataset generation per client and minute.
const GenerateLimit = 10

// SetupRoutes mounts the public probes and the authenticated API.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Health.Check)
	if h.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(h.Metrics.Handler()))
	}

	api := app.Group("/api", h.Auth.Handler)

	datasets := api.Group("/datasets")
	datasets.Post("/",
		middleware.HasPermission(models.PermissionDatasetWrite),
		limiter.New(limiter.Config{
			Max:        GenerateLimit,
			Expiration: time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}),
		h.Datasets.Generate)
	datasets.Post("/import", middleware.HasPermission(models.PermissionDatasetImport), h.Datasets.Import)
	datasets.Get("/", middleware.HasPermission(models.PermissionReportRead), h.Datasets.List)
	datasets.Get("/:id", middleware.HasPermission(models.PermissionReportRead), h.Datasets.Get)
	datasets.Delete("/:id", middleware.HasPermission(models.PermissionDatasetWrite), h.Datasets.Delete)

	canRead := middleware.HasPermission(models.PermissionReportRead)
	datasets.Get("/:id/overview", canRead, h.Dashboard.Overview)
	datasets.Get("/:id/sales/daily", canRead, h.Dashboard.DailySales)
	datasets.Get("/:id/sales/:dimension", canRead, h.Dashboard.Breakdown)
	datasets.Get("/:id/top/:dimension", canRead, h.Dashboard.Top)

	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Route not found")
	})
}
