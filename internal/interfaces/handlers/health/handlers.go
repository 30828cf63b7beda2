package health

import (
	healthsvc "donorcrm-backend/internal/application/health"
	"donorcrm-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "donorcrm-api"

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	Storage        healthsvc.StorageProbe
	HealthAdminKey string
}

// Register mounts /health, /health/live, /health/ready, /health/errors and /health/reset.
func (h *Handlers) Register(app fiber.Router) {
	app.Get("/health", h.JSON)
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)
	app.Get("/health/errors", h.Errors)
	app.Get("/health/reset", h.Reset)
	app.Post("/health/reset", h.Reset)
}

// Reset clears health stats in Redis. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable, nil)
	}
	if err := healthsvc.ResetStats(c.UserContext(), h.Rdb); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Stats reset successfully"})
}

// JSON returns the full health report.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB, h.Storage)
	return c.JSON(fiber.Map{
		"service":      serviceName,
		"status":       result.Status,
		"timestamp":    result.Timestamp,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Live always answers 200 while the process serves HTTP.
func (h *Handlers) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready answers 503 when a required dependency check fails.
func (h *Handlers) Ready(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB, h.Storage)
	status := fiber.StatusOK
	if !result.Ready() {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":       result.Status,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the most recent error log entries, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	entries, err := healthsvc.RecentErrors(c.UserContext(), h.Rdb)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}
