package bootstrap

import (
	"donorcrm-backend/internal/config"
	"donorcrm-backend/internal/interfaces/router"
	"donorcrm-backend/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless hosts (the api handler imports this package, not internal).
// Migrations are left to the long-running server in cmd/api.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Setup(cfg.LogLevel, cfg.Env)
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
