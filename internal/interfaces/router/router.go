package router

import (
	"errors"
	"net/http"

	aisvc "donorcrm-backend/internal/application/ai"
	dashsvc "donorcrm-backend/internal/application/dashboard"
	giftsvc "donorcrm-backend/internal/application/gifts"
	"donorcrm-backend/internal/config"
	"donorcrm-backend/internal/infrastructure/database"
	aihandler "donorcrm-backend/internal/interfaces/handlers/ai"
	dashhandler "donorcrm-backend/internal/interfaces/handlers/dashboard"
	gifthandler "donorcrm-backend/internal/interfaces/handlers/gifts"
	healthhandler "donorcrm-backend/internal/interfaces/handlers/health"
	reshandler "donorcrm-backend/internal/interfaces/handlers/resources"
	"donorcrm-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp opens Postgres (required) and Redis (optional, REDIS_URL) and builds the app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, errors.New("DATABASE_URL is required")
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opts)
	}
	return New(cfg, db, rdb), db, rdb, nil
}

// New wires middleware and routes onto a fresh app. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	metrics := middleware.NewMetrics()

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(metrics.Handler())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
		IsProduction:  cfg.IsProduction(),
	}))
	app.Use(middleware.Session(middleware.SessionConfig{Secret: cfg.SessionSecret}, rdb))
	app.Use(middleware.HealthMarker(rdb))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &database.Pinger{DB: db},
		Storage:        &database.StorageProbe{DB: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	hh.Register(app)

	api := app.Group("/api")

	(&dashhandler.Handlers{Service: &dashsvc.Service{DB: db}}).Register(api)
	// Must precede the generic /gifts/:id routes.
	(&gifthandler.Handlers{Service: &giftsvc.Service{DB: db}}).Register(api)
	reshandler.Register(api, db)

	ai := &aisvc.Service{DB: db}
	if cfg.OpenAIBaseURL != "" && cfg.OpenAIAPIKey != "" {
		ai.Client = aisvc.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.TranscribeModel)
	}
	(&aihandler.Handlers{Service: ai}).Register(api, middleware.NewRateLimiter(cfg.AIRateLimit).Handler())

	return app
}

// Handler exposes the app as a net/http handler for serverless hosts.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
