package router

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"donorcrm-backend/internal/config"
	"donorcrm-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRouterTest(t *testing.T) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), database.Config())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	cfg := &config.Config{Env: "test", AIRateLimit: 30, HealthAdminKey: "k"}
	return New(cfg, db, nil)
}

func TestCreateApp_RequiresDatabaseURL(t *testing.T) {
	_, _, _, err := CreateApp(&config.Config{})
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	app := setupRouterTest(t)

	cases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health/live", 200},
		{"GET", "/health/ready", 200},
		{"GET", "/health", 200},
		{"GET", "/api/dashboard/home", 200},
		{"GET", "/api/dashboard/ceo", 501},
		{"GET", "/api/gifts/analytics", 200},
		{"GET", "/api/gifts/export", 200},
		{"GET", "/api/gifts", 200},
		{"GET", "/api/gifts/" + uuid.New().String(), 404},
		{"GET", "/api/persons", 200},
		{"GET", "/api/unknown", 404},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tc.method, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
		})
	}
}

func TestAIChat_NotConfigured(t *testing.T) {
	app := setupRouterTest(t)
	req := httptest.NewRequest("POST", "/api/ai/chat", strings.NewReader(`{"message":"who should I call today?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := setupRouterTest(t)
	_, err := app.Test(httptest.NewRequest("GET", "/api/persons", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `donorcrm_http_requests_total{method="GET",route="/api/persons`)
}
