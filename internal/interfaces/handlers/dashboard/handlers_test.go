package dashboard

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	dashsvc "donorcrm-backend/internal/application/dashboard"
	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDashboardHandlers(t *testing.T, role string) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.All()...))
	h := &Handlers{Service: &dashsvc.Service{DB: db}}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	if role != "" {
		app.Use(func(c *fiber.Ctx) error {
			middleware.SetUser(c, &middleware.SessionUser{ID: uuid.New(), Role: role})
			return c.Next()
		})
	}
	h.Register(app.Group("/api"))
	return app
}

func TestHome_EmptyDatabase(t *testing.T) {
	app := setupDashboardHandlers(t, "")
	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard/home", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "0", out["ytdRaised"])
	assert.Equal(t, "0", out["avgGiftSize"])
	assert.Equal(t, float64(0), out["ytdGiftCount"])
	assert.Equal(t, []interface{}{}, out["nextActions"])
}

func TestRoleDashboards_NotImplemented(t *testing.T) {
	app := setupDashboardHandlers(t, "")
	for _, p := range []string{"/api/dashboard/mgo", "/api/dashboard/dev-director", "/api/dashboard/ceo"} {
		resp, err := app.Test(httptest.NewRequest("GET", p, nil))
		require.NoError(t, err)
		assert.Equal(t, 501, resp.StatusCode, p)
	}
}

func TestForRole(t *testing.T) {
	resp, err := setupDashboardHandlers(t, domain.RoleMGO).Test(httptest.NewRequest("GET", "/api/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, 501, resp.StatusCode)

	resp, err = setupDashboardHandlers(t, domain.RoleStaff).Test(httptest.NewRequest("GET", "/api/dashboard", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
