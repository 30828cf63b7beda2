package gifts

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	giftsvc "donorcrm-backend/internal/application/gifts"
	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGiftHandlers(t *testing.T) (*fiber.App, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.All()...))
	h := &Handlers{Service: &giftsvc.Service{DB: db}}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h.Register(app.Group("/api"))
	return app, db
}

func TestAnalytics_FilterByCategory(t *testing.T) {
	app, db := setupGiftHandlers(t)
	pid := uuid.New()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&domain.Gift{PersonID: pid, Amount: decimal.NewFromInt(10000), Currency: "USD", ReceivedAt: now}).Error)
	require.NoError(t, db.Create(&domain.Gift{PersonID: pid, Amount: decimal.NewFromInt(20), Currency: "USD", ReceivedAt: now}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/gifts/analytics?category=major", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	var out struct {
		Gifts []struct {
			Category string `json:"category"`
		} `json:"gifts"`
		Categories []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
		} `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Gifts, 1)
	assert.Equal(t, "major", out.Gifts[0].Category)
	assert.Equal(t, 1, out.Categories[3].Count)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/gifts/analytics?category=bogus", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestExport_Headers(t *testing.T) {
	app, _ := setupGiftHandlers(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/api/gifts/export", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment; filename=gifts-"))
}
