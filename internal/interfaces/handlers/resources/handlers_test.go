package resources

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/middleware"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupResourceApp(t *testing.T, user *middleware.SessionUser) *fiber.App {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.All()...))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	if user != nil {
		app.Use(func(c *fiber.Ctx) error {
			middleware.SetUser(c, user)
			return c.Next()
		})
	}
	Register(app.Group("/api"), db)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func decode(t *testing.T, b []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestGifts_CRUD(t *testing.T) {
	app := setupResourceApp(t, nil)
	personID := uuid.New().String()

	status, b := do(t, app, "POST", "/api/gifts",
		`{"personId":"`+personID+`","amount":"250.00","receivedAt":"2026-03-01T00:00:00Z","designation":"Scholarships"}`)
	require.Equal(t, 201, status, string(b))
	gift := decode(t, b)
	id := gift["id"].(string)
	assert.Equal(t, "USD", gift["currency"])
	assert.Equal(t, "250", gift["amount"])

	status, b = do(t, app, "GET", "/api/gifts/"+id, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "Scholarships", decode(t, b)["designation"])

	status, b = do(t, app, "PATCH", "/api/gifts/"+id, `{"designation":"General"}`)
	require.Equal(t, 200, status, string(b))
	patched := decode(t, b)
	assert.Equal(t, "General", patched["designation"])
	assert.Equal(t, personID, patched["personId"])

	status, b = do(t, app, "DELETE", "/api/gifts/"+id, "")
	assert.Equal(t, 204, status)
	assert.Empty(t, b)

	status, _ = do(t, app, "GET", "/api/gifts/"+id, "")
	assert.Equal(t, 404, status)
	status, _ = do(t, app, "DELETE", "/api/gifts/"+id, "")
	assert.Equal(t, 404, status)
}

func TestGifts_CreateValidation(t *testing.T) {
	app := setupResourceApp(t, nil)

	status, b := do(t, app, "POST", "/api/gifts", `{"amount":"10"}`)
	require.Equal(t, 400, status)
	errObj := decode(t, b)["error"].(map[string]interface{})
	details := errObj["details"].(map[string]interface{})
	assert.Equal(t, "is required", details["personId"])
	assert.Equal(t, "is required", details["receivedAt"])

	status, b = do(t, app, "POST", "/api/gifts",
		`{"personId":"`+uuid.New().String()+`","amount":"12345678901.00","receivedAt":"2026-03-01T00:00:00Z"}`)
	require.Equal(t, 400, status)
	details = decode(t, b)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "must be less than 10000000000", details["amount"])

	status, _ = do(t, app, "POST", "/api/gifts", `[1,2]`)
	assert.Equal(t, 400, status)
	status, _ = do(t, app, "GET", "/api/gifts/not-a-uuid", "")
	assert.Equal(t, 400, status)
}

func TestPersons_ListFiltersAndLimit(t *testing.T) {
	app := setupResourceApp(t, nil)
	household := uuid.New().String()

	for _, body := range []string{
		`{"firstName":"Ada","lastName":"Lovelace","householdId":"` + household + `"}`,
		`{"firstName":"Charles","lastName":"Babbage","householdId":"` + household + `"}`,
		`{"firstName":"Alan","lastName":"Turing"}`,
	} {
		status, b := do(t, app, "POST", "/api/persons", body)
		require.Equal(t, 201, status, string(b))
	}

	status, b := do(t, app, "GET", "/api/persons?householdId="+household, "")
	require.Equal(t, 200, status)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Babbage", rows[0]["lastName"])
	assert.Equal(t, "Lovelace", rows[1]["lastName"])

	status, b = do(t, app, "GET", "/api/persons?limit=1", "")
	require.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(b, &rows))
	assert.Len(t, rows, 1)

	status, _ = do(t, app, "GET", "/api/persons?limit=0", "")
	assert.Equal(t, 400, status)
	status, _ = do(t, app, "GET", "/api/persons?householdId=nope", "")
	assert.Equal(t, 400, status)

	status, b = do(t, app, "GET", "/api/households", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "[]", string(b))
}

func TestOpportunities_OwnerDefaultsToSessionUser(t *testing.T) {
	owner := uuid.New()
	app := setupResourceApp(t, &middleware.SessionUser{ID: owner, Role: "mgo"})

	status, b := do(t, app, "POST", "/api/opportunities", `{"personId":"`+uuid.New().String()+`","askAmount":"50000","stage":"ask"}`)
	require.Equal(t, 201, status, string(b))
	assert.Equal(t, owner.String(), decode(t, b)["ownerId"])

	other := uuid.New().String()
	status, b = do(t, app, "POST", "/api/opportunities", `{"personId":"`+uuid.New().String()+`","ownerId":"`+other+`"}`)
	require.Equal(t, 201, status, string(b))
	assert.Equal(t, other, decode(t, b)["ownerId"])
}

func TestOpportunities_OwnerRequiredWithoutSession(t *testing.T) {
	app := setupResourceApp(t, nil)
	status, b := do(t, app, "POST", "/api/opportunities", `{"personId":"`+uuid.New().String()+`"}`)
	require.Equal(t, 400, status)
	details := decode(t, b)["error"].(map[string]interface{})["details"].(map[string]interface{})
	assert.Equal(t, "is required", details["ownerId"])
}

func TestTasks_Complete(t *testing.T) {
	app := setupResourceApp(t, nil)

	status, b := do(t, app, "POST", "/api/tasks", `{"title":"Send stewardship report"}`)
	require.Equal(t, 201, status, string(b))
	id := decode(t, b)["id"].(string)

	status, b = do(t, app, "PATCH", "/api/tasks/"+id+"/complete", "")
	require.Equal(t, 200, status, string(b))
	assert.Equal(t, float64(1), decode(t, b)["completed"])

	status, b = do(t, app, "GET", "/api/tasks?completed=1", "")
	require.Equal(t, 200, status)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rows))
	assert.Len(t, rows, 1)
}

func TestIntegrationSyncRuns_Nested(t *testing.T) {
	app := setupResourceApp(t, nil)

	status, b := do(t, app, "POST", "/api/integrations", `{"name":"Raiser's Edge","provider":"blackbaud"}`)
	require.Equal(t, 201, status, string(b))
	integrationID := decode(t, b)["id"].(string)

	status, b = do(t, app, "POST", "/api/integrations/"+integrationID+"/sync-runs",
		`{"integrationId":"`+uuid.New().String()+`","recordsProcessed":42}`)
	require.Equal(t, 201, status, string(b))
	assert.Equal(t, integrationID, decode(t, b)["integrationId"])

	status, b = do(t, app, "GET", "/api/integrations/"+integrationID+"/sync-runs", "")
	require.Equal(t, 200, status)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, float64(42), rows[0]["recordsProcessed"])

	status, b = do(t, app, "GET", "/api/integrations/"+uuid.New().String()+"/sync-runs", "")
	require.Equal(t, 200, status)
	assert.Equal(t, "[]", string(b))
}
