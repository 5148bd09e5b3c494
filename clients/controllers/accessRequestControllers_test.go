package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	activity_services "tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/clients/repositories"
	router "tax-backoffice-backend/clients/routes"
	"tax-backoffice-backend/clients/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupClientApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))

	app := fiber.New()
	clientRepo := repositories.NewClientRepository(db)
	recorder := activity_services.NewRecorder(db, nil, nil, context.Background())
	router.ClientInitRoutes(app, clientRepo, recorder, db)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestApproveAccessRequestPromotesUser(t *testing.T) {
	app, db := setupClientApp(t)

	status, raw := doJSON(t, app, "POST", "/api/v1/client-access-requests", map[string]interface{}{
		"email":  "want-client@x.com",
		"reason": "Existing client of the firm",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var created services.AccessRequestDTO
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "PENDING", created.Status)
	assert.Nil(t, created.DecidedAt)

	// Requesting parks the user as CLIENT_PENDING.
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "want-client@x.com").Error)
	assert.Equal(t, models.ClientPendingRole, user.Role)

	status, raw = doJSON(t, app, "PATCH", "/api/v1/client-access-requests/"+created.ID, map[string]interface{}{
		"status":    "approved",
		"decidedBy": "admin@firm.in",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var decided services.AccessRequestDTO
	require.NoError(t, json.Unmarshal(raw, &decided))
	assert.Equal(t, "APPROVED", decided.Status)
	require.NotNil(t, decided.DecidedAt)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, "admin@firm.in", *decided.DecidedBy)

	require.NoError(t, db.First(&user, "email = ?", "want-client@x.com").Error)
	assert.Equal(t, models.ClientRole, user.Role)
}

func TestRejectAccessRequestLeavesRoleAlone(t *testing.T) {
	app, db := setupClientApp(t)

	status, raw := doJSON(t, app, "POST", "/api/v1/client-access-requests", map[string]interface{}{
		"email": "maybe@x.com",
	})
	require.Equal(t, fiber.StatusOK, status)

	var created services.AccessRequestDTO
	require.NoError(t, json.Unmarshal(raw, &created))

	status, raw = doJSON(t, app, "PATCH", "/api/v1/client-access-requests/"+created.ID, map[string]interface{}{
		"status": "rejected",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var decided services.AccessRequestDTO
	require.NoError(t, json.Unmarshal(raw, &decided))
	assert.Equal(t, "REJECTED", decided.Status)
	require.NotNil(t, decided.DecidedAt)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "maybe@x.com").Error)
	assert.Equal(t, models.ClientPendingRole, user.Role)
}

func TestGetProfileProvisionsUserAndProfile(t *testing.T) {
	app, db := setupClientApp(t)

	req := httptest.NewRequest("GET", "/api/v1/profiles/new-client@x.com", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "new-client@x.com").Error)

	var profileCount int64
	require.NoError(t, db.Model(&models.ClientProfile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error)
	assert.Equal(t, int64(1), profileCount)
}
