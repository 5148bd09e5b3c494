package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	activity_services "tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/cases/repositories"
	router "tax-backoffice-backend/cases/routes"
	"tax-backoffice-backend/cases/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCaseApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))

	app := fiber.New()
	caseRepo := repositories.NewCaseRepository(db)
	recorder := activity_services.NewRecorder(db, nil, nil, context.Background())
	router.CaseRouterInit(app, db, caseRepo, nil, recorder)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (int, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func TestCreateCaseSeedsGSTDefaultTasks(t *testing.T) {
	app, db := setupCaseApp(t)

	status, raw := postJSON(t, app, "/api/v1/cases", map[string]interface{}{
		"clientEmail": "a@x.com",
		"service":     "GST Filing",
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var dto services.CaseDTO
	require.NoError(t, json.Unmarshal(raw, &dto))

	require.Len(t, dto.Tasks, 3)
	titles := []string{dto.Tasks[0].Title, dto.Tasks[1].Title, dto.Tasks[2].Title}
	assert.ElementsMatch(t, []string{
		"Collect sales invoices",
		"Collect purchase invoices",
		"Reconcile input credits",
	}, titles)
	for _, task := range dto.Tasks {
		assert.Equal(t, "TODO", task.Status)
	}

	// The client user was provisioned implicitly.
	var client models.User
	require.NoError(t, db.First(&client, "email = ?", "a@x.com").Error)
	assert.Equal(t, "a", client.Name)
}

func TestCreateCaseExplicitTasksSkipDefaults(t *testing.T) {
	app, _ := setupCaseApp(t)

	status, raw := postJSON(t, app, "/api/v1/cases", map[string]interface{}{
		"clientEmail": "b@x.com",
		"service":     "GST Filing",
		"tasks": []map[string]interface{}{
			{"title": "Only this one"},
		},
	})
	require.Equal(t, fiber.StatusOK, status, string(raw))

	var dto services.CaseDTO
	require.NoError(t, json.Unmarshal(raw, &dto))
	require.Len(t, dto.Tasks, 1)
	assert.Equal(t, "Only this one", dto.Tasks[0].Title)
}

func TestCreateCaseRequiresClientEmailAndService(t *testing.T) {
	app, _ := setupCaseApp(t)

	status, _ := postJSON(t, app, "/api/v1/cases", map[string]interface{}{
		"service": "GST Filing",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = postJSON(t, app, "/api/v1/cases", map[string]interface{}{
		"clientEmail": "a@x.com",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestGetCaseNotFound(t *testing.T) {
	app, _ := setupCaseApp(t)

	req := httptest.NewRequest("GET", "/api/v1/cases/nope", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteCaseRemovesChildren(t *testing.T) {
	app, db := setupCaseApp(t)

	status, raw := postJSON(t, app, "/api/v1/cases", map[string]interface{}{
		"clientEmail": "c@x.com",
		"service":     "ITR Filing",
	})
	require.Equal(t, fiber.StatusOK, status)

	var dto services.CaseDTO
	require.NoError(t, json.Unmarshal(raw, &dto))

	req := httptest.NewRequest("DELETE", "/api/v1/cases/"+dto.ID, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var taskCount int64
	require.NoError(t, db.Model(&models.CaseTask{}).Where("case_id = ?", dto.ID).Count(&taskCount).Error)
	assert.Equal(t, int64(0), taskCount)
}
