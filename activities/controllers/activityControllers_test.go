package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"tax-backoffice-backend/activities/repositories"
	router "tax-backoffice-backend/activities/routes"
	"tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupActivityApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))

	app := fiber.New()
	activityRepo := repositories.NewActivityRepository(db)
	recorder := services.NewRecorder(db, nil, nil, context.Background())
	router.InitActivityRoutes(app, activityRepo, recorder, db)
	return app, db
}

func TestGetActivitiesClampsTake(t *testing.T) {
	app, db := setupActivityApp(t)

	for i := 0; i < 520; i++ {
		require.NoError(t, db.Create(&models.Activity{
			Type:    "NOISE",
			Message: fmt.Sprintf("event %d", i),
		}).Error)
	}

	req := httptest.NewRequest("GET", "/api/v1/activities?take=10000", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var dtos []services.ActivityDTO
	require.NoError(t, json.Unmarshal(raw, &dtos))
	assert.Len(t, dtos, 500)
}

func TestGetActivitiesEmailFilterIsCaseInsensitive(t *testing.T) {
	app, db := setupActivityApp(t)

	user := models.User{Email: "boss@firm.in", Name: "Boss", Role: models.AdminRole}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Activity{
		Type:    "LOGIN",
		Message: "Signed in",
		UserID:  &user.ID,
	}).Error)

	req := httptest.NewRequest("GET", "/api/v1/activities?email=Boss@Firm.in", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var dtos []services.ActivityDTO
	require.NoError(t, json.Unmarshal(raw, &dtos))
	require.Len(t, dtos, 1)
	require.NotNil(t, dtos[0].Email)
	assert.Equal(t, "boss@firm.in", *dtos[0].Email)
}

func TestCreateActivityRequiresType(t *testing.T) {
	app, _ := setupActivityApp(t)

	payload, _ := json.Marshal(map[string]interface{}{"message": "no type"})
	req := httptest.NewRequest("POST", "/api/v1/activities", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateActivityLinksUserByEmail(t *testing.T) {
	app, db := setupActivityApp(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"type":    "CASE_CREATED",
		"message": "Opened GST case",
		"email":   "emp@firm.in",
	})
	req := httptest.NewRequest("POST", "/api/v1/activities", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var dto services.ActivityDTO
	require.NoError(t, json.Unmarshal(raw, &dto))
	require.NotNil(t, dto.Email)
	assert.Equal(t, "emp@firm.in", *dto.Email)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "emp@firm.in").Error)
}
