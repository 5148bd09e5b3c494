package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"tax-backoffice-backend/calculations/repositories"
	router "tax-backoffice-backend/calculations/routes"
	"tax-backoffice-backend/calculations/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCalculationApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))

	app := fiber.New()
	router.InitCalculationRoutes(app, repositories.NewCalculationRepository(db), db)
	return app, db
}

func TestGetCalculationsClampsTake(t *testing.T) {
	app, db := setupCalculationApp(t)

	user := models.User{Email: "heavy@x.com", Name: "heavy"}
	require.NoError(t, db.Create(&user).Error)
	for i := 0; i < 250; i++ {
		require.NoError(t, db.Create(&models.Calculation{
			UserID: user.ID,
			Kind:   "ADVANCE_TAX",
			Input:  []byte(fmt.Sprintf(`{"n":%d}`, i)),
		}).Error)
	}

	req := httptest.NewRequest("GET", "/api/v1/calculations?take=10000", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var dtos []services.CalculationDTO
	require.NoError(t, json.Unmarshal(raw, &dtos))
	assert.Len(t, dtos, 200)
}

func TestCreateCalculationRequiresEmail(t *testing.T) {
	app, _ := setupCalculationApp(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"input": map[string]interface{}{"income": 100000},
	})
	req := httptest.NewRequest("POST", "/api/v1/calculations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateCalculationProvisionsUser(t *testing.T) {
	app, db := setupCalculationApp(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"email":           "calc@x.com",
		"kind":            "ADVANCE_TAX",
		"input":           map[string]interface{}{"income": 1200000},
		"result":          map[string]interface{}{"tax": 90000},
		"sourceTimestamp": 1735689600000,
	})
	req := httptest.NewRequest("POST", "/api/v1/calculations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var dto services.CalculationDTO
	require.NoError(t, json.Unmarshal(raw, &dto))
	assert.Equal(t, int64(1735689600000), dto.SourceTimestamp)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "calc@x.com").Error)
}
