package services

import (
	"testing"

	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))
	return db
}

func TestEnsureUserCreatesWithLocalPartName(t *testing.T) {
	db := openTestDB(t)

	user, err := EnsureUser(db, UserIdentity{Email: "Priya@Example.com"})
	require.NoError(t, err)

	assert.Equal(t, "priya@example.com", user.Email)
	assert.Equal(t, "priya", user.Name)
	assert.Equal(t, models.UserRole, user.Role)
}

func TestEnsureUserWithoutRoleNeverChangesRole(t *testing.T) {
	db := openTestDB(t)

	admin := models.AdminRole
	user, err := EnsureUser(db, UserIdentity{Email: "boss@firm.in", Role: &admin})
	require.NoError(t, err)
	require.Equal(t, models.AdminRole, user.Role)

	// Re-resolving the same email with no role must leave ADMIN intact.
	again, err := EnsureUser(db, UserIdentity{Email: "boss@firm.in", Name: "The Boss"})
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", again.ID).Error)
	assert.Equal(t, models.AdminRole, stored.Role)
	assert.Equal(t, "The Boss", stored.Name)
}

func TestEnsureUserEmptyEmailFails(t *testing.T) {
	db := openTestDB(t)

	_, err := EnsureUser(db, UserIdentity{Email: "   "})
	assert.Error(t, err)
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	first, err := EnsureUser(db, UserIdentity{Email: "dev@firm.in"})
	require.NoError(t, err)
	second, err := EnsureUser(db, UserIdentity{Email: "dev@firm.in"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, models.AdminRole, NormalizeRole("admin"))
	assert.Equal(t, models.ClientPendingRole, NormalizeRole(" client_pending "))
	assert.Equal(t, models.UserRole, NormalizeRole("garbage"))
	assert.Equal(t, models.UserRole, NormalizeRole(""))
	// Re-normalizing a valid value is a no-op.
	assert.Equal(t, models.EmployeeRole, NormalizeRole(string(models.EmployeeRole)))
}
