package repositories

import (
	"fmt"
	"strings"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetUserByEmail(email string) (*models.User, error)
	GetFilteredUsers(filters map[string]string) ([]models.User, error)
	CountUsersByRole() (map[models.Role]int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetFilteredUsers(filters map[string]string) ([]models.User, error) {
	var users []models.User

	db := r.db.Model(&models.User{})
	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "role":
			db = db.Where("role = ?", strings.ToUpper(value))
		case "email":
			db = db.Where("email = ?", strings.ToLower(value))
		}
	}

	if err := db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

func (r *userRepository) CountUsersByRole() (map[models.Role]int64, error) {
	type roleCount struct {
		Role  models.Role
		Count int64
	}
	var rows []roleCount
	err := r.db.Model(&models.User{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := make(map[models.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
