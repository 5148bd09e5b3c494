package repositories

import (
	"fmt"
	"strings"
	"time"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	CreateActivity(activity *models.Activity) (*models.Activity, error)
	GetActivities(take int, skip int, email string) ([]models.Activity, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) CreateActivity(activity *models.Activity) (*models.Activity, error) {
	if err := r.db.Create(activity).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

func (r *activityRepository) GetActivities(take int, skip int, email string) ([]models.Activity, error) {
	var activities []models.Activity

	db := r.db.Model(&models.Activity{}).Preload("User")
	if email != "" {
		db = db.Joins("JOIN users ON users.id = activities.user_id").
			Where("users.email = ?", strings.ToLower(email))
	}

	err := db.Order("activities.created_at desc").Limit(take).Offset(skip).Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.Activity{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune activities: %w", result.Error)
	}
	return result.RowsAffected, nil
}
