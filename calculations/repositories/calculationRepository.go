package repositories

import (
	"fmt"
	"strings"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

type CalculationRepository interface {
	CreateCalculation(calculation *models.Calculation) (*models.Calculation, error)
	GetCalculations(take int, skip int, email string) ([]models.Calculation, error)
	GetRecentCalculations(limit int) ([]models.Calculation, error)
}

type calculationRepository struct {
	db *gorm.DB
}

func NewCalculationRepository(db *gorm.DB) CalculationRepository {
	return &calculationRepository{db: db}
}

func (r *calculationRepository) CreateCalculation(calculation *models.Calculation) (*models.Calculation, error) {
	if err := r.db.Create(calculation).Error; err != nil {
		return nil, fmt.Errorf("failed to create calculation: %w", err)
	}
	var fresh models.Calculation
	if err := r.db.Preload("User").Where("id = ?", calculation.ID).First(&fresh).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (r *calculationRepository) GetCalculations(take int, skip int, email string) ([]models.Calculation, error) {
	var calculations []models.Calculation

	db := r.db.Model(&models.Calculation{}).Preload("User")
	if email != "" {
		db = db.Joins("JOIN users ON users.id = calculations.user_id").
			Where("users.email = ?", strings.ToLower(email))
	}

	err := db.Order("created_at desc").Limit(take).Offset(skip).Find(&calculations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calculations: %w", err)
	}
	return calculations, nil
}

func (r *calculationRepository) GetRecentCalculations(limit int) ([]models.Calculation, error) {
	var calculations []models.Calculation
	err := r.db.Preload("User").Order("created_at desc").Limit(limit).Find(&calculations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent calculations: %w", err)
	}
	return calculations, nil
}
