package repositories

import (
	"fmt"
	"strings"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	CreateInquiry(inquiry *models.Inquiry) (*models.Inquiry, error)
	GetInquiryByID(id string) (*models.Inquiry, error)
	GetInquiries(status string) ([]models.Inquiry, error)
	SaveInquiry(inquiry *models.Inquiry) error
	CountPending() (int64, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) CreateInquiry(inquiry *models.Inquiry) (*models.Inquiry, error) {
	if err := r.db.Create(inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return inquiry, nil
}

func (r *inquiryRepository) GetInquiryByID(id string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.Where("id = ?", id).First(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) GetInquiries(status string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry

	db := r.db.Model(&models.Inquiry{})
	if status != "" {
		db = db.Where("status = ?", strings.ToUpper(status))
	}

	if err := db.Order("created_at desc").Find(&inquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *inquiryRepository) SaveInquiry(inquiry *models.Inquiry) error {
	if err := r.db.Save(inquiry).Error; err != nil {
		return fmt.Errorf("failed to save inquiry %s: %w", inquiry.ID, err)
	}
	return nil
}

func (r *inquiryRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&models.Inquiry{}).
		Where("status = ?", models.InquiryStatusPending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending inquiries: %w", err)
	}
	return count, nil
}
