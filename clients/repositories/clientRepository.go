package repositories

import (
	"errors"
	"fmt"
	"strings"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

type ClientRepository interface {
	GetOrCreateProfile(userID string) (*models.ClientProfile, error)
	UpdateProfile(profile *models.ClientProfile, updates map[string]interface{}) (*models.ClientProfile, error)

	CreateAccessRequest(request *models.ClientAccessRequest) (*models.ClientAccessRequest, error)
	GetAccessRequestByID(id string) (*models.ClientAccessRequest, error)
	GetAccessRequests(status string) ([]models.ClientAccessRequest, error)
	SaveAccessRequest(request *models.ClientAccessRequest) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// GetOrCreateProfile returns the user's profile, provisioning an empty
// row on first read. Reads of never-seen profiles therefore write.
func (r *clientRepository) GetOrCreateProfile(userID string) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up profile for user %s: %w", userID, err)
	}

	profile = models.ClientProfile{UserID: userID}
	if err := r.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to provision profile for user %s: %w", userID, err)
	}
	if err := r.db.Preload("User").Where("id = ?", profile.ID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *clientRepository) UpdateProfile(profile *models.ClientProfile, updates map[string]interface{}) (*models.ClientProfile, error) {
	if len(updates) > 0 {
		if err := r.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile %s: %w", profile.ID, err)
		}
	}
	var fresh models.ClientProfile
	if err := r.db.Preload("User").Where("id = ?", profile.ID).First(&fresh).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (r *clientRepository) CreateAccessRequest(request *models.ClientAccessRequest) (*models.ClientAccessRequest, error) {
	if err := r.db.Create(request).Error; err != nil {
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}
	return r.GetAccessRequestByID(request.ID)
}

func (r *clientRepository) GetAccessRequestByID(id string) (*models.ClientAccessRequest, error) {
	var request models.ClientAccessRequest
	if err := r.db.Preload("User").Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *clientRepository) GetAccessRequests(status string) ([]models.ClientAccessRequest, error) {
	var requests []models.ClientAccessRequest

	db := r.db.Preload("User")
	if status != "" {
		db = db.Where("status = ?", strings.ToUpper(status))
	}

	if err := db.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch access requests: %w", err)
	}
	return requests, nil
}

func (r *clientRepository) SaveAccessRequest(request *models.ClientAccessRequest) error {
	if err := r.db.Save(request).Error; err != nil {
		return fmt.Errorf("failed to save access request %s: %w", request.ID, err)
	}
	return nil
}
