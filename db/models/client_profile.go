package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientProfile holds the contact/KYC details for one user (1:1).
type ClientProfile struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Phone   string `json:"phone"`
	PAN     string `gorm:"column:pan" json:"pan"`
	Address string `gorm:"type:text" json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Notes   string `gorm:"type:text" json:"notes"`

	// Optional scanned aadhaar card, stored as a Document row.
	AadhaarDocumentID *string `json:"aadhaar_document_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *ClientProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
