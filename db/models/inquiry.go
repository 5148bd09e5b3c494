package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InquiryStatus string

const (
	InquiryStatusPending   InquiryStatus = "PENDING"
	InquiryStatusResponded InquiryStatus = "RESPONDED"
)

// Inquiry is a contact-form submission from the public site.
type Inquiry struct {
	ID string `gorm:"primaryKey" json:"id"`

	Name    string        `json:"name"`
	Email   string        `gorm:"not null;index" json:"email"`
	Subject string        `json:"subject"`
	Message string        `gorm:"type:text" json:"message"`
	Status  InquiryStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
