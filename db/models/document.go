package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is an uploaded file attached to a case (or referenced from a
// client profile as the aadhaar scan).
type Document struct {
	ID     string `gorm:"primaryKey" json:"id"`
	CaseID string `gorm:"index" json:"case_id"`

	Name       string     `gorm:"not null" json:"name"`
	URL        string     `json:"url"`
	MimeType   string     `json:"mime_type"`
	UploadedAt *time.Time `json:"uploaded_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
