package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaseInternalNote is staff-only commentary on a case, never shown to the
// client.
type CaseInternalNote struct {
	ID     string `gorm:"primaryKey" json:"id"`
	CaseID string `gorm:"not null;index" json:"case_id"`

	AuthorEmail string `json:"author_email"`
	Body        string `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *CaseInternalNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
