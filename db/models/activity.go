package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity is an audit/log entry, optionally linked to a user.
type Activity struct {
	ID string `gorm:"primaryKey" json:"id"`

	Type    string `gorm:"not null;index" json:"type"`
	Message string `gorm:"type:text" json:"message"`

	UserID *string `gorm:"index" json:"user_id"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
