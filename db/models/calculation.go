package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Calculation stores one computed tax report for a user: the raw input
// and result blobs, plus the timestamp the calculation was made on the
// client side (distinct from row creation time).
type Calculation struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Kind   string         `gorm:"column:kind" json:"kind"`
	Input  datatypes.JSON `json:"input"`
	Result datatypes.JSON `json:"result"`

	SourceTimestamp *time.Time `json:"source_timestamp"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Calculation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
