package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessRequestStatus string

const (
	AccessRequestStatusPending  AccessRequestStatus = "PENDING"
	AccessRequestStatusApproved AccessRequestStatus = "APPROVED"
	AccessRequestStatusRejected AccessRequestStatus = "REJECTED"
)

// ClientAccessRequest tracks a USER asking to be upgraded to CLIENT.
// Approval promotes the underlying user and records who decided.
type ClientAccessRequest struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Reason string              `gorm:"type:text" json:"reason"`
	Status AccessRequestStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	DecidedByEmail *string    `json:"decided_by_email"`
	DecidedAt      *time.Time `json:"decided_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ClientAccessRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
