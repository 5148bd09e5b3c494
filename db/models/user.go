package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	AdminRole         Role = "ADMIN"
	EmployeeRole      Role = "EMPLOYEE"
	ClientRole        Role = "CLIENT"
	ClientPendingRole Role = "CLIENT_PENDING"
	UserRole          Role = "USER"
)

// User is the root identity. Every other entity references a user by email
// in request/response payloads and by id internally.
type User struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Email string `gorm:"unique;not null" json:"email"`
	Name  string `json:"name"`
	Role  Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate generates an id when the caller didn't supply one. Import
// payloads carry their own ids and those are stored as-is.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
