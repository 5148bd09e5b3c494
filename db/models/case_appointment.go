package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentMode string

const (
	AppointmentModeCall     AppointmentMode = "CALL"
	AppointmentModeVideo    AppointmentMode = "VIDEO"
	AppointmentModeInPerson AppointmentMode = "IN_PERSON"
)

type AppointmentStatus string

const (
	AppointmentStatusRequested AppointmentStatus = "REQUESTED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

type CaseAppointment struct {
	ID     string `gorm:"primaryKey" json:"id"`
	CaseID string `gorm:"not null;index" json:"case_id"`

	Title       string            `json:"title"`
	Mode        AppointmentMode   `gorm:"type:varchar(20);not null;default:'CALL'" json:"mode"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'REQUESTED'" json:"status"`
	ScheduledAt *time.Time        `json:"scheduled_at"`
	Notes       string            `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *CaseAppointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
