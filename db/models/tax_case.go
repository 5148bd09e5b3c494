package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CaseStatus string

const (
	CaseStatusNew             CaseStatus = "NEW"
	CaseStatusInReview        CaseStatus = "IN_REVIEW"
	CaseStatusWaitingOnClient CaseStatus = "WAITING_ON_CLIENT"
	CaseStatusScheduled       CaseStatus = "SCHEDULED"
	CaseStatusOnHold          CaseStatus = "ON_HOLD"
	CaseStatusCompleted       CaseStatus = "COMPLETED"
)

// TaxCase is the central work item: one engagement for one client,
// optionally assigned to an employee, owning all of its sub-records.
type TaxCase struct {
	ID       string `gorm:"primaryKey" json:"id"`
	ClientID string `gorm:"not null;index" json:"client_id"`
	Client   *User  `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	AssignedToID *string `gorm:"index" json:"assigned_to_id"`
	AssignedTo   *User   `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`

	Service  string     `gorm:"not null" json:"service"`
	Status   CaseStatus `gorm:"type:varchar(30);not null;default:'NEW'" json:"status"`
	Priority string     `json:"priority"`
	Notes    string     `gorm:"type:text" json:"notes"`

	Documents     []Document         `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"documents"`
	Appointments  []CaseAppointment  `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"appointments"`
	Invoices      []CaseInvoice      `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"invoices"`
	Tasks         []CaseTask         `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"tasks"`
	InternalNotes []CaseInternalNote `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"internal_notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *TaxCase) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
