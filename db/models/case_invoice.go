package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusSent  InvoiceStatus = "SENT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
	InvoiceStatusVoid  InvoiceStatus = "VOID"
)

type CaseInvoice struct {
	ID     string   `gorm:"primaryKey" json:"id"`
	CaseID string   `gorm:"not null;index" json:"case_id"`
	Case   *TaxCase `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	Number   string          `json:"number"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency string          `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Status   InvoiceStatus   `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`

	IssuedAt *time.Time `json:"issued_at"`
	DueAt    *time.Time `json:"due_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *CaseInvoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
