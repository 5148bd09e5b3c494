package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

type CaseTask struct {
	ID     string `gorm:"primaryKey" json:"id"`
	CaseID string `gorm:"not null;index" json:"case_id"`

	Title  string     `gorm:"not null" json:"title"`
	Status TaskStatus `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`

	AssigneeID *string `gorm:"index" json:"assignee_id"`
	Assignee   *User   `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`

	DueAt *time.Time `json:"due_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *CaseTask) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
