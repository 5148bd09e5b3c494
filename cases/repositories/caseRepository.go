package repositories

import (
	"fmt"
	"strings"
	"time"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

type CaseRepository interface {
	CreateCase(taxCase *models.TaxCase) (*models.TaxCase, error)
	GetCaseByID(id string) (*models.TaxCase, error)
	GetFilteredCases(filters map[string]string) ([]models.TaxCase, error)
	UpdateCase(taxCase *models.TaxCase, updates map[string]interface{}) (*models.TaxCase, error)
	DeleteCase(id string) error

	CreateTask(task *models.CaseTask) (*models.CaseTask, error)
	GetTask(caseID, taskID string) (*models.CaseTask, error)
	UpdateTask(task *models.CaseTask, updates map[string]interface{}) (*models.CaseTask, error)
	DeleteTask(caseID, taskID string) error

	GetUpcomingAppointments(after time.Time, limit int) ([]models.CaseAppointment, error)
	GetPendingTasks(assigneeID *string, limit int) ([]models.CaseTask, error)
	CountCasesByStatus() (map[models.CaseStatus]int64, error)
	CountUnassignedCases() (int64, error)
	GetCasesByAssignee(assigneeID string) ([]models.TaxCase, error)
	GetInvoices() ([]models.CaseInvoice, error)
	GetInvoiceByID(id string) (*models.CaseInvoice, error)
}

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

// childPreloads covers every owned collection of a case.
var childPreloads = []string{
	"Client", "AssignedTo",
	"Documents", "Appointments", "Invoices",
	"Tasks", "Tasks.Assignee", "InternalNotes",
}

func (r *caseRepository) preloadAll(db *gorm.DB) *gorm.DB {
	for _, rel := range childPreloads {
		db = db.Preload(rel)
	}
	return db
}

func (r *caseRepository) CreateCase(taxCase *models.TaxCase) (*models.TaxCase, error) {
	if err := r.db.Create(taxCase).Error; err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}
	return r.GetCaseByID(taxCase.ID)
}

func (r *caseRepository) GetCaseByID(id string) (*models.TaxCase, error) {
	var taxCase models.TaxCase
	if err := r.preloadAll(r.db).Where("id = ?", id).First(&taxCase).Error; err != nil {
		return nil, err
	}
	return &taxCase, nil
}

func (r *caseRepository) GetFilteredCases(filters map[string]string) ([]models.TaxCase, error) {
	var cases []models.TaxCase

	db := r.db.Model(&models.TaxCase{})
	for key, value := range filters {
		if value == "" {
			continue
		}
		switch key {
		case "clientEmail":
			db = db.Joins("JOIN users AS clients ON clients.id = tax_cases.client_id").
				Where("clients.email = ?", strings.ToLower(value))
		case "assignedTo":
			db = db.Joins("JOIN users AS assignees ON assignees.id = tax_cases.assigned_to_id").
				Where("assignees.email = ?", strings.ToLower(value))
		case "status":
			db = db.Where("tax_cases.status = ?", strings.ToUpper(value))
		}
	}

	err := r.preloadAll(db).Order("tax_cases.created_at desc").Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases: %w", err)
	}
	return cases, nil
}

func (r *caseRepository) UpdateCase(taxCase *models.TaxCase, updates map[string]interface{}) (*models.TaxCase, error) {
	if len(updates) > 0 {
		if err := r.db.Model(taxCase).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update case %s: %w", taxCase.ID, err)
		}
	}
	return r.GetCaseByID(taxCase.ID)
}

func (r *caseRepository) DeleteCase(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := DeleteCaseChildren(tx, id); err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&models.TaxCase{}).Error; err != nil {
			return fmt.Errorf("failed to delete case %s: %w", id, err)
		}
		return nil
	})
}

// DeleteCaseChildren removes every owned sub-record of a case. Shared
// with the legacy importer, whose semantics for case children are
// replace, not merge.
func DeleteCaseChildren(tx *gorm.DB, caseID string) error {
	children := []interface{}{
		&models.Document{},
		&models.CaseAppointment{},
		&models.CaseInvoice{},
		&models.CaseTask{},
		&models.CaseInternalNote{},
	}
	for _, child := range children {
		if err := tx.Where("case_id = ?", caseID).Delete(child).Error; err != nil {
			return fmt.Errorf("failed to delete case children for %s: %w", caseID, err)
		}
	}
	return nil
}

func (r *caseRepository) CreateTask(task *models.CaseTask) (*models.CaseTask, error) {
	if err := r.db.Create(task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return r.GetTask(task.CaseID, task.ID)
}

func (r *caseRepository) GetTask(caseID, taskID string) (*models.CaseTask, error) {
	var task models.CaseTask
	err := r.db.Preload("Assignee").
		Where("id = ? AND case_id = ?", taskID, caseID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *caseRepository) UpdateTask(task *models.CaseTask, updates map[string]interface{}) (*models.CaseTask, error) {
	if len(updates) > 0 {
		if err := r.db.Model(task).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update task %s: %w", task.ID, err)
		}
	}
	return r.GetTask(task.CaseID, task.ID)
}

func (r *caseRepository) DeleteTask(caseID, taskID string) error {
	result := r.db.Where("id = ? AND case_id = ?", taskID, caseID).Delete(&models.CaseTask{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *caseRepository) GetUpcomingAppointments(after time.Time, limit int) ([]models.CaseAppointment, error) {
	var appointments []models.CaseAppointment
	err := r.db.Where("scheduled_at >= ? AND status NOT IN ?", after,
		[]models.AppointmentStatus{models.AppointmentStatusCancelled, models.AppointmentStatusCompleted}).
		Order("scheduled_at asc").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming appointments: %w", err)
	}
	return appointments, nil
}

func (r *caseRepository) GetPendingTasks(assigneeID *string, limit int) ([]models.CaseTask, error) {
	var tasks []models.CaseTask

	db := r.db.Preload("Assignee").Where("status <> ?", models.TaskStatusDone)
	if assigneeID != nil {
		db = db.Where("assignee_id = ?", *assigneeID)
	}

	err := db.Order("created_at desc").Limit(limit).Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending tasks: %w", err)
	}
	return tasks, nil
}

func (r *caseRepository) CountCasesByStatus() (map[models.CaseStatus]int64, error) {
	type statusCount struct {
		Status models.CaseStatus
		Count  int64
	}
	var rows []statusCount
	err := r.db.Model(&models.TaxCase{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count cases by status: %w", err)
	}

	counts := make(map[models.CaseStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *caseRepository) CountUnassignedCases() (int64, error) {
	var count int64
	err := r.db.Model(&models.TaxCase{}).Where("assigned_to_id IS NULL").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unassigned cases: %w", err)
	}
	return count, nil
}

func (r *caseRepository) GetCasesByAssignee(assigneeID string) ([]models.TaxCase, error) {
	var cases []models.TaxCase
	err := r.preloadAll(r.db.Where("assigned_to_id = ?", assigneeID)).
		Order("created_at desc").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases for assignee %s: %w", assigneeID, err)
	}
	return cases, nil
}

func (r *caseRepository) GetInvoices() ([]models.CaseInvoice, error) {
	var invoices []models.CaseInvoice
	if err := r.db.Preload("Case").Preload("Case.Client").Order("created_at desc").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	return invoices, nil
}

func (r *caseRepository) GetInvoiceByID(id string) (*models.CaseInvoice, error) {
	var invoice models.CaseInvoice
	if err := r.db.Preload("Case").Preload("Case.Client").Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}
