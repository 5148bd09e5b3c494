package services

import (
	"testing"

	"tax-backoffice-backend/db/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCaseStatusDefaultsToNew(t *testing.T) {
	assert.Equal(t, models.CaseStatusNew, NormalizeCaseStatus(""))
	assert.Equal(t, models.CaseStatusNew, NormalizeCaseStatus("garbage"))
	assert.Equal(t, models.CaseStatusInReview, NormalizeCaseStatus("in review"))
	assert.Equal(t, models.CaseStatusWaitingOnClient, NormalizeCaseStatus("waiting-on-client"))
	assert.Equal(t, models.CaseStatusCompleted, NormalizeCaseStatus("completed"))
}

func TestNormalizersAreIdempotent(t *testing.T) {
	for _, status := range []models.CaseStatus{
		models.CaseStatusNew, models.CaseStatusInReview, models.CaseStatusWaitingOnClient,
		models.CaseStatusScheduled, models.CaseStatusOnHold, models.CaseStatusCompleted,
	} {
		assert.Equal(t, status, NormalizeCaseStatus(string(status)))
	}
	for _, status := range []models.TaskStatus{
		models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone,
	} {
		assert.Equal(t, status, NormalizeTaskStatus(string(status)))
	}
	for _, mode := range []models.AppointmentMode{
		models.AppointmentModeCall, models.AppointmentModeVideo, models.AppointmentModeInPerson,
	} {
		assert.Equal(t, mode, NormalizeAppointmentMode(string(mode)))
	}
	for _, status := range []models.InvoiceStatus{
		models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid, models.InvoiceStatusVoid,
	} {
		assert.Equal(t, status, NormalizeInvoiceStatus(string(status)))
	}
}

func TestNormalizeTaskStatusDefaultsToTodo(t *testing.T) {
	assert.Equal(t, models.TaskStatusTodo, NormalizeTaskStatus(""))
	assert.Equal(t, models.TaskStatusTodo, NormalizeTaskStatus("whatever"))
	assert.Equal(t, models.TaskStatusInProgress, NormalizeTaskStatus("in progress"))
}

func TestNormalizeAppointmentDefaults(t *testing.T) {
	assert.Equal(t, models.AppointmentModeCall, NormalizeAppointmentMode(""))
	assert.Equal(t, models.AppointmentModeInPerson, NormalizeAppointmentMode("in-person"))
	assert.Equal(t, models.AppointmentStatusRequested, NormalizeAppointmentStatus(""))
	assert.Equal(t, models.AppointmentStatusCancelled, NormalizeAppointmentStatus("cancelled"))
}

func TestNormalizeInvoiceStatusDefaultsToDraft(t *testing.T) {
	assert.Equal(t, models.InvoiceStatusDraft, NormalizeInvoiceStatus(""))
	assert.Equal(t, models.InvoiceStatusPaid, NormalizeInvoiceStatus("paid"))
	assert.Equal(t, models.InvoiceStatusVoid, NormalizeInvoiceStatus("VOID"))
}

func TestDefaultTasksForService(t *testing.T) {
	gst := DefaultTasksForService("GST Filing")
	assert.Equal(t, []string{
		"Collect sales invoices",
		"Collect purchase invoices",
		"Reconcile input credits",
	}, gst)

	itr := DefaultTasksForService("ITR Filing")
	assert.Len(t, itr, 3)

	fallback := DefaultTasksForService("Something Else")
	assert.Equal(t, []string{"Collect required documents"}, fallback)
}
