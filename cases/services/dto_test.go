package services

import (
	"testing"
	"time"

	"tax-backoffice-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCaseTimestampsRoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	scheduled := time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC)

	taxCase := models.TaxCase{
		ID:        "case-1",
		Service:   "GST Filing",
		Status:    models.CaseStatusInReview,
		CreatedAt: created,
		UpdatedAt: created,
		Client:    &models.User{Email: "client@firm.in", Name: "Client"},
		Appointments: []models.CaseAppointment{
			{
				ID:          "appt-1",
				Mode:        models.AppointmentModeVideo,
				Status:      models.AppointmentStatusConfirmed,
				ScheduledAt: &scheduled,
				CreatedAt:   created,
			},
		},
	}

	dto := MapCase(taxCase)

	assert.Equal(t, created.UnixMilli(), dto.CreatedAt)
	assert.Equal(t, "client@firm.in", dto.ClientEmail)
	assert.Equal(t, "IN_REVIEW", dto.Status)
	assert.Nil(t, dto.AssignedTo)

	require.Len(t, dto.Appointments, 1)
	assert.Equal(t, scheduled.UnixMilli(), dto.Appointments[0].ScheduledAt)
	assert.Equal(t, "VIDEO", dto.Appointments[0].Mode)

	// Absent collections map to empty arrays, never null.
	assert.NotNil(t, dto.Documents)
	assert.NotNil(t, dto.Tasks)
	assert.NotNil(t, dto.Invoices)
	assert.NotNil(t, dto.InternalNotes)
}

func TestMapAppointmentSubstitutesNowForNilScheduledAt(t *testing.T) {
	before := time.Now().UnixMilli()
	dtos := MapAppointments([]models.CaseAppointment{
		{ID: "appt-1", Mode: models.AppointmentModeCall, Status: models.AppointmentStatusRequested},
	})
	after := time.Now().UnixMilli()

	require.Len(t, dtos, 1)
	assert.GreaterOrEqual(t, dtos[0].ScheduledAt, before)
	assert.LessOrEqual(t, dtos[0].ScheduledAt, after)
}

func TestMapTaskDueAtStaysOptional(t *testing.T) {
	due := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)

	withDue := MapTask(models.CaseTask{ID: "t1", Title: "File return", DueAt: &due})
	require.NotNil(t, withDue.DueAt)
	assert.Equal(t, due.UnixMilli(), *withDue.DueAt)

	withoutDue := MapTask(models.CaseTask{ID: "t2", Title: "Collect documents"})
	assert.Nil(t, withoutDue.DueAt)
}

func TestMapTaskFlattensAssigneeToEmail(t *testing.T) {
	dto := MapTask(models.CaseTask{
		ID:       "t1",
		Title:    "Reconcile input credits",
		Assignee: &models.User{Email: "emp@firm.in"},
	})
	require.NotNil(t, dto.Assignee)
	assert.Equal(t, "emp@firm.in", *dto.Assignee)
}

func TestBuildInvoiceDefaults(t *testing.T) {
	invoice := BuildInvoice("case-1", InvoiceInput{Number: "INV-1", Amount: "not-a-number"})
	assert.Equal(t, "0.00", invoice.Amount.StringFixed(2))
	assert.Equal(t, "INR", invoice.Currency)
	assert.Equal(t, models.InvoiceStatusDraft, invoice.Status)

	priced := BuildInvoice("case-1", InvoiceInput{Number: "INV-2", Amount: "1499.50", Currency: "USD"})
	assert.Equal(t, "1499.50", priced.Amount.StringFixed(2))
	assert.Equal(t, "USD", priced.Currency)
}
