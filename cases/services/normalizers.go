package services

import (
	"strings"

	"tax-backoffice-backend/db/models"
)

// Every normalizer is total: any input, including empty or garbage, maps
// to exactly one member of the closed set, and already-valid values map
// to themselves. Invalid input is never an error; it takes the
// documented default.

func NormalizeCaseStatus(input string) models.CaseStatus {
	switch fold(input) {
	case "NEW":
		return models.CaseStatusNew
	case "IN_REVIEW":
		return models.CaseStatusInReview
	case "WAITING_ON_CLIENT":
		return models.CaseStatusWaitingOnClient
	case "SCHEDULED":
		return models.CaseStatusScheduled
	case "ON_HOLD":
		return models.CaseStatusOnHold
	case "COMPLETED":
		return models.CaseStatusCompleted
	default:
		return models.CaseStatusNew
	}
}

func NormalizeTaskStatus(input string) models.TaskStatus {
	switch fold(input) {
	case "TODO":
		return models.TaskStatusTodo
	case "IN_PROGRESS":
		return models.TaskStatusInProgress
	case "DONE":
		return models.TaskStatusDone
	default:
		return models.TaskStatusTodo
	}
}

func NormalizeAppointmentMode(input string) models.AppointmentMode {
	switch fold(input) {
	case "CALL":
		return models.AppointmentModeCall
	case "VIDEO":
		return models.AppointmentModeVideo
	case "IN_PERSON":
		return models.AppointmentModeInPerson
	default:
		return models.AppointmentModeCall
	}
}

func NormalizeAppointmentStatus(input string) models.AppointmentStatus {
	switch fold(input) {
	case "REQUESTED":
		return models.AppointmentStatusRequested
	case "CONFIRMED":
		return models.AppointmentStatusConfirmed
	case "COMPLETED":
		return models.AppointmentStatusCompleted
	case "CANCELLED":
		return models.AppointmentStatusCancelled
	default:
		return models.AppointmentStatusRequested
	}
}

func NormalizeInvoiceStatus(input string) models.InvoiceStatus {
	switch fold(input) {
	case "DRAFT":
		return models.InvoiceStatusDraft
	case "SENT":
		return models.InvoiceStatusSent
	case "PAID":
		return models.InvoiceStatusPaid
	case "VOID":
		return models.InvoiceStatusVoid
	default:
		return models.InvoiceStatusDraft
	}
}

// fold upper-cases and converts separators so "in review", "in-review"
// and "IN_REVIEW" all land on the same member.
func fold(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
