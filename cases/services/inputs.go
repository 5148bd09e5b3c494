package services

import (
	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"

	"github.com/shopspring/decimal"
)

// Request/import shapes for case children. The same payloads arrive from
// the case endpoints and from the legacy export, so building the model
// rows lives here in one place. All timestamps are epoch milliseconds.

type TaskInput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Assignee string `json:"assignee"`
	DueAt    int64  `json:"dueAt"`
}

type AppointmentInput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Mode        string `json:"mode"`
	Status      string `json:"status"`
	ScheduledAt int64  `json:"scheduledAt"`
	Notes       string `json:"notes"`
}

type InvoiceInput struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	IssuedAt int64  `json:"issuedAt"`
	DueAt    int64  `json:"dueAt"`
}

type DocumentInput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	MimeType   string `json:"mimeType"`
	UploadedAt int64  `json:"uploadedAt"`
}

type NoteInput struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Body   string `json:"body"`
}

func BuildTask(caseID string, input TaskInput, assigneeID *string) models.CaseTask {
	return models.CaseTask{
		ID:         input.ID,
		CaseID:     caseID,
		Title:      input.Title,
		Status:     NormalizeTaskStatus(input.Status),
		AssigneeID: assigneeID,
		DueAt:      utils.FromMillis(input.DueAt),
	}
}

func BuildAppointment(caseID string, input AppointmentInput) models.CaseAppointment {
	return models.CaseAppointment{
		ID:          input.ID,
		CaseID:      caseID,
		Title:       input.Title,
		Mode:        NormalizeAppointmentMode(input.Mode),
		Status:      NormalizeAppointmentStatus(input.Status),
		ScheduledAt: utils.FromMillis(input.ScheduledAt),
		Notes:       input.Notes,
	}
}

func BuildInvoice(caseID string, input InvoiceInput) models.CaseInvoice {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	currency := input.Currency
	if currency == "" {
		currency = "INR"
	}
	return models.CaseInvoice{
		ID:       input.ID,
		CaseID:   caseID,
		Number:   input.Number,
		Amount:   amount,
		Currency: currency,
		Status:   NormalizeInvoiceStatus(input.Status),
		IssuedAt: utils.FromMillis(input.IssuedAt),
		DueAt:    utils.FromMillis(input.DueAt),
	}
}

func BuildDocument(caseID string, input DocumentInput) models.Document {
	return models.Document{
		ID:         input.ID,
		CaseID:     caseID,
		Name:       input.Name,
		URL:        input.URL,
		MimeType:   input.MimeType,
		UploadedAt: utils.FromMillis(input.UploadedAt),
	}
}

func BuildNote(caseID string, input NoteInput) models.CaseInternalNote {
	return models.CaseInternalNote{
		ID:          input.ID,
		CaseID:      caseID,
		AuthorEmail: input.Author,
		Body:        input.Body,
	}
}
