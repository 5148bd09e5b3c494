package services

import (
	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
)

// Wire shapes for a case and its owned children. Mapping is pure: rename
// fields, flatten relations to email/name, convert timestamps to epoch
// milliseconds (substituting now for absent values), and default missing
// collections to empty arrays.

type CaseDTO struct {
	ID          string  `json:"id"`
	ClientEmail string  `json:"clientEmail"`
	ClientName  string  `json:"clientName"`
	AssignedTo  *string `json:"assignedTo"`
	Service     string  `json:"service"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Notes       string  `json:"notes"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedAt   int64   `json:"updatedAt"`

	Documents     []DocumentDTO    `json:"documents"`
	Appointments  []AppointmentDTO `json:"appointments"`
	Invoices      []InvoiceDTO     `json:"invoices"`
	Tasks         []TaskDTO        `json:"tasks"`
	InternalNotes []NoteDTO        `json:"internalNotes"`
}

type DocumentDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	MimeType   string `json:"mimeType"`
	UploadedAt int64  `json:"uploadedAt"`
}

type AppointmentDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Mode        string `json:"mode"`
	Status      string `json:"status"`
	ScheduledAt int64  `json:"scheduledAt"`
	Notes       string `json:"notes"`
	CreatedAt   int64  `json:"createdAt"`
}

type InvoiceDTO struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	IssuedAt  int64  `json:"issuedAt"`
	DueAt     *int64 `json:"dueAt"`
	CreatedAt int64  `json:"createdAt"`
}

type TaskDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	Assignee  *string `json:"assignee"`
	DueAt     *int64  `json:"dueAt"`
	CreatedAt int64   `json:"createdAt"`
}

type NoteDTO struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"`
}

func MapCase(taxCase models.TaxCase) CaseDTO {
	created := taxCase.CreatedAt
	updated := taxCase.UpdatedAt

	dto := CaseDTO{
		ID:        taxCase.ID,
		Service:   taxCase.Service,
		Status:    string(NormalizeCaseStatus(string(taxCase.Status))),
		Priority:  taxCase.Priority,
		Notes:     taxCase.Notes,
		CreatedAt: utils.MillisOrNow(&created),
		UpdatedAt: utils.MillisOrNow(&updated),

		Documents:     mapDocuments(taxCase.Documents),
		Appointments:  MapAppointments(taxCase.Appointments),
		Invoices:      mapInvoices(taxCase.Invoices),
		Tasks:         MapTasks(taxCase.Tasks),
		InternalNotes: mapNotes(taxCase.InternalNotes),
	}

	if taxCase.Client != nil {
		dto.ClientEmail = taxCase.Client.Email
		dto.ClientName = taxCase.Client.Name
	}
	if taxCase.AssignedTo != nil {
		email := taxCase.AssignedTo.Email
		dto.AssignedTo = &email
	}

	return dto
}

func MapCases(cases []models.TaxCase) []CaseDTO {
	out := make([]CaseDTO, 0, len(cases))
	for _, c := range cases {
		out = append(out, MapCase(c))
	}
	return out
}

func mapDocuments(documents []models.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(documents))
	for _, d := range documents {
		out = append(out, DocumentDTO{
			ID:         d.ID,
			Name:       d.Name,
			URL:        d.URL,
			MimeType:   d.MimeType,
			UploadedAt: utils.MillisOrNow(d.UploadedAt),
		})
	}
	return out
}

func MapAppointments(appointments []models.CaseAppointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(appointments))
	for _, a := range appointments {
		created := a.CreatedAt
		out = append(out, AppointmentDTO{
			ID:          a.ID,
			Title:       a.Title,
			Mode:        string(NormalizeAppointmentMode(string(a.Mode))),
			Status:      string(NormalizeAppointmentStatus(string(a.Status))),
			ScheduledAt: utils.MillisOrNow(a.ScheduledAt),
			Notes:       a.Notes,
			CreatedAt:   utils.MillisOrNow(&created),
		})
	}
	return out
}

func mapInvoices(invoices []models.CaseInvoice) []InvoiceDTO {
	out := make([]InvoiceDTO, 0, len(invoices))
	for _, i := range invoices {
		created := i.CreatedAt
		out = append(out, InvoiceDTO{
			ID:        i.ID,
			Number:    i.Number,
			Amount:    i.Amount.StringFixed(2),
			Currency:  i.Currency,
			Status:    string(NormalizeInvoiceStatus(string(i.Status))),
			IssuedAt:  utils.MillisOrNow(i.IssuedAt),
			DueAt:     utils.MillisOrNil(i.DueAt),
			CreatedAt: utils.MillisOrNow(&created),
		})
	}
	return out
}

func MapTask(task models.CaseTask) TaskDTO {
	created := task.CreatedAt
	dto := TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(NormalizeTaskStatus(string(task.Status))),
		DueAt:     utils.MillisOrNil(task.DueAt),
		CreatedAt: utils.MillisOrNow(&created),
	}
	if task.Assignee != nil {
		email := task.Assignee.Email
		dto.Assignee = &email
	}
	return dto
}

func MapTasks(tasks []models.CaseTask) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, MapTask(t))
	}
	return out
}

func mapNotes(notes []models.CaseInternalNote) []NoteDTO {
	out := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		created := n.CreatedAt
		out = append(out, NoteDTO{
			ID:        n.ID,
			Author:    n.AuthorEmail,
			Body:      n.Body,
			CreatedAt: utils.MillisOrNow(&created),
		})
	}
	return out
}
