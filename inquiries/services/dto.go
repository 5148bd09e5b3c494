package services

import (
	"strings"

	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
)

type InquiryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"createdAt"`
}

func MapInquiry(inquiry models.Inquiry) InquiryDTO {
	created := inquiry.CreatedAt
	return InquiryDTO{
		ID:        inquiry.ID,
		Name:      inquiry.Name,
		Email:     inquiry.Email,
		Subject:   inquiry.Subject,
		Message:   inquiry.Message,
		Status:    string(NormalizeInquiryStatus(string(inquiry.Status))),
		CreatedAt: utils.MillisOrNow(&created),
	}
}

func MapInquiries(inquiries []models.Inquiry) []InquiryDTO {
	out := make([]InquiryDTO, 0, len(inquiries))
	for _, i := range inquiries {
		out = append(out, MapInquiry(i))
	}
	return out
}

// NormalizeInquiryStatus is total; unrecognized input falls back to
// PENDING.
func NormalizeInquiryStatus(input string) models.InquiryStatus {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "RESPONDED":
		return models.InquiryStatusResponded
	default:
		return models.InquiryStatusPending
	}
}
