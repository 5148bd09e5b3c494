package services

import (
	"strings"

	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
)

type ProfileDTO struct {
	Email             string  `json:"email"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	PAN               string  `json:"pan"`
	Address           string  `json:"address"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	Pincode           string  `json:"pincode"`
	Notes             string  `json:"notes"`
	AadhaarDocumentID *string `json:"aadhaarDocumentId"`
	CreatedAt         int64   `json:"createdAt"`
	UpdatedAt         int64   `json:"updatedAt"`
}

func MapProfile(profile models.ClientProfile) ProfileDTO {
	created := profile.CreatedAt
	updated := profile.UpdatedAt
	dto := ProfileDTO{
		Phone:             profile.Phone,
		PAN:               profile.PAN,
		Address:           profile.Address,
		City:              profile.City,
		State:             profile.State,
		Pincode:           profile.Pincode,
		Notes:             profile.Notes,
		AadhaarDocumentID: profile.AadhaarDocumentID,
		CreatedAt:         utils.MillisOrNow(&created),
		UpdatedAt:         utils.MillisOrNow(&updated),
	}
	if profile.User != nil {
		dto.Email = profile.User.Email
		dto.Name = profile.User.Name
	}
	return dto
}

type AccessRequestDTO struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Reason    string  `json:"reason"`
	Status    string  `json:"status"`
	DecidedBy *string `json:"decidedBy"`
	DecidedAt *int64  `json:"decidedAt"`
	CreatedAt int64   `json:"createdAt"`
}

func MapAccessRequest(request models.ClientAccessRequest) AccessRequestDTO {
	created := request.CreatedAt
	dto := AccessRequestDTO{
		ID:        request.ID,
		Reason:    request.Reason,
		Status:    string(NormalizeAccessRequestStatus(string(request.Status))),
		DecidedBy: request.DecidedByEmail,
		DecidedAt: utils.MillisOrNil(request.DecidedAt),
		CreatedAt: utils.MillisOrNow(&created),
	}
	if request.User != nil {
		dto.Email = request.User.Email
		dto.Name = request.User.Name
	}
	return dto
}

func MapAccessRequests(requests []models.ClientAccessRequest) []AccessRequestDTO {
	out := make([]AccessRequestDTO, 0, len(requests))
	for _, r := range requests {
		out = append(out, MapAccessRequest(r))
	}
	return out
}

// NormalizeAccessRequestStatus is total; unrecognized input falls back to
// PENDING.
func NormalizeAccessRequestStatus(input string) models.AccessRequestStatus {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "APPROVED":
		return models.AccessRequestStatusApproved
	case "REJECTED":
		return models.AccessRequestStatusRejected
	default:
		return models.AccessRequestStatusPending
	}
}
