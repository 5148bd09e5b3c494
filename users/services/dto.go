package services

import (
	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
)

// UserDTO is the wire shape for a user.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

func MapUser(user models.User) UserDTO {
	created := user.CreatedAt
	updated := user.UpdatedAt
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(NormalizeRole(string(user.Role))),
		CreatedAt: utils.MillisOrNow(&created),
		UpdatedAt: utils.MillisOrNow(&updated),
	}
}

func MapUsers(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, MapUser(u))
	}
	return out
}
