package services

import (
	"errors"
	"fmt"
	"strings"

	"tax-backoffice-backend/db/models"

	"gorm.io/gorm"
)

// UserIdentity carries the natural key plus optional fields for EnsureUser.
// Role is a pointer so "role not supplied" and "role supplied" stay
// distinguishable: an absent role never touches an existing user's role.
type UserIdentity struct {
	Email string
	Name  string
	Role  *models.Role
}

// EnsureUser is the single identity-resolution primitive: find-or-create
// by email, updating name (when a non-empty one is supplied) and role
// (only when explicitly supplied). Every handler that references a user
// by email goes through here, which means referencing an unknown email
// implicitly provisions the user.
func EnsureUser(db *gorm.DB, identity UserIdentity) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
		}

		user = models.User{
			Email: email,
			Name:  identity.Name,
			Role:  models.UserRole,
		}
		if user.Name == "" {
			user.Name = localPart(email)
		}
		if identity.Role != nil {
			user.Role = NormalizeRole(string(*identity.Role))
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", email, err)
		}
		return &user, nil
	}

	updates := map[string]interface{}{}
	if identity.Name != "" && identity.Name != user.Name {
		updates["name"] = identity.Name
	}
	if identity.Role != nil {
		role := NormalizeRole(string(*identity.Role))
		if role != user.Role {
			updates["role"] = role
		}
	}
	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user %s: %w", email, err)
		}
	}
	return &user, nil
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// NormalizeRole maps arbitrary input onto the closed role set. Unknown or
// empty input falls back to USER; normalization is total and silent.
func NormalizeRole(input string) models.Role {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "ADMIN":
		return models.AdminRole
	case "EMPLOYEE":
		return models.EmployeeRole
	case "CLIENT":
		return models.ClientRole
	case "CLIENT_PENDING":
		return models.ClientPendingRole
	default:
		return models.UserRole
	}
}
