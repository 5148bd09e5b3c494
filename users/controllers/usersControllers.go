package controllers

import (
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	search_repositories "tax-backoffice-backend/search/repositories"
	"tax-backoffice-backend/users/repositories"
	"tax-backoffice-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserController struct {
	UserRepo   repositories.UserRepository
	DB         *gorm.DB
	SearchRepo search_repositories.SearchRepositoryInterface
}

// GetUsersController lists users, optionally filtered by role and email.
func (uc *UserController) GetUsersController(c *fiber.Ctx) error {
	filters := map[string]string{
		"role":  c.Query("role"),
		"email": c.Query("email"),
	}

	users, err := uc.UserRepo.GetFilteredUsers(filters)
	if err != nil {
		config.Logger.Error("Failed to fetch users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapUsers(users))
}

type upsertUserRequest struct {
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Role  *string `json:"role"`
}

// UpsertUserController resolves (or provisions) a user by email. The role
// field only takes effect when present in the request body.
func (uc *UserController) UpsertUserController(c *fiber.Ctx) error {
	var req upsertUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	identity := services.UserIdentity{Email: req.Email, Name: req.Name}
	if req.Role != nil {
		role := models.Role(*req.Role)
		identity.Role = &role
	}

	user, err := services.EnsureUser(uc.DB, identity)
	if err != nil {
		config.Logger.Error("Failed to upsert user", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upsert user",
		})
	}

	if uc.SearchRepo != nil {
		if err := uc.SearchRepo.IndexUser(*user); err != nil {
			config.Logger.Warn("Failed to index user", zap.String("userID", user.ID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(services.MapUser(*user))
}
