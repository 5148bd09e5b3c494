package controllers

import (
	"tax-backoffice-backend/activities/repositories"
	"tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	user_services "tax-backoffice-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ActivityController struct {
	ActivityRepo repositories.ActivityRepository
	Recorder     *services.Recorder
	DB           *gorm.DB
}

// GetActivitiesController lists activity log entries, newest first.
// take is clamped into [1,500] regardless of the requested value.
func (ac *ActivityController) GetActivitiesController(c *fiber.Ctx) error {
	take := c.QueryInt("take", 100)
	if take < 1 {
		take = 1
	}
	if take > 500 {
		take = 500
	}
	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	activities, err := ac.ActivityRepo.GetActivities(take, skip, c.Query("email"))
	if err != nil {
		config.Logger.Error("Failed to fetch activities", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch activities",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapActivities(activities))
}

type createActivityRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

func (ac *ActivityController) CreateActivityController(c *fiber.Ctx) error {
	var req createActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "type is required",
		})
	}

	activity := models.Activity{
		Type:    req.Type,
		Message: req.Message,
	}

	if req.Email != "" {
		user, err := user_services.EnsureUser(ac.DB, user_services.UserIdentity{Email: req.Email})
		if err != nil {
			config.Logger.Error("Failed to resolve activity user", zap.String("email", req.Email), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve user",
			})
		}
		activity.UserID = &user.ID
		activity.User = user
	}

	recorded, err := ac.Recorder.Record(&activity)
	if err != nil {
		config.Logger.Error("Failed to record activity", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record activity",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapActivity(*recorded))
}
