package controllers

import (
	"encoding/json"

	"tax-backoffice-backend/calculations/repositories"
	"tax-backoffice-backend/calculations/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
	user_services "tax-backoffice-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CalculationController struct {
	CalculationRepo repositories.CalculationRepository
	DB              *gorm.DB
}

// GetCalculationsController lists computed tax reports, newest first.
// take is clamped into [1,200] regardless of the requested value.
func (cc *CalculationController) GetCalculationsController(c *fiber.Ctx) error {
	take := c.QueryInt("take", 50)
	if take < 1 {
		take = 1
	}
	if take > 200 {
		take = 200
	}
	skip := c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}

	calculations, err := cc.CalculationRepo.GetCalculations(take, skip, c.Query("email"))
	if err != nil {
		config.Logger.Error("Failed to fetch calculations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch calculations",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapCalculations(calculations))
}

type createCalculationRequest struct {
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	Input           json.RawMessage `json:"input"`
	Result          json.RawMessage `json:"result"`
	SourceTimestamp int64           `json:"sourceTimestamp"`
}

func (cc *CalculationController) CreateCalculationController(c *fiber.Ctx) error {
	var req createCalculationRequest
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

	user, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		config.Logger.Error("Failed to resolve calculation user", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}

	calculation := models.Calculation{
		UserID:          user.ID,
		Kind:            req.Kind,
		Input:           datatypes.JSON(req.Input),
		Result:          datatypes.JSON(req.Result),
		SourceTimestamp: utils.FromMillis(req.SourceTimestamp),
	}

	created, err := cc.CalculationRepo.CreateCalculation(&calculation)
	if err != nil {
		config.Logger.Error("Failed to create calculation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create calculation",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapCalculation(*created))
}
