package controllers

import (
	activity_services "tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/clients/repositories"
	"tax-backoffice-backend/clients/services"
	"tax-backoffice-backend/config"
	user_services "tax-backoffice-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClientController struct {
	ClientRepo repositories.ClientRepository
	DB         *gorm.DB
	Recorder   *activity_services.Recorder
}

// GetProfileController is read-or-provision: looking up a profile for an
// email the system has never seen creates both the user and an empty
// profile row. A surprising contract for a GET, but the front end
// depends on it.
func (cc *ClientController) GetProfileController(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	user, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{Email: email})
	if err != nil {
		config.Logger.Error("Failed to resolve profile user", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}

	profile, err := cc.ClientRepo.GetOrCreateProfile(user.ID)
	if err != nil {
		config.Logger.Error("Failed to load profile", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapProfile(*profile))
}

type updateProfileRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	PAN               *string `json:"pan"`
	Address           *string `json:"address"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	Pincode           *string `json:"pincode"`
	Notes             *string `json:"notes"`
	AadhaarDocumentID *string `json:"aadhaarDocumentId"`
}

func (cc *ClientController) UpdateProfileController(c *fiber.Ctx) error {
	email := c.Params("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	identity := user_services.UserIdentity{Email: email}
	if req.Name != nil {
		identity.Name = *req.Name
	}
	user, err := user_services.EnsureUser(cc.DB, identity)
	if err != nil {
		config.Logger.Error("Failed to resolve profile user", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}

	profile, err := cc.ClientRepo.GetOrCreateProfile(user.ID)
	if err != nil {
		config.Logger.Error("Failed to load profile", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load profile",
		})
	}

	updates := map[string]interface{}{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.PAN != nil {
		updates["pan"] = *req.PAN
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Pincode != nil {
		updates["pincode"] = *req.Pincode
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.AadhaarDocumentID != nil {
		updates["aadhaar_document_id"] = *req.AadhaarDocumentID
	}

	updated, err := cc.ClientRepo.UpdateProfile(profile, updates)
	if err != nil {
		config.Logger.Error("Failed to update profile", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapProfile(*updated))
}
