package controllers

import (
	"errors"

	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/inquiries/repositories"
	"tax-backoffice-backend/inquiries/services"
	search_repositories "tax-backoffice-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InquiryController struct {
	InquiryRepo repositories.InquiryRepository
	DB          *gorm.DB
	SearchRepo  search_repositories.SearchRepositoryInterface
}

func (ic *InquiryController) GetInquiriesController(c *fiber.Ctx) error {
	inquiries, err := ic.InquiryRepo.GetInquiries(c.Query("status"))
	if err != nil {
		config.Logger.Error("Failed to fetch inquiries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch inquiries",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapInquiries(inquiries))
}

type createInquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (ic *InquiryController) CreateInquiryController(c *fiber.Ctx) error {
	var req createInquiryRequest
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
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	inquiry := models.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  models.InquiryStatusPending,
	}

	created, err := ic.InquiryRepo.CreateInquiry(&inquiry)
	if err != nil {
		config.Logger.Error("Failed to create inquiry", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create inquiry",
		})
	}

	if ic.SearchRepo != nil {
		if err := ic.SearchRepo.IndexInquiry(*created); err != nil {
			config.Logger.Warn("Failed to index inquiry", zap.String("inquiryID", created.ID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(services.MapInquiry(*created))
}

type patchInquiryRequest struct {
	Status string `json:"status"`
}

func (ic *InquiryController) PatchInquiryController(c *fiber.Ctx) error {
	inquiry, err := ic.InquiryRepo.GetInquiryByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Inquiry not found",
			})
		}
		config.Logger.Error("Failed to fetch inquiry", zap.String("inquiryID", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch inquiry",
		})
	}

	var req patchInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status is required",
		})
	}

	inquiry.Status = services.NormalizeInquiryStatus(req.Status)
	if err := ic.InquiryRepo.SaveInquiry(inquiry); err != nil {
		config.Logger.Error("Failed to update inquiry", zap.String("inquiryID", inquiry.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update inquiry",
		})
	}

	if ic.SearchRepo != nil {
		if err := ic.SearchRepo.IndexInquiry(*inquiry); err != nil {
			config.Logger.Warn("Failed to re-index inquiry", zap.String("inquiryID", inquiry.ID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(services.MapInquiry(*inquiry))
}
