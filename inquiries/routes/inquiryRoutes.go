package router

import (
	"tax-backoffice-backend/inquiries/controllers"
	"tax-backoffice-backend/inquiries/repositories"
	search_repositories "tax-backoffice-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InquiryRouterInit(app *fiber.App, db *gorm.DB, inquiryRepo repositories.InquiryRepository, searchRepo search_repositories.SearchRepositoryInterface) {
	inquiryController := &controllers.InquiryController{
		InquiryRepo: inquiryRepo,
		DB:          db,
		SearchRepo:  searchRepo,
	}

	inquiries := app.Group("/api/v1/inquiries")
	inquiries.Get("/", inquiryController.GetInquiriesController)
	inquiries.Post("/", inquiryController.CreateInquiryController)
	inquiries.Patch("/:id", inquiryController.PatchInquiryController)
}
