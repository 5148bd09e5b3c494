package router

import (
	"tax-backoffice-backend/search/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitSearchRoutes(app *fiber.App, searchController *controllers.SearchController) {
	searchRoutes := app.Group("/api/v1/search")
	{
		searchRoutes.Get("/users", searchController.SearchUsersController)
		searchRoutes.Get("/cases", searchController.SearchCasesController)
		searchRoutes.Get("/inquiries", searchController.SearchInquiriesController)
	}
}
