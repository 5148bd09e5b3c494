package router

import (
	activity_services "tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/clients/controllers"
	"tax-backoffice-backend/clients/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ClientInitRoutes(
	app *fiber.App,
	clientRepo repositories.ClientRepository,
	recorder *activity_services.Recorder,
	db *gorm.DB,
) {
	clientController := &controllers.ClientController{
		ClientRepo: clientRepo,
		DB:         db,
		Recorder:   recorder,
	}

	profileRoutes := app.Group("/api/v1/profiles")
	{
		profileRoutes.Get("/:email", clientController.GetProfileController)
		profileRoutes.Put("/:email", clientController.UpdateProfileController)
	}

	accessRoutes := app.Group("/api/v1/client-access-requests")
	{
		accessRoutes.Get("/", clientController.GetAccessRequestsController)
		accessRoutes.Post("/", clientController.CreateAccessRequestController)
		accessRoutes.Patch("/:id", clientController.DecideAccessRequestController)
	}
}
