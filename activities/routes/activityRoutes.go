package router

import (
	"tax-backoffice-backend/activities/controllers"
	"tax-backoffice-backend/activities/repositories"
	"tax-backoffice-backend/activities/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InitActivityRoutes(
	app *fiber.App,
	activityRepo repositories.ActivityRepository,
	recorder *services.Recorder,
	db *gorm.DB,
) {
	activityController := &controllers.ActivityController{
		ActivityRepo: activityRepo,
		Recorder:     recorder,
		DB:           db,
	}

	activityRoutes := app.Group("/api/v1/activities")
	{
		activityRoutes.Get("/", activityController.GetActivitiesController)
		activityRoutes.Post("/", activityController.CreateActivityController)
	}
}
