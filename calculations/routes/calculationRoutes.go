package router

import (
	"tax-backoffice-backend/calculations/controllers"
	"tax-backoffice-backend/calculations/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InitCalculationRoutes(
	app *fiber.App,
	calculationRepo repositories.CalculationRepository,
	db *gorm.DB,
) {
	calculationController := &controllers.CalculationController{
		CalculationRepo: calculationRepo,
		DB:              db,
	}

	calculationRoutes := app.Group("/api/v1/calculations")
	{
		calculationRoutes.Get("/", calculationController.GetCalculationsController)
		calculationRoutes.Post("/", calculationController.CreateCalculationController)
	}
}
