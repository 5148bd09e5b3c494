package router

import (
	"tax-backoffice-backend/importer/controllers"
	"tax-backoffice-backend/importer/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ImportRouterInit(app *fiber.App, db *gorm.DB) {
	importController := &controllers.ImportController{
		ImportService: &services.ImportService{DB: db},
	}

	app.Post("/api/v1/import/local-export", importController.ImportLocalExportController)
}
