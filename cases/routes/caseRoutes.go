package router

import (
	activity_services "tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/cases/controllers"
	"tax-backoffice-backend/cases/repositories"
	search_repositories "tax-backoffice-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CaseRouterInit(
	app *fiber.App,
	db *gorm.DB,
	caseRepo repositories.CaseRepository,
	searchRepo search_repositories.SearchRepositoryInterface,
	recorder *activity_services.Recorder,
) {
	caseController := &controllers.CaseController{
		CaseRepo:   caseRepo,
		DB:         db,
		SearchRepo: searchRepo,
		Recorder:   recorder,
	}

	caseRoutes := app.Group("/api/v1/cases")
	{
		caseRoutes.Get("/", caseController.GetCasesController)
		caseRoutes.Post("/", caseController.CreateCaseController)

		caseRoutes.Get("/:id", caseController.GetCaseController)
		caseRoutes.Patch("/:id", caseController.PatchCaseController)
		caseRoutes.Delete("/:id", caseController.DeleteCaseController)

		caseRoutes.Post("/:id/tasks", caseController.CreateTaskController)
		caseRoutes.Patch("/:caseId/tasks/:taskId", caseController.PatchTaskController)
		caseRoutes.Delete("/:caseId/tasks/:taskId", caseController.DeleteTaskController)
	}
}
