package router

import (
	calculation_repositories "tax-backoffice-backend/calculations/repositories"
	case_repositories "tax-backoffice-backend/cases/repositories"
	client_repositories "tax-backoffice-backend/clients/repositories"
	"tax-backoffice-backend/dashboard/controllers"
	inquiry_repositories "tax-backoffice-backend/inquiries/repositories"
	user_repositories "tax-backoffice-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
)

func DashboardRouterInit(
	app *fiber.App,
	userRepo user_repositories.UserRepository,
	caseRepo case_repositories.CaseRepository,
	calculationRepo calculation_repositories.CalculationRepository,
	inquiryRepo inquiry_repositories.InquiryRepository,
	clientRepo client_repositories.ClientRepository,
) {
	dashboardController := &controllers.DashboardController{
		UserRepo:        userRepo,
		CaseRepo:        caseRepo,
		CalculationRepo: calculationRepo,
		InquiryRepo:     inquiryRepo,
		ClientRepo:      clientRepo,
	}

	dashboard := app.Group("/api/v1/dashboard")
	dashboard.Get("/admin", dashboardController.GetAdminDashboardController)
	dashboard.Get("/employee/:email", dashboardController.GetEmployeeDashboardController)
}
