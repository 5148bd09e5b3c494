package router

import (
	"tax-backoffice-backend/cases/repositories"
	"tax-backoffice-backend/reports/controllers"

	"github.com/gofiber/fiber/v2"
)

func ReportRouterInit(app *fiber.App, caseRepo repositories.CaseRepository) {
	reportController := &controllers.ReportController{
		CaseRepo: caseRepo,
	}

	reports := app.Group("/api/v1/reports")
	reports.Get("/invoices.xlsx", reportController.GetInvoiceRegisterController)
	reports.Get("/invoices/:id/pdf", reportController.GetInvoicePDFController)
}
