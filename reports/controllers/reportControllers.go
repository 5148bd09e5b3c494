package controllers

import (
	"errors"
	"fmt"
	"time"

	"tax-backoffice-backend/cases/repositories"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/reports/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ReportController struct {
	CaseRepo repositories.CaseRepository
}

func (rc *ReportController) GetInvoiceRegisterController(c *fiber.Ctx) error {
	invoices, err := rc.CaseRepo.GetInvoices()
	if err != nil {
		config.Logger.Error("Failed to fetch invoices for register", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch invoices",
		})
	}

	buffer, err := services.BuildInvoiceRegister(invoices)
	if err != nil {
		config.Logger.Error("Failed to build invoice register", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build invoice register",
		})
	}

	filename := fmt.Sprintf("invoice_register_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Status(fiber.StatusOK).Send(buffer.Bytes())
}

func (rc *ReportController) GetInvoicePDFController(c *fiber.Ctx) error {
	invoice, err := rc.CaseRepo.GetInvoiceByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Invoice not found",
			})
		}
		config.Logger.Error("Failed to fetch invoice", zap.String("invoiceID", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch invoice",
		})
	}

	pdf, err := services.GenerateInvoicePDF(invoice)
	if err != nil {
		config.Logger.Error("Failed to generate invoice PDF", zap.String("invoiceID", invoice.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate invoice PDF",
		})
	}

	filename := fmt.Sprintf("invoice_%s.pdf", invoice.Number)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Status(fiber.StatusOK).Send(pdf)
}
