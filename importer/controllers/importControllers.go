package controllers

import (
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/importer/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ImportController struct {
	ImportService *services.ImportService
}

func (ic *ImportController) ImportLocalExportController(c *fiber.Ctx) error {
	var payload services.ImportPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	counts, err := ic.ImportService.Run(&payload)
	if err != nil {
		config.Logger.Error("Legacy import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Import failed",
		})
	}

	config.Logger.Info("Legacy import applied",
		zap.Int64("users", counts["users"]),
		zap.Int64("cases", counts["cases"]),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"imported": counts,
	})
}
