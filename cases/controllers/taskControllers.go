package controllers

import (
	"errors"
	"strings"

	"tax-backoffice-backend/cases/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateTaskController adds a task to an existing case.
func (cc *CaseController) CreateTaskController(c *fiber.Ctx) error {
	caseID := c.Params("id")

	if _, err := cc.CaseRepo.GetCaseByID(caseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Case not found",
			})
		}
		config.Logger.Error("Failed to fetch case", zap.String("caseID", caseID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch case",
		})
	}

	var input services.TaskInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	assigneeID, err := cc.resolveAssignee(input.Assignee)
	if err != nil {
		config.Logger.Error("Failed to resolve task assignee", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve task assignee",
		})
	}

	task := services.BuildTask(caseID, input, assigneeID)
	task.ID = "" // endpoint-created tasks always get fresh ids

	created, err := cc.CaseRepo.CreateTask(&task)
	if err != nil {
		config.Logger.Error("Failed to create task", zap.String("caseID", caseID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create task",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapTask(*created))
}

type patchTaskRequest struct {
	Title    *string `json:"title"`
	Status   *string `json:"status"`
	Assignee *string `json:"assignee"`
	DueAt    *int64  `json:"dueAt"`
}

// PatchTaskController applies only the supplied fields; assignee:""
// clears the assignment.
func (cc *CaseController) PatchTaskController(c *fiber.Ctx) error {
	task, err := cc.CaseRepo.GetTask(c.Params("caseId"), c.Params("taskId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		config.Logger.Error("Failed to fetch task", zap.String("taskID", c.Params("taskId")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task",
		})
	}

	var req patchTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Title != nil && *req.Title != "" {
		updates["title"] = *req.Title
	}
	if req.Status != nil {
		updates["status"] = services.NormalizeTaskStatus(*req.Status)
	}
	if req.DueAt != nil {
		updates["due_at"] = utils.FromMillis(*req.DueAt)
	}
	if req.Assignee != nil {
		if strings.TrimSpace(*req.Assignee) == "" {
			updates["assignee_id"] = nil
		} else {
			assigneeID, err := cc.resolveAssignee(*req.Assignee)
			if err != nil {
				config.Logger.Error("Failed to resolve task assignee", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to resolve task assignee",
				})
			}
			updates["assignee_id"] = assigneeID
		}
	}

	updated, err := cc.CaseRepo.UpdateTask(task, updates)
	if err != nil {
		config.Logger.Error("Failed to update task", zap.String("taskID", task.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapTask(*updated))
}

func (cc *CaseController) DeleteTaskController(c *fiber.Ctx) error {
	err := cc.CaseRepo.DeleteTask(c.Params("caseId"), c.Params("taskId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		config.Logger.Error("Failed to delete task", zap.String("taskID", c.Params("taskId")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete task",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": true})
}
