package controllers

import (
	"errors"
	"fmt"
	"strings"

	activity_services "tax-backoffice-backend/activities/services"
	"tax-backoffice-backend/cases/repositories"
	"tax-backoffice-backend/cases/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	search_repositories "tax-backoffice-backend/search/repositories"
	user_services "tax-backoffice-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CaseController struct {
	CaseRepo   repositories.CaseRepository
	DB         *gorm.DB
	SearchRepo search_repositories.SearchRepositoryInterface
	Recorder   *activity_services.Recorder
}

// GetCasesController lists cases with optional clientEmail, assignedTo
// and status filters.
func (cc *CaseController) GetCasesController(c *fiber.Ctx) error {
	filters := map[string]string{
		"clientEmail": c.Query("clientEmail"),
		"assignedTo":  c.Query("assignedTo"),
		"status":      c.Query("status"),
	}

	cases, err := cc.CaseRepo.GetFilteredCases(filters)
	if err != nil {
		config.Logger.Error("Failed to fetch cases", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch cases",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapCases(cases))
}

type createCaseRequest struct {
	ClientEmail string `json:"clientEmail"`
	ClientName  string `json:"clientName"`
	AssignedTo  string `json:"assignedTo"`
	Service     string `json:"service"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`

	Tasks *[]services.TaskInput `json:"tasks"`
}

// CreateCaseController opens a case for a client. When the request
// carries no tasks array, the service's standard checklist is seeded.
func (cc *CaseController) CreateCaseController(c *fiber.Ctx) error {
	var req createCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ClientEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "clientEmail is required",
		})
	}
	if req.Service == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "service is required",
		})
	}

	client, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{
		Email: req.ClientEmail,
		Name:  req.ClientName,
	})
	if err != nil {
		config.Logger.Error("Failed to resolve case client", zap.String("email", req.ClientEmail), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve client",
		})
	}

	taxCase := models.TaxCase{
		ClientID: client.ID,
		Service:  req.Service,
		Status:   services.NormalizeCaseStatus(req.Status),
		Priority: req.Priority,
		Notes:    req.Notes,
	}

	if req.AssignedTo != "" {
		assignee, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{Email: req.AssignedTo})
		if err != nil {
			config.Logger.Error("Failed to resolve case assignee", zap.String("email", req.AssignedTo), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to resolve assignee",
			})
		}
		taxCase.AssignedToID = &assignee.ID
	}

	if req.Tasks != nil {
		for _, input := range *req.Tasks {
			if input.Title == "" {
				continue
			}
			assigneeID, err := cc.resolveAssignee(input.Assignee)
			if err != nil {
				config.Logger.Error("Failed to resolve task assignee", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to resolve task assignee",
				})
			}
			taxCase.Tasks = append(taxCase.Tasks, services.BuildTask("", input, assigneeID))
		}
	} else {
		for _, title := range services.DefaultTasksForService(req.Service) {
			taxCase.Tasks = append(taxCase.Tasks, models.CaseTask{
				Title:  title,
				Status: models.TaskStatusTodo,
			})
		}
	}

	created, err := cc.CaseRepo.CreateCase(&taxCase)
	if err != nil {
		config.Logger.Error("Failed to create case", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create case",
		})
	}

	if cc.SearchRepo != nil {
		if err := cc.SearchRepo.IndexCase(*created); err != nil {
			config.Logger.Warn("Failed to index case", zap.String("caseID", created.ID), zap.Error(err))
		}
	}
	if cc.Recorder != nil {
		_, err := cc.Recorder.Record(&models.Activity{
			Type:    "CASE_CREATED",
			Message: fmt.Sprintf("Case opened for %s (%s)", client.Email, created.Service),
			UserID:  &client.ID,
		})
		if err != nil {
			config.Logger.Warn("Failed to record case activity", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(services.MapCase(*created))
}

func (cc *CaseController) GetCaseController(c *fiber.Ctx) error {
	taxCase, err := cc.CaseRepo.GetCaseByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Case not found",
			})
		}
		config.Logger.Error("Failed to fetch case", zap.String("caseID", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch case",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapCase(*taxCase))
}

type patchCaseRequest struct {
	Service    *string `json:"service"`
	Status     *string `json:"status"`
	AssignedTo *string `json:"assignedTo"`
	Priority   *string `json:"priority"`
	Notes      *string `json:"notes"`
}

// PatchCaseController applies only the supplied fields. assignedTo:""
// clears the assignment.
func (cc *CaseController) PatchCaseController(c *fiber.Ctx) error {
	taxCase, err := cc.CaseRepo.GetCaseByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Case not found",
			})
		}
		config.Logger.Error("Failed to fetch case", zap.String("caseID", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch case",
		})
	}

	var req patchCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updates := map[string]interface{}{}
	if req.Service != nil && *req.Service != "" {
		updates["service"] = *req.Service
	}
	if req.Status != nil {
		updates["status"] = services.NormalizeCaseStatus(*req.Status)
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.AssignedTo != nil {
		if strings.TrimSpace(*req.AssignedTo) == "" {
			updates["assigned_to_id"] = nil
		} else {
			assignee, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{Email: *req.AssignedTo})
			if err != nil {
				config.Logger.Error("Failed to resolve case assignee", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to resolve assignee",
				})
			}
			updates["assigned_to_id"] = assignee.ID
		}
	}

	updated, err := cc.CaseRepo.UpdateCase(taxCase, updates)
	if err != nil {
		config.Logger.Error("Failed to update case", zap.String("caseID", taxCase.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update case",
		})
	}

	if cc.SearchRepo != nil {
		if err := cc.SearchRepo.IndexCase(*updated); err != nil {
			config.Logger.Warn("Failed to re-index case", zap.String("caseID", updated.ID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(services.MapCase(*updated))
}

func (cc *CaseController) DeleteCaseController(c *fiber.Ctx) error {
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

	if err := cc.CaseRepo.DeleteCase(caseID); err != nil {
		config.Logger.Error("Failed to delete case", zap.String("caseID", caseID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete case",
		})
	}

	if cc.SearchRepo != nil {
		if err := cc.SearchRepo.DeleteCase(caseID); err != nil {
			config.Logger.Warn("Failed to remove case from index", zap.String("caseID", caseID), zap.Error(err))
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted": true})
}

func (cc *CaseController) resolveAssignee(email string) (*string, error) {
	if email == "" {
		return nil, nil
	}
	user, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{Email: email})
	if err != nil {
		return nil, err
	}
	return &user.ID, nil
}
