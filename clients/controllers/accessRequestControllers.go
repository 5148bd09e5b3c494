package controllers

import (
	"errors"
	"fmt"
	"time"

	"tax-backoffice-backend/clients/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	user_services "tax-backoffice-backend/users/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (cc *ClientController) GetAccessRequestsController(c *fiber.Ctx) error {
	requests, err := cc.ClientRepo.GetAccessRequests(c.Query("status"))
	if err != nil {
		config.Logger.Error("Failed to fetch access requests", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch access requests",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapAccessRequests(requests))
}

type createAccessRequestRequest struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// CreateAccessRequestController files a request to upgrade a USER to
// CLIENT. The requesting user is parked as CLIENT_PENDING until decided.
func (cc *ClientController) CreateAccessRequestController(c *fiber.Ctx) error {
	var req createAccessRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "email is required",
		})
	}

	pending := models.ClientPendingRole
	user, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{
		Email: req.Email,
		Name:  req.Name,
		Role:  &pending,
	})
	if err != nil {
		config.Logger.Error("Failed to resolve requesting user", zap.String("email", req.Email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve user",
		})
	}

	request := models.ClientAccessRequest{
		UserID: user.ID,
		Reason: req.Reason,
		Status: models.AccessRequestStatusPending,
	}

	created, err := cc.ClientRepo.CreateAccessRequest(&request)
	if err != nil {
		config.Logger.Error("Failed to create access request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create access request",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapAccessRequest(*created))
}

type decideAccessRequestRequest struct {
	Status    string `json:"status"`
	DecidedBy string `json:"decidedBy"`
}

// DecideAccessRequestController applies an approve/reject decision:
// stamps decidedAt, records the decider, and on approval promotes the
// underlying user to CLIENT.
func (cc *ClientController) DecideAccessRequestController(c *fiber.Ctx) error {
	request, err := cc.ClientRepo.GetAccessRequestByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Access request not found",
			})
		}
		config.Logger.Error("Failed to fetch access request", zap.String("requestID", c.Params("id")), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch access request",
		})
	}

	var req decideAccessRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status is required",
		})
	}

	status := services.NormalizeAccessRequestStatus(req.Status)
	now := time.Now()
	request.Status = status
	request.DecidedAt = &now
	if req.DecidedBy != "" {
		decider := req.DecidedBy
		request.DecidedByEmail = &decider
	}

	if err := cc.ClientRepo.SaveAccessRequest(request); err != nil {
		config.Logger.Error("Failed to save access request decision", zap.String("requestID", request.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save decision",
		})
	}

	if status == models.AccessRequestStatusApproved && request.User != nil {
		client := models.ClientRole
		if _, err := user_services.EnsureUser(cc.DB, user_services.UserIdentity{
			Email: request.User.Email,
			Role:  &client,
		}); err != nil {
			config.Logger.Error("Failed to promote user to client", zap.String("email", request.User.Email), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to promote user",
			})
		}
	}

	if cc.Recorder != nil && request.User != nil {
		_, err := cc.Recorder.Record(&models.Activity{
			Type:    "ACCESS_REQUEST_DECIDED",
			Message: fmt.Sprintf("Access request for %s %s", request.User.Email, string(status)),
			UserID:  &request.UserID,
		})
		if err != nil {
			config.Logger.Warn("Failed to record access request activity", zap.Error(err))
		}
	}

	decided, err := cc.ClientRepo.GetAccessRequestByID(request.ID)
	if err != nil {
		config.Logger.Error("Failed to reload access request", zap.String("requestID", request.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reload access request",
		})
	}

	return c.Status(fiber.StatusOK).JSON(services.MapAccessRequest(*decided))
}
