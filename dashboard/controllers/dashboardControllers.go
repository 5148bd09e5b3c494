package controllers

import (
	"errors"
	"strings"
	"time"

	"tax-backoffice-backend/calculations/repositories"
	calculation_services "tax-backoffice-backend/calculations/services"
	case_repositories "tax-backoffice-backend/cases/repositories"
	case_services "tax-backoffice-backend/cases/services"
	client_repositories "tax-backoffice-backend/clients/repositories"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"
	inquiry_repositories "tax-backoffice-backend/inquiries/repositories"
	user_repositories "tax-backoffice-backend/users/repositories"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type DashboardController struct {
	UserRepo        user_repositories.UserRepository
	CaseRepo        case_repositories.CaseRepository
	CalculationRepo repositories.CalculationRepository
	InquiryRepo     inquiry_repositories.InquiryRepository
	ClientRepo      client_repositories.ClientRepository
}

type adminDashboardResponse struct {
	UsersByRole          map[string]int64                      `json:"usersByRole"`
	CasesByStatus        map[string]int64                      `json:"casesByStatus"`
	ActiveCases          int64                                 `json:"activeCases"`
	UnassignedCases      int64                                 `json:"unassignedCases"`
	PendingInquiries     int64                                 `json:"pendingInquiries"`
	PendingAccessReqs    int64                                 `json:"pendingAccessRequests"`
	CalculationsByUser   map[string]int64                      `json:"calculationsByUser"`
	UpcomingAppointments []case_services.AppointmentDTO        `json:"upcomingAppointments"`
	PendingTasks         []case_services.TaskDTO               `json:"pendingTasks"`
	RecentCalculations   []calculation_services.CalculationDTO `json:"recentCalculations"`
}

func (dc *DashboardController) GetAdminDashboardController(c *fiber.Ctx) error {
	var (
		usersByRole   map[models.Role]int64
		casesByStatus map[models.CaseStatus]int64
		unassigned    int64
		pendingInq    int64
		appointments  []models.CaseAppointment
		tasks         []models.CaseTask
		calculations  []models.Calculation
		accessReqs    []models.ClientAccessRequest
	)

	g, _ := errgroup.WithContext(c.Context())
	g.Go(func() (err error) {
		usersByRole, err = dc.UserRepo.CountUsersByRole()
		return err
	})
	g.Go(func() (err error) {
		casesByStatus, err = dc.CaseRepo.CountCasesByStatus()
		return err
	})
	g.Go(func() (err error) {
		unassigned, err = dc.CaseRepo.CountUnassignedCases()
		return err
	})
	g.Go(func() (err error) {
		pendingInq, err = dc.InquiryRepo.CountPending()
		return err
	})
	g.Go(func() (err error) {
		appointments, err = dc.CaseRepo.GetUpcomingAppointments(time.Now(), 20)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = dc.CaseRepo.GetPendingTasks(nil, 100)
		return err
	})
	g.Go(func() (err error) {
		calculations, err = dc.CalculationRepo.GetRecentCalculations(20)
		return err
	})
	g.Go(func() (err error) {
		accessReqs, err = dc.ClientRepo.GetAccessRequests(string(models.AccessRequestStatusPending))
		return err
	})
	if err := g.Wait(); err != nil {
		config.Logger.Error("Failed to build admin dashboard", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build dashboard",
		})
	}

	roleCounts := make(map[string]int64, len(usersByRole))
	for role, count := range usersByRole {
		roleCounts[string(role)] = count
	}

	statusCounts := make(map[string]int64, len(casesByStatus))
	var active int64
	for status, count := range casesByStatus {
		statusCounts[string(status)] = count
		if status != models.CaseStatusCompleted {
			active += count
		}
	}

	calculationsByUser := make(map[string]int64)
	for _, calculation := range calculations {
		if calculation.User != nil {
			calculationsByUser[calculation.User.Email]++
		}
	}

	return c.Status(fiber.StatusOK).JSON(adminDashboardResponse{
		UsersByRole:          roleCounts,
		CasesByStatus:        statusCounts,
		ActiveCases:          active,
		UnassignedCases:      unassigned,
		PendingInquiries:     pendingInq,
		PendingAccessReqs:    int64(len(accessReqs)),
		CalculationsByUser:   calculationsByUser,
		UpcomingAppointments: case_services.MapAppointments(appointments),
		PendingTasks:         case_services.MapTasks(tasks),
		RecentCalculations:   calculation_services.MapCalculations(calculations),
	})
}

type employeeDashboardResponse struct {
	AssignedCases []case_services.CaseDTO `json:"assignedCases"`
	ActiveCases   int64                   `json:"activeCases"`
	PendingTasks  []case_services.TaskDTO `json:"pendingTasks"`
}

func (dc *DashboardController) GetEmployeeDashboardController(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	user, err := dc.UserRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		config.Logger.Error("Failed to fetch user", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch user",
		})
	}

	var (
		cases []models.TaxCase
		tasks []models.CaseTask
	)

	g, _ := errgroup.WithContext(c.Context())
	g.Go(func() (err error) {
		cases, err = dc.CaseRepo.GetCasesByAssignee(user.ID)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = dc.CaseRepo.GetPendingTasks(&user.ID, 100)
		return err
	})
	if err := g.Wait(); err != nil {
		config.Logger.Error("Failed to build employee dashboard", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build dashboard",
		})
	}

	var active int64
	for _, taxCase := range cases {
		if taxCase.Status != models.CaseStatusCompleted {
			active++
		}
	}

	return c.Status(fiber.StatusOK).JSON(employeeDashboardResponse{
		AssignedCases: case_services.MapCases(cases),
		ActiveCases:   active,
		PendingTasks:  case_services.MapTasks(tasks),
	})
}
