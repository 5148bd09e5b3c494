package services

import (
	"encoding/json"
	"errors"
	"strings"

	case_repositories "tax-backoffice-backend/cases/repositories"
	case_services "tax-backoffice-backend/cases/services"
	client_services "tax-backoffice-backend/clients/services"
	"tax-backoffice-backend/db/models"
	inquiry_services "tax-backoffice-backend/inquiries/services"
	user_services "tax-backoffice-backend/users/services"
	"tax-backoffice-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ImportPayload is the legacy client-side export blob. Every array is
// optional; rows carry their original ids so a re-import lands on the
// same primary keys.
type ImportPayload struct {
	Users                []UserImport          `json:"users"`
	Profiles             []ProfileImport       `json:"profiles"`
	Calculations         []CalculationImport   `json:"calculations"`
	Inquiries            []InquiryImport       `json:"inquiries"`
	Activities           []ActivityImport      `json:"activities"`
	Cases                []CaseImport          `json:"cases"`
	ClientAccessRequests []AccessRequestImport `json:"clientAccessRequests"`
}

type UserImport struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type ProfileImport struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	PAN     string `json:"pan"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Notes   string `json:"notes"`
}

type CalculationImport struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Kind            string          `json:"kind"`
	Input           json.RawMessage `json:"input"`
	Result          json.RawMessage `json:"result"`
	SourceTimestamp int64           `json:"sourceTimestamp"`
}

type InquiryImport struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type ActivityImport struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

type CaseImport struct {
	ID          string `json:"id"`
	ClientEmail string `json:"clientEmail"`
	AssignedTo  string `json:"assignedTo"`
	Service     string `json:"service"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Notes       string `json:"notes"`

	Documents     []case_services.DocumentInput    `json:"documents"`
	Appointments  []case_services.AppointmentInput `json:"appointments"`
	Invoices      []case_services.InvoiceInput     `json:"invoices"`
	Tasks         []case_services.TaskInput        `json:"tasks"`
	InternalNotes []case_services.NoteInput        `json:"internalNotes"`
}

type AccessRequestImport struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	DecidedBy string `json:"decidedBy"`
	DecidedAt int64  `json:"decidedAt"`
}

type ImportService struct {
	DB *gorm.DB
}

// Run applies the whole payload in one transaction, in dependency order:
// later entities reference users and cases created earlier. Rows missing
// their natural key are skipped without error; only successful counts
// are reported.
func (s *ImportService) Run(payload *ImportPayload) (map[string]int64, error) {
	counts := map[string]int64{
		"users":                0,
		"profiles":             0,
		"calculations":         0,
		"inquiries":            0,
		"activities":           0,
		"cases":                0,
		"clientAccessRequests": 0,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range payload.Users {
			if row.Email == "" {
				continue
			}
			if err := importUser(tx, row); err != nil {
				return err
			}
			counts["users"]++
		}

		for _, row := range payload.Profiles {
			if row.Email == "" {
				continue
			}
			if err := importProfile(tx, row); err != nil {
				return err
			}
			counts["profiles"]++
		}

		for _, row := range payload.Calculations {
			if row.ID == "" || row.Email == "" {
				continue
			}
			if err := importCalculation(tx, row); err != nil {
				return err
			}
			counts["calculations"]++
		}

		for _, row := range payload.Inquiries {
			if row.ID == "" || row.Email == "" {
				continue
			}
			if err := importInquiry(tx, row); err != nil {
				return err
			}
			counts["inquiries"]++
		}

		for _, row := range payload.Activities {
			if row.ID == "" || row.Type == "" {
				continue
			}
			if err := importActivity(tx, row); err != nil {
				return err
			}
			counts["activities"]++
		}

		for _, row := range payload.Cases {
			if row.ID == "" || row.ClientEmail == "" || row.Service == "" {
				continue
			}
			if err := importCase(tx, row); err != nil {
				return err
			}
			counts["cases"]++
		}

		for _, row := range payload.ClientAccessRequests {
			if row.ID == "" || row.Email == "" {
				continue
			}
			if err := importAccessRequest(tx, row); err != nil {
				return err
			}
			counts["clientAccessRequests"]++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return counts, nil
}

// importUser upserts by email but keeps the exported id on first insert,
// so rows referencing it by id keep working across re-imports.
func importUser(tx *gorm.DB, row UserImport) error {
	email := strings.ToLower(strings.TrimSpace(row.Email))

	var role *models.Role
	if row.Role != "" {
		normalized := user_services.NormalizeRole(row.Role)
		role = &normalized
	}

	var existing models.User
	err := tx.Where("email = ?", email).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user := models.User{
			ID:    row.ID,
			Email: email,
			Name:  row.Name,
			Role:  models.UserRole,
		}
		if role != nil {
			user.Role = *role
		}
		if user.Name == "" {
			user.Name = email
			if at := strings.Index(email, "@"); at > 0 {
				user.Name = email[:at]
			}
		}
		return tx.Create(&user).Error
	}

	_, err = user_services.EnsureUser(tx, user_services.UserIdentity{Email: email, Name: row.Name, Role: role})
	return err
}

func importProfile(tx *gorm.DB, row ProfileImport) error {
	user, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: row.Email})
	if err != nil {
		return err
	}

	var profile models.ClientProfile
	err = tx.Where("user_id = ?", user.ID).First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile.UserID = user.ID
	profile.Phone = row.Phone
	profile.PAN = row.PAN
	profile.Address = row.Address
	profile.City = row.City
	profile.State = row.State
	profile.Pincode = row.Pincode
	profile.Notes = row.Notes
	return tx.Save(&profile).Error
}

func importCalculation(tx *gorm.DB, row CalculationImport) error {
	user, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: row.Email})
	if err != nil {
		return err
	}

	calculation := models.Calculation{
		ID:              row.ID,
		UserID:          user.ID,
		Kind:            row.Kind,
		Input:           datatypes.JSON(row.Input),
		Result:          datatypes.JSON(row.Result),
		SourceTimestamp: utils.FromMillis(row.SourceTimestamp),
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&calculation).Error
}

func importInquiry(tx *gorm.DB, row InquiryImport) error {
	inquiry := models.Inquiry{
		ID:      row.ID,
		Name:    row.Name,
		Email:   row.Email,
		Subject: row.Subject,
		Message: row.Message,
		Status:  inquiry_services.NormalizeInquiryStatus(row.Status),
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&inquiry).Error
}

func importActivity(tx *gorm.DB, row ActivityImport) error {
	activity := models.Activity{
		ID:      row.ID,
		Type:    row.Type,
		Message: row.Message,
	}
	if row.Email != "" {
		user, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: row.Email})
		if err != nil {
			return err
		}
		activity.UserID = &user.ID
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&activity).Error
}

// importCase upserts the case row, then deletes and fully rebuilds its
// children from the payload. The export is authoritative for children.
func importCase(tx *gorm.DB, row CaseImport) error {
	client, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: row.ClientEmail})
	if err != nil {
		return err
	}

	var assignedToID *string
	if row.AssignedTo != "" {
		assignee, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: row.AssignedTo})
		if err != nil {
			return err
		}
		assignedToID = &assignee.ID
	}

	taxCase := models.TaxCase{
		ID:           row.ID,
		ClientID:     client.ID,
		AssignedToID: assignedToID,
		Service:      row.Service,
		Status:       case_services.NormalizeCaseStatus(row.Status),
		Priority:     row.Priority,
		Notes:        row.Notes,
	}
	if err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{UpdateAll: true}).Create(&taxCase).Error; err != nil {
		return err
	}

	if err := case_repositories.DeleteCaseChildren(tx, taxCase.ID); err != nil {
		return err
	}

	for _, input := range row.Documents {
		document := case_services.BuildDocument(taxCase.ID, input)
		if err := tx.Create(&document).Error; err != nil {
			return err
		}
	}
	for _, input := range row.Appointments {
		appointment := case_services.BuildAppointment(taxCase.ID, input)
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
	}
	for _, input := range row.Invoices {
		invoice := case_services.BuildInvoice(taxCase.ID, input)
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
	}
	for _, input := range row.Tasks {
		var assigneeID *string
		if input.Assignee != "" {
			assignee, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: input.Assignee})
			if err != nil {
				return err
			}
			assigneeID = &assignee.ID
		}
		task := case_services.BuildTask(taxCase.ID, input, assigneeID)
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
	}
	for _, input := range row.InternalNotes {
		note := case_services.BuildNote(taxCase.ID, input)
		if err := tx.Create(&note).Error; err != nil {
			return err
		}
	}

	return nil
}

func importAccessRequest(tx *gorm.DB, row AccessRequestImport) error {
	user, err := user_services.EnsureUser(tx, user_services.UserIdentity{Email: row.Email})
	if err != nil {
		return err
	}

	request := models.ClientAccessRequest{
		ID:        row.ID,
		UserID:    user.ID,
		Reason:    row.Reason,
		Status:    client_services.NormalizeAccessRequestStatus(row.Status),
		DecidedAt: utils.FromMillis(row.DecidedAt),
	}
	if row.DecidedBy != "" {
		decidedBy := row.DecidedBy
		request.DecidedByEmail = &decidedBy
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&request).Error
}
