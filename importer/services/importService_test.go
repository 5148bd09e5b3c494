package services

import (
	"encoding/json"
	"testing"

	case_services "tax-backoffice-backend/cases/services"
	"tax-backoffice-backend/config"
	"tax-backoffice-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.Logger = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(config.AllModels()...))
	return db
}

func legacyPayload() *ImportPayload {
	return &ImportPayload{
		Users: []UserImport{
			{ID: "u-1", Email: "owner@firm.in", Name: "Owner", Role: "admin"},
			{ID: "u-2", Email: "client@x.com", Role: "client"},
			{Email: ""}, // no natural key, silently skipped
		},
		Profiles: []ProfileImport{
			{Email: "client@x.com", Phone: "9876543210", PAN: "ABCDE1234F", City: "Pune"},
		},
		Calculations: []CalculationImport{
			{
				ID:              "calc-1",
				Email:           "client@x.com",
				Kind:            "ADVANCE_TAX",
				Input:           json.RawMessage(`{"income":1200000}`),
				Result:          json.RawMessage(`{"tax":90000}`),
				SourceTimestamp: 1735689600000,
			},
		},
		Inquiries: []InquiryImport{
			{ID: "inq-1", Email: "stranger@y.com", Message: "Do you handle NRI returns?", Status: "pending"},
		},
		Activities: []ActivityImport{
			{ID: "act-1", Type: "CASE_CREATED", Message: "Case opened", Email: "owner@firm.in"},
			{Message: "missing type, skipped"},
		},
		Cases: []CaseImport{
			{
				ID:          "case-1",
				ClientEmail: "client@x.com",
				AssignedTo:  "owner@firm.in",
				Service:     "GST Filing",
				Status:      "in_review",
				Tasks: []case_services.TaskInput{
					{ID: "task-1", Title: "Collect sales invoices", Status: "todo"},
					{ID: "task-2", Title: "Reconcile input credits", Status: "in_progress"},
				},
				Invoices: []case_services.InvoiceInput{
					{ID: "inv-1", Number: "INV-001", Amount: "5000.00", Status: "sent"},
				},
			},
		},
		ClientAccessRequests: []AccessRequestImport{
			{ID: "req-1", Email: "client@x.com", Reason: "legacy", Status: "approved", DecidedBy: "owner@firm.in", DecidedAt: 1735689600000},
		},
	}
}

func TestImportAppliesAllKinds(t *testing.T) {
	db := openTestDB(t)
	svc := &ImportService{DB: db}

	counts, err := svc.Run(legacyPayload())
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts["users"])
	assert.Equal(t, int64(1), counts["profiles"])
	assert.Equal(t, int64(1), counts["calculations"])
	assert.Equal(t, int64(1), counts["inquiries"])
	assert.Equal(t, int64(1), counts["activities"])
	assert.Equal(t, int64(1), counts["cases"])
	assert.Equal(t, int64(1), counts["clientAccessRequests"])

	// Exported ids are stored as-is.
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u-2").Error)
	assert.Equal(t, "client@x.com", user.Email)
	assert.Equal(t, models.ClientRole, user.Role)

	var taxCase models.TaxCase
	require.NoError(t, db.Preload("Tasks").First(&taxCase, "id = ?", "case-1").Error)
	assert.Equal(t, models.CaseStatusInReview, taxCase.Status)
	assert.Len(t, taxCase.Tasks, 2)
	require.NotNil(t, taxCase.AssignedToID)
	assert.Equal(t, "u-1", *taxCase.AssignedToID)
}

func TestImportIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	svc := &ImportService{DB: db}

	first, err := svc.Run(legacyPayload())
	require.NoError(t, err)
	second, err := svc.Run(legacyPayload())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	tables := map[string]interface{}{
		"users":        &models.User{},
		"profiles":     &models.ClientProfile{},
		"calculations": &models.Calculation{},
		"inquiries":    &models.Inquiry{},
		"activities":   &models.Activity{},
		"cases":        &models.TaxCase{},
		"tasks":        &models.CaseTask{},
		"invoices":     &models.CaseInvoice{},
		"requests":     &models.ClientAccessRequest{},
	}
	want := map[string]int64{
		"users":        2,
		"profiles":     1,
		"calculations": 1,
		"inquiries":    1,
		"activities":   1,
		"cases":        1,
		"tasks":        2,
		"invoices":     1,
		"requests":     1,
	}
	for name, model := range tables {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, want[name], count, name)
	}
}

func TestImportSkipsRowsWithoutID(t *testing.T) {
	db := openTestDB(t)
	svc := &ImportService{DB: db}

	// Without an exported id there is nothing to upsert against, so a
	// re-import of the same blob would insert duplicates. Such rows are
	// skipped and not counted.
	payload := &ImportPayload{
		Users: []UserImport{{ID: "u-1", Email: "client@x.com"}},
		Calculations: []CalculationImport{
			{Email: "client@x.com", Kind: "ADVANCE_TAX", Input: json.RawMessage(`{}`)},
		},
		Cases: []CaseImport{
			{ClientEmail: "client@x.com", Service: "GST Filing"},
		},
		Inquiries: []InquiryImport{
			{Email: "stranger@y.com", Message: "no id"},
		},
		Activities: []ActivityImport{
			{Type: "CASE_CREATED", Message: "no id"},
		},
		ClientAccessRequests: []AccessRequestImport{
			{Email: "client@x.com", Reason: "no id"},
		},
	}

	first, err := svc.Run(payload)
	require.NoError(t, err)
	second, err := svc.Run(payload)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, int64(0), first["calculations"])
	assert.Equal(t, int64(0), first["cases"])
	assert.Equal(t, int64(0), first["inquiries"])
	assert.Equal(t, int64(0), first["activities"])
	assert.Equal(t, int64(0), first["clientAccessRequests"])

	for name, model := range map[string]interface{}{
		"calculations": &models.Calculation{},
		"cases":        &models.TaxCase{},
		"inquiries":    &models.Inquiry{},
		"activities":   &models.Activity{},
		"requests":     &models.ClientAccessRequest{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Equal(t, int64(0), count, name)
	}
}

func TestImportReplacesCaseChildren(t *testing.T) {
	db := openTestDB(t)
	svc := &ImportService{DB: db}

	_, err := svc.Run(legacyPayload())
	require.NoError(t, err)

	// Second import drops one task; the replaced child set wins.
	payload := legacyPayload()
	payload.Cases[0].Tasks = payload.Cases[0].Tasks[:1]
	_, err = svc.Run(payload)
	require.NoError(t, err)

	var taskCount int64
	require.NoError(t, db.Model(&models.CaseTask{}).Where("case_id = ?", "case-1").Count(&taskCount).Error)
	assert.Equal(t, int64(1), taskCount)
}
