package services

import (
	"bytes"
	"fmt"
	"time"

	"tax-backoffice-backend/db/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var invoiceRegisterHeaders = []string{
	"Number", "Case", "Service", "Client", "Status", "Amount", "Currency", "Issued", "Due",
}

// BuildInvoiceRegister renders the full invoice list into an xlsx
// workbook with one row per invoice and a per-currency total block.
func BuildInvoiceRegister(invoices []models.CaseInvoice) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheetName := "Invoices"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, header := range invoiceRegisterHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	totals := map[string]decimal.Decimal{}
	for row, invoice := range invoices {
		values := []interface{}{
			invoice.Number,
			invoice.CaseID,
			"",
			"",
			string(invoice.Status),
			invoice.Amount.StringFixed(2),
			invoice.Currency,
			formatReportDate(invoice.IssuedAt),
			formatReportDate(invoice.DueAt),
		}
		if invoice.Case != nil {
			values[2] = invoice.Case.Service
			if invoice.Case.Client != nil {
				values[3] = invoice.Case.Client.Email
			}
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("error writing invoice row %d: %v", row+2, err)
			}
		}

		if invoice.Status != models.InvoiceStatusVoid {
			totals[invoice.Currency] = totals[invoice.Currency].Add(invoice.Amount)
		}
	}

	// Totals block below the data, one row per currency. VOID invoices
	// are excluded from the totals.
	totalRow := len(invoices) + 3
	for currency, total := range totals {
		labelCell, _ := excelize.CoordinatesToCellName(5, totalRow)
		amountCell, _ := excelize.CoordinatesToCellName(6, totalRow)
		currencyCell, _ := excelize.CoordinatesToCellName(7, totalRow)
		if err := f.SetCellValue(sheetName, labelCell, "TOTAL"); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, amountCell, total.StringFixed(2)); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, currencyCell, currency); err != nil {
			return nil, err
		}
		totalRow++
	}

	f.SetActiveSheet(index)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %v", err)
	}
	return buffer, nil
}

func formatReportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
