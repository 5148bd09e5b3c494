package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"tax-backoffice-backend/db/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// invoicePDFData holds everything the invoice template renders.
type invoicePDFData struct {
	Number      string
	Status      string
	Service     string
	ClientName  string
	ClientEmail string
	Amount      string
	Currency    string
	IssuedDate  string
	DueDate     string
	PrintDate   string
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 48px; }
  h1 { font-size: 22px; margin-bottom: 2px; }
  .muted { color: #666; font-size: 12px; }
  .status { display: inline-block; padding: 3px 10px; border: 1px solid #1a1a1a; font-size: 12px; letter-spacing: 1px; }
  table { width: 100%; border-collapse: collapse; margin-top: 32px; }
  th { text-align: left; border-bottom: 2px solid #1a1a1a; padding: 8px 4px; font-size: 12px; }
  td { border-bottom: 1px solid #ddd; padding: 10px 4px; font-size: 13px; }
  .total { text-align: right; margin-top: 24px; font-size: 18px; font-weight: bold; }
  .footer { margin-top: 64px; font-size: 11px; color: #888; }
</style>
</head>
<body>
  <h1>Invoice {{.Number}}</h1>
  <div class="muted">Printed {{.PrintDate}}</div>
  <p><span class="status">{{.Status}}</span></p>

  <p>
    Billed to: <strong>{{.ClientName}}</strong><br>
    {{.ClientEmail}}
  </p>

  <table>
    <tr><th>Service</th><th>Issued</th><th>Due</th><th>Amount</th></tr>
    <tr>
      <td>{{.Service}}</td>
      <td>{{.IssuedDate}}</td>
      <td>{{.DueDate}}</td>
      <td>{{.Amount}} {{.Currency}}</td>
    </tr>
  </table>

  <div class="total">Total: {{.Amount}} {{.Currency}}</div>

  <div class="footer">This is a computer generated invoice and does not require a signature.</div>
</body>
</html>`

// GenerateInvoicePDF renders one invoice through the HTML template and
// prints it to an A4 portrait PDF with a headless browser.
func GenerateInvoicePDF(invoice *models.CaseInvoice) ([]byte, error) {
	data := invoicePDFData{
		Number:      invoice.Number,
		Status:      string(invoice.Status),
		Amount:      invoice.Amount.StringFixed(2),
		Currency:    invoice.Currency,
		IssuedDate:  formatReportDate(invoice.IssuedAt),
		DueDate:     formatReportDate(invoice.DueAt),
		PrintDate:   time.Now().Format("02 January 2006"),
		ClientName:  "-",
		ClientEmail: "-",
		Service:     "-",
	}
	if invoice.Case != nil {
		data.Service = invoice.Case.Service
		if invoice.Case.Client != nil {
			data.ClientName = invoice.Case.Client.Name
			data.ClientEmail = invoice.Case.Client.Email
		}
	}

	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse invoice template: %v", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice template: %v", err)
	}

	return printHTMLToPDF(htmlContent.String())
}

func printHTMLToPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(htmlContent))
	})

	server := &http.Server{Handler: mux}
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return nil, err
	}
	defer listener.Close()

	go server.Serve(listener)
	defer server.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				WithLandscape(false).
				WithPreferCSSPageSize(false).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return buf, nil
}
