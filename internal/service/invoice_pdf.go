package service

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"chainvoice/internal/domain"
	"chainvoice/pkg/format"
	"chainvoice/pkg/token"
)

// DocumentService renders invoices as downloadable PDFs for off-chain
// bookkeeping.
type DocumentService struct{}

func NewDocumentService() *DocumentService {
	return &DocumentService{}
}

// GenerateInvoicePDF renders a single-page PDF of the invoice with its
// status resolved at now.
func (ds *DocumentService) GenerateInvoicePDF(inv domain.Invoice, now time.Time) ([]byte, error) {
	status := domain.ResolveStatus(inv, now)
	amount := format.Currency(token.FormatUnits(inv.Amount), true)
	billDate := format.DisplayDate(time.Unix(inv.BillDate, 0).UTC())
	dueDate := format.DisplayDate(time.Unix(inv.DueDate, 0).UTC())

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 24)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(8)
	pdf.SetFont("Courier", "", 9)
	pdf.Cell(0, 6, inv.ID)
	pdf.Ln(12)

	// Issuer
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, inv.OrgName)
	pdf.Ln(7)
	pdf.SetFont("Courier", "", 9)
	pdf.Cell(0, 5, "Receiver: "+inv.Receiver)
	pdf.Ln(12)

	// Dates and status
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 6, "Bill Date: "+billDate)
	pdf.Cell(60, 6, "Due Date: "+dueDate)
	pdf.Ln(6)
	pdf.Cell(60, 6, "Status: "+strings.ToUpper(string(status)))
	pdf.Ln(12)

	// Work description
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Description of Work", "", 1, "L", true, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(190, 6, inv.WorkDescription, "", "L", false)
	pdf.Ln(10)

	// Amount due box
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(110, pdf.GetY(), 90, 18, "D")
	pdf.SetFont("Arial", "B", 13)
	pdf.SetX(115)
	pdf.Cell(35, 18, "Amount Due:")
	if status == domain.StatusPaid {
		pdf.SetTextColor(0, 100, 0)
	}
	pdf.Cell(45, 18, amount)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(24)

	if status == domain.StatusPaid {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 100, 0)
		pdf.Cell(0, 8, "PAID")
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
