package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Extension() string { return "pdf" }

// Render produces a single-page summary document.
func (r *PDFRenderer) Render(m summary.MonthlySummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Monthly Work Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	if m.EmployeeName != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", *m.EmployeeName))
	} else {
		pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", m.EmployeeID))
	}
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", time.Month(m.PeriodMonth), m.PeriodYear))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", m.Status))
	pdf.Ln(7)
	if m.InvoiceNumber != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Invoice: %s", *m.InvoiceNumber))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.Cell(0, 8, fmt.Sprintf("Working days: %d", m.TotalWorkingDays))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Worked hours: %s", m.TotalWorkedHours.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime hours: %s", m.TotalOTHours.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Approved leave days: %s", m.ApprovedLeaveDays.String()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Absent days: %d", m.AbsentDays))
	pdf.Ln(10)

	if len(m.Breakdown) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Project breakdown")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, entry := range m.Breakdown {
			pdf.Cell(0, 7, fmt.Sprintf("%s: %d days, %s h, %s OT h",
				entry.ProjectName, entry.Days,
				entry.Hours.StringFixed(2), entry.OTHours.StringFixed(2)))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %s", m.Subtotal.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax (%s%%): %s", m.TaxPercentage.String(), m.TaxAmount.StringFixed(2)))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s", m.TotalAmount.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}
