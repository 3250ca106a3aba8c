package export

import (
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
	"github.com/xuri/excelize/v2"
)

type ExcelRenderer struct{}

func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *ExcelRenderer) Extension() string { return "xlsx" }

// Render produces a two-sheet workbook: the summary sheet and one row per
// project breakdown entry.
func (r *ExcelRenderer) Render(m summary.MonthlySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	employeeName := m.EmployeeID
	if m.EmployeeName != nil {
		employeeName = *m.EmployeeName
	}

	rows := [][]interface{}{
		{"Employee", employeeName},
		{"Period", fmt.Sprintf("%s %d", time.Month(m.PeriodMonth), m.PeriodYear)},
		{"Status", string(m.Status)},
		{"Working days", m.TotalWorkingDays},
		{"Worked hours", m.TotalWorkedHours.StringFixed(2)},
		{"Overtime hours", m.TotalOTHours.StringFixed(2)},
		{"Approved leave days", m.ApprovedLeaveDays.String()},
		{"Absent days", m.AbsentDays},
		{"Subtotal", m.Subtotal.StringFixed(2)},
		{"Tax percentage", m.TaxPercentage.String()},
		{"Tax amount", m.TaxAmount.StringFixed(2)},
		{"Total amount", m.TotalAmount.StringFixed(2)},
	}
	if m.InvoiceNumber != nil {
		rows = append(rows, []interface{}{"Invoice", *m.InvoiceNumber})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to address summary cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	if len(m.Breakdown) > 0 {
		const breakdownSheet = "Projects"
		if _, err := f.NewSheet(breakdownSheet); err != nil {
			return nil, fmt.Errorf("failed to create breakdown sheet: %w", err)
		}

		header := []interface{}{"Project", "Days", "Hours", "OT Hours"}
		if err := f.SetSheetRow(breakdownSheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write breakdown header: %w", err)
		}

		for i, entry := range m.Breakdown {
			row := []interface{}{
				entry.ProjectName,
				entry.Days,
				entry.Hours.StringFixed(2),
				entry.OTHours.StringFixed(2),
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address breakdown cell: %w", err)
			}
			if err := f.SetSheetRow(breakdownSheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write breakdown row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render summary workbook: %w", err)
	}
	return buf.Bytes(), nil
}
