package export

import (
	"fmt"

	"github.com/sitecrew/workforce-backend-go/internal/domain/summary"
)

// Renderer turns one monthly summary into a downloadable document.
type Renderer interface {
	Render(m summary.MonthlySummary) ([]byte, error)
	ContentType() string
	Extension() string
}

// Filename builds the download name for a rendered summary. Approved
// summaries are named after their invoice number.
func Filename(m summary.MonthlySummary, r Renderer) string {
	if m.InvoiceNumber != nil && *m.InvoiceNumber != "" {
		return fmt.Sprintf("%s.%s", *m.InvoiceNumber, r.Extension())
	}
	return fmt.Sprintf("summary-%s-%04d%02d.%s", m.EmployeeID, m.PeriodYear, m.PeriodMonth, r.Extension())
}
