package employee

import "time"

type Employee struct {
	ID        string
	CompanyID string
	Name      string
	IsActive  bool
	HireDate  time.Time
}
