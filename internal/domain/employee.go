package domain

import "time"

// Employee is a registry entry. EmployeeID is the business identifier used in
// URLs and attendance rows; ID is the immutable surrogate key.
type Employee struct {
	ID           string
	EmployeeID   string
	FullName     string
	Email        string
	Department   string
	CreatedAt    time.Time
	PresentCount int64
}
