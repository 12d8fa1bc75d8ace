package dto

import (
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
)

// CreateEmployeeRequest payload. A missing employeeId asks the registry to generate one.
type CreateEmployeeRequest struct {
	EmployeeID *string `json:"employeeId" validate:"omitempty,notblank,max=50"`
	FullName   string  `json:"fullName" validate:"required,notblank,max=200"`
	Email      string  `json:"email" validate:"required,email,max=200"`
	Department string  `json:"department" validate:"required,notblank,max=100"`
}

// ToInput converts the request into a registry input.
func (r CreateEmployeeRequest) ToInput() service.EmployeeCreateInput {
	spec := service.AutoEmployeeID()
	if r.EmployeeID != nil {
		spec = service.ExplicitEmployeeID(*r.EmployeeID)
	}
	return service.EmployeeCreateInput{
		ID:         spec,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
}

// EmployeeResponse is the public employee shape. PresentCount is only set on reads.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"createdAt"`
	PresentCount *int64    `json:"presentCount,omitempty"`
}

// DeleteEmployeeResponse confirms a deletion.
type DeleteEmployeeResponse struct {
	Message    string `json:"message"`
	EmployeeID string `json:"employeeId"`
}

// NewEmployeeResponse maps a freshly created employee.
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         emp.ID,
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
		CreatedAt:  emp.CreatedAt,
	}
}

// NewEmployeeDetail maps an employee read back with its present-day count.
func NewEmployeeDetail(emp *domain.Employee) EmployeeResponse {
	resp := NewEmployeeResponse(emp)
	count := emp.PresentCount
	resp.PresentCount = &count
	return resp
}

// NewEmployeeList maps a list read.
func NewEmployeeList(list []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for i := range list {
		out = append(out, NewEmployeeDetail(&list[i]))
	}
	return out
}
