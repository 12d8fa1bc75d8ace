package dto

import (
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
)

// MarkAttendanceRequest payload.
type MarkAttendanceRequest struct {
	EmployeeID string `json:"employeeId" validate:"required,notblank,max=50"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Status     string `json:"status" validate:"required,oneof=Present Absent"`
}

// ToInput converts a validated request into a service input.
func (r MarkAttendanceRequest) ToInput() (service.AttendanceMarkInput, error) {
	date, err := time.Parse(domain.DateLayout, r.Date)
	if err != nil {
		return service.AttendanceMarkInput{}, err
	}
	return service.AttendanceMarkInput{
		EmployeeID: r.EmployeeID,
		Date:       date,
		Status:     domain.AttendanceStatus(r.Status),
	}, nil
}

// AttendanceResponse is the public attendance shape.
type AttendanceResponse struct {
	ID         string                  `json:"id"`
	EmployeeID string                  `json:"employeeId"`
	Date       string                  `json:"date"`
	Status     domain.AttendanceStatus `json:"status"`
	CreatedAt  time.Time               `json:"createdAt"`
}

// NewAttendanceResponse maps a record.
func NewAttendanceResponse(rec *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date.Format(domain.DateLayout),
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt,
	}
}

// NewAttendanceList maps records, keeping their order.
func NewAttendanceList(records []domain.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, NewAttendanceResponse(&records[i]))
	}
	return out
}
