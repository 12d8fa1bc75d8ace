package events

import (
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated  EventType = "employee_created"
	EventEmployeeDeleted  EventType = "employee_deleted"
	EventAttendanceMarked EventType = "attendance_marked"
)

// Event represents a domain event emitted by services after commit.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	EmployeeID string    `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	Department   string `json:"department"`
	AutoAssigned bool   `json:"auto_assigned"`
}

// AttendanceMarkedPayload payload.
type AttendanceMarkedPayload struct {
	Date   string                  `json:"date"`
	Status domain.AttendanceStatus `json:"status"`
}
