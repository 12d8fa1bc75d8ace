package domain

import (
	"fmt"
	"time"
)

// AttendanceStatus enumerates the two possible day outcomes.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// DateLayout is the wire and storage format of attendance dates.
const DateLayout = "2006-01-02"

// ParseAttendanceStatus validates a raw status value.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	switch AttendanceStatus(raw) {
	case AttendancePresent, AttendanceAbsent:
		return AttendanceStatus(raw), nil
	}
	return "", fmt.Errorf("invalid attendance status %q", raw)
}

// Attendance is one employee's record for one calendar day.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     AttendanceStatus
	CreatedAt  time.Time
}

// DateOf truncates t to its calendar day, expressed in UTC so that the
// year/month/day survive encoding as a SQL DATE.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
