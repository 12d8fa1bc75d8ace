package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// AttendanceMarkInput describes one attendance mark.
type AttendanceMarkInput struct {
	EmployeeID string
	Date       time.Time
	Status     domain.AttendanceStatus
}

// AttendanceDependencies bundles collaborators for attendance.
type AttendanceDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	AttendanceRepo repository.AttendanceRepository
	Tx             Transactor
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// AttendanceService records and lists daily attendance.
type AttendanceService struct {
	employees  repository.EmployeeRepository
	attendance repository.AttendanceRepository
	tx         Transactor
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	return &AttendanceService{
		employees:  deps.EmployeeRepo,
		attendance: deps.AttendanceRepo,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Mark stores the attendance of one employee for one day. Only the unique
// constraint on (employee, date) decides between concurrent marks.
func (s *AttendanceService) Mark(ctx context.Context, input AttendanceMarkInput) (*domain.Attendance, error) {
	if _, err := domain.ParseAttendanceStatus(string(input.Status)); err != nil {
		return nil, apperrors.NewValidationError("invalid attendance", map[string]any{"status": "must be Present or Absent"})
	}
	if input.Date.IsZero() {
		return nil, apperrors.NewValidationError("invalid attendance", map[string]any{"date": "is required"})
	}

	rec := &domain.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: input.EmployeeID,
		Date:       domain.DateOf(input.Date),
		Status:     input.Status,
	}
	day := rec.Date.Format(domain.DateLayout)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireEmployee(ctx, input.EmployeeID); err != nil {
			return err
		}
		err := s.attendance.Create(ctx, rec)
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return apperrors.NewConflict(
				fmt.Sprintf("Attendance already marked for employee %s on %s", input.EmployeeID, day),
				map[string]any{"employeeId": input.EmployeeID, "date": day},
			)
		case errors.Is(err, repository.ErrMissingReference):
			return employeeNotFound(input.EmployeeID)
		}
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventAttendanceMarked,
		EmployeeID: rec.EmployeeID,
		Payload:    events.AttendanceMarkedPayload{Date: day, Status: rec.Status},
	})
	return rec, nil
}

// ListByEmployee returns the employee's records, most recent date first.
func (s *AttendanceService) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	var records []domain.Attendance
	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		if err := s.requireEmployee(ctx, employeeID); err != nil {
			return err
		}
		var err error
		records, err = s.attendance.ListByEmployee(ctx, employeeID)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return records, nil
}

func (s *AttendanceService) requireEmployee(ctx context.Context, employeeID string) error {
	exists, err := s.employees.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !exists {
		return employeeNotFound(employeeID)
	}
	return nil
}
