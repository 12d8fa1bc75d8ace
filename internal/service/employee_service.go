package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/repository"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// GeneratedIDPrefix prefixes server-assigned employee identifiers.
const GeneratedIDPrefix = "EMP"

// EmployeeIDSpec says how the identifier of a new employee is chosen: either
// supplied by the caller or generated by the registry.
type EmployeeIDSpec struct {
	explicit string
	auto     bool
}

// ExplicitEmployeeID uses id verbatim.
func ExplicitEmployeeID(id string) EmployeeIDSpec {
	return EmployeeIDSpec{explicit: id}
}

// AutoEmployeeID asks the registry for the next EMP### identifier.
func AutoEmployeeID() EmployeeIDSpec {
	return EmployeeIDSpec{auto: true}
}

// IsAuto reports whether the identifier is generated.
func (s EmployeeIDSpec) IsAuto() bool {
	return s.auto
}

// Explicit returns the caller-supplied identifier.
func (s EmployeeIDSpec) Explicit() string {
	return s.explicit
}

// FormatGeneratedID renders sequence n as EMP001, EMP002, ... EMP1000.
func FormatGeneratedID(n int64) string {
	return fmt.Sprintf("%s%03d", GeneratedIDPrefix, n)
}

// EmployeeCreateInput describes employee creation payload.
type EmployeeCreateInput struct {
	ID         EmployeeIDSpec
	FullName   string
	Email      string
	Department string
}

// DeletedEmployee confirms a deletion.
type DeletedEmployee struct {
	Message    string
	EmployeeID string
}

// EmployeeDependencies bundles collaborators for the registry.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	Tx           Transactor
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// EmployeeService is the employee registry.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	tx         Transactor
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		tx:         deps.Tx,
		dispatcher: deps.Dispatcher,
		logger:     loggerOrNop(deps.Logger),
	}
}

// Create registers a new employee. Identifier collisions, whether caught by
// the existence check or by the unique constraint on insert, are Conflicts.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeCreateInput) (*domain.Employee, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		ID:         uuid.NewString(),
		FullName:   strings.TrimSpace(input.FullName),
		Email:      strings.TrimSpace(input.Email),
		Department: strings.TrimSpace(input.Department),
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		employeeID, err := s.resolveEmployeeID(ctx, input.ID)
		if err != nil {
			return err
		}
		emp.EmployeeID = employeeID

		if err := s.employees.Create(ctx, emp); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return duplicateEmployee(employeeID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.logger.Info("employee created", zap.String("employee_id", emp.EmployeeID))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventEmployeeCreated,
		EmployeeID: emp.EmployeeID,
		Payload: events.EmployeeCreatedPayload{
			Department:   emp.Department,
			AutoAssigned: input.ID.IsAuto(),
		},
	})
	return emp, nil
}

// List returns all employees with their present-day counts.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	var list []domain.Employee
	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		list, err = s.employees.List(ctx)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return list, nil
}

// Get fetches one employee with its present-day count.
func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var emp *domain.Employee
	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		emp, err = s.employees.GetByEmployeeID(ctx, employeeID)
		if errors.Is(err, repository.ErrNotFound) {
			return employeeNotFound(employeeID)
		}
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	return emp, nil
}

// Delete removes an employee and, through the foreign key, their attendance.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) (*DeletedEmployee, error) {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		err := s.employees.Delete(ctx, employeeID)
		if errors.Is(err, repository.ErrNotFound) {
			return employeeNotFound(employeeID)
		}
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.logger.Info("employee deleted", zap.String("employee_id", employeeID))
	publish(ctx, s.dispatcher, s.logger, events.Event{
		Type:       events.EventEmployeeDeleted,
		EmployeeID: employeeID,
	})
	return &DeletedEmployee{Message: "Employee deleted successfully", EmployeeID: employeeID}, nil
}

// resolveEmployeeID must run inside the creating transaction. The scan for
// the next generated identifier is not atomic with the insert; the unique
// constraint decides concurrent races. Explicit identifiers are stored trimmed.
func (s *EmployeeService) resolveEmployeeID(ctx context.Context, spec EmployeeIDSpec) (string, error) {
	if !spec.IsAuto() {
		id := strings.TrimSpace(spec.Explicit())
		exists, err := s.employees.ExistsByEmployeeID(ctx, id)
		if err != nil {
			return "", err
		}
		if exists {
			return "", duplicateEmployee(id)
		}
		return id, nil
	}

	highest, err := s.employees.MaxSequence(ctx, GeneratedIDPrefix)
	if err != nil {
		return "", err
	}
	return FormatGeneratedID(highest + 1), nil
}

func (in EmployeeCreateInput) validate() error {
	details := map[string]any{}
	if !in.ID.IsAuto() && strings.TrimSpace(in.ID.Explicit()) == "" {
		details["employeeId"] = "must not be empty"
	}
	if strings.TrimSpace(in.FullName) == "" {
		details["fullName"] = "is required"
	}
	if strings.TrimSpace(in.Email) == "" {
		details["email"] = "is required"
	}
	if strings.TrimSpace(in.Department) == "" {
		details["department"] = "is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid employee", details)
	}
	return nil
}

func duplicateEmployee(employeeID string) error {
	return apperrors.NewConflict(
		fmt.Sprintf("Employee ID %s already exists", employeeID),
		map[string]any{"employeeId": employeeID},
	)
}
