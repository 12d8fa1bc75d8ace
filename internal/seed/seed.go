package seed

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// EmployeeRegistry is the part of the registry the seeder needs.
type EmployeeRegistry interface {
	Create(ctx context.Context, input service.EmployeeCreateInput) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
}

// AttendanceMarker records attendance.
type AttendanceMarker interface {
	Mark(ctx context.Context, input service.AttendanceMarkInput) (*domain.Attendance, error)
}

// Roster is the fixed demo staff.
var Roster = []service.EmployeeCreateInput{
	{FullName: "Alice Johnson", Email: "alice.j@example.com", Department: "Engineering"},
	{FullName: "Bob Smith", Email: "bob.s@example.com", Department: "Sales"},
	{FullName: "Charlie Brown", Email: "charlie.b@example.com", Department: "Engineering"},
	{FullName: "Diana Prince", Email: "diana.p@example.com", Department: "Marketing"},
	{FullName: "Edward Norton", Email: "edward.n@example.com", Department: "Product"},
	{FullName: "Fiona Gallagher", Email: "fiona.g@example.com", Department: "Human Resources"},
	{FullName: "George Miller", Email: "george.m@example.com", Department: "Engineering"},
	{FullName: "Hannah Abbott", Email: "hannah.a@example.com", Department: "Sales"},
	{FullName: "Ian Wright", Email: "ian.w@example.com", Department: "Marketing"},
	{FullName: "Jenny Slate", Email: "jenny.s@example.com", Department: "Product"},
}

// Plan bounds one seeding run. From and To are inclusive calendar days.
type Plan struct {
	From         time.Time
	To           time.Time
	PresentRatio float64
	Rand         *rand.Rand
}

// Result counts what a run did.
type Result struct {
	EmployeesCreated int
	EmployeesReused  int
	Marked           int
	AlreadyMarked    int
}

// ErrInvalidPlan is returned for an empty or inverted date range.
var ErrInvalidPlan = errors.New("invalid seed plan")

// Run ensures every roster member exists, then marks weekday attendance for
// each of them. Days that are already marked are left untouched.
func Run(ctx context.Context, employees EmployeeRegistry, attendance AttendanceMarker, plan Plan, logger *zap.Logger) (Result, error) {
	var res Result
	from, to := domain.DateOf(plan.From), domain.DateOf(plan.To)
	if from.After(to) {
		return res, ErrInvalidPlan
	}
	rng := plan.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	ids, err := ensureRoster(ctx, employees, &res, logger)
	if err != nil {
		return res, err
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if !IsWorkday(day) {
			continue
		}
		for _, id := range ids {
			status := domain.AttendanceAbsent
			if rng.Float64() < plan.PresentRatio {
				status = domain.AttendancePresent
			}
			_, err := attendance.Mark(ctx, service.AttendanceMarkInput{EmployeeID: id, Date: day, Status: status})
			switch {
			case err == nil:
				res.Marked++
			case apperrors.IsKind(err, apperrors.KindConflict):
				res.AlreadyMarked++
			default:
				return res, err
			}
		}
	}

	logger.Info("seed complete",
		zap.Int("employees_created", res.EmployeesCreated),
		zap.Int("employees_reused", res.EmployeesReused),
		zap.Int("marked", res.Marked),
		zap.Int("already_marked", res.AlreadyMarked))
	return res, nil
}

// IsWorkday reports whether day falls Monday to Friday.
func IsWorkday(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func ensureRoster(ctx context.Context, employees EmployeeRegistry, res *Result, logger *zap.Logger) ([]string, error) {
	existing, err := employees.List(ctx)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]string, len(existing))
	for _, emp := range existing {
		byEmail[emp.Email] = emp.EmployeeID
	}

	ids := make([]string, 0, len(Roster))
	for _, member := range Roster {
		if id, ok := byEmail[member.Email]; ok {
			res.EmployeesReused++
			ids = append(ids, id)
			continue
		}
		input := member
		input.ID = service.AutoEmployeeID()
		emp, err := employees.Create(ctx, input)
		if err != nil {
			return nil, err
		}
		logger.Info("employee seeded", zap.String("employee_id", emp.EmployeeID), zap.String("name", emp.FullName))
		res.EmployeesCreated++
		ids = append(ids, emp.EmployeeID)
	}
	return ids, nil
}
