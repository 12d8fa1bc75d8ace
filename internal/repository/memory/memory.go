// Package memory holds map-backed repositories that enforce the same unique
// and foreign-key rules as the Postgres schema. Tests use it in place of a
// database.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

// Store is shared by the repositories. Unique employee_id, unique
// (employee_id, date) and attendance → employee with cascade are enforced.
type Store struct {
	mu         sync.Mutex
	employees  []domain.Employee
	attendance []domain.Attendance
	clock      time.Time

	// FailWith, when set, is returned by every repository call.
	FailWith error
	// StaleMax, when set, is returned by MaxSequence instead of the real value,
	// as if a concurrent create committed after the scan.
	StaleMax *int64
}

// NewStore returns an empty store whose created_at clock starts at a fixed instant.
func NewStore() *Store {
	return &Store{clock: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
}

// AttendanceCount counts the stored records of one employee.
func (s *Store) AttendanceCount(employeeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.attendance {
		if rec.EmployeeID == employeeID {
			n++
		}
	}
	return n
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) findEmployee(employeeID string) int {
	for i := range s.employees {
		if s.employees[i].EmployeeID == employeeID {
			return i
		}
	}
	return -1
}

func (s *Store) presentCount(employeeID string) int64 {
	var n int64
	for _, rec := range s.attendance {
		if rec.EmployeeID == employeeID && rec.Status == domain.AttendancePresent {
			n++
		}
	}
	return n
}

// ── Employees ──

type employeeRepository struct{ s *Store }

// NewEmployeeRepository returns a repository over s.
func NewEmployeeRepository(s *Store) repository.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) Create(_ context.Context, emp *domain.Employee) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if s.findEmployee(emp.EmployeeID) >= 0 {
		return repository.ErrDuplicate
	}
	emp.CreatedAt = s.tick()
	s.employees = append(s.employees, *emp)
	return nil
}

func (r *employeeRepository) ExistsByEmployeeID(_ context.Context, employeeID string) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return false, s.FailWith
	}
	return s.findEmployee(employeeID) >= 0, nil
}

func (r *employeeRepository) MaxSequence(_ context.Context, prefix string) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	if s.StaleMax != nil {
		return *s.StaleMax, nil
	}
	var highest int64
	for _, emp := range s.employees {
		suffix, ok := strings.CutPrefix(emp.EmployeeID, prefix)
		if !ok || suffix == "" || len(suffix) > 18 || strings.Trim(suffix, "0123456789") != "" {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err == nil && n > highest {
			highest = n
		}
	}
	return highest, nil
}

func (r *employeeRepository) GetByEmployeeID(_ context.Context, employeeID string) (*domain.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	i := s.findEmployee(employeeID)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	emp := s.employees[i]
	emp.PresentCount = s.presentCount(employeeID)
	return &emp, nil
}

func (r *employeeRepository) List(_ context.Context) ([]domain.Employee, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	result := []domain.Employee{}
	for _, emp := range s.employees {
		emp.PresentCount = s.presentCount(emp.EmployeeID)
		result = append(result, emp)
	}
	return result, nil
}

func (r *employeeRepository) Delete(_ context.Context, employeeID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	i := s.findEmployee(employeeID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.employees = append(s.employees[:i], s.employees[i+1:]...)

	kept := s.attendance[:0]
	for _, rec := range s.attendance {
		if rec.EmployeeID != employeeID {
			kept = append(kept, rec)
		}
	}
	s.attendance = kept
	return nil
}

// ── Attendance ──

type attendanceRepository struct{ s *Store }

// NewAttendanceRepository returns a repository over s.
func NewAttendanceRepository(s *Store) repository.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) Create(_ context.Context, rec *domain.Attendance) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	if s.findEmployee(rec.EmployeeID) < 0 {
		return repository.ErrMissingReference
	}
	for _, existing := range s.attendance {
		if existing.EmployeeID == rec.EmployeeID && existing.Date.Equal(rec.Date) {
			return repository.ErrDuplicate
		}
	}
	rec.CreatedAt = s.tick()
	s.attendance = append(s.attendance, *rec)
	return nil
}

func (r *attendanceRepository) ListByEmployee(_ context.Context, employeeID string) ([]domain.Attendance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	result := []domain.Attendance{}
	for _, rec := range s.attendance {
		if rec.EmployeeID == employeeID {
			result = append(result, rec)
		}
	}
	sortNewestFirst(result, func(i int) domain.Attendance { return result[i] })
	return result, nil
}

// ── Dashboard ──

type dashboardRepository struct{ s *Store }

// NewDashboardRepository returns a repository over s.
func NewDashboardRepository(s *Store) repository.DashboardRepository {
	return &dashboardRepository{s: s}
}

func (r *dashboardRepository) CountEmployees(_ context.Context) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	return int64(len(s.employees)), nil
}

func (r *dashboardRepository) CountAttendance(_ context.Context, day time.Time, status domain.AttendanceStatus) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	var n int64
	for _, rec := range s.attendance {
		if rec.Date.Equal(day) && rec.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *dashboardRepository) CountDepartments(_ context.Context) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	seen := map[string]struct{}{}
	for _, emp := range s.employees {
		seen[emp.Department] = struct{}{}
	}
	return int64(len(seen)), nil
}

func (r *dashboardRepository) RecentAttendance(_ context.Context, limit int) ([]domain.RecentAttendance, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}
	result := []domain.RecentAttendance{}
	for _, rec := range s.attendance {
		emp := s.employees[s.findEmployee(rec.EmployeeID)]
		result = append(result, domain.RecentAttendance{
			Attendance:   rec,
			EmployeeName: emp.FullName,
			Department:   emp.Department,
		})
	}
	sortNewestFirst(result, func(i int) domain.Attendance { return result[i].Attendance })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func sortNewestFirst[T any](items []T, at func(i int) domain.Attendance) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := at(i), at(j)
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

// ── Transactions ──

// Tx runs units of work directly and counts them.
type Tx struct {
	mu sync.Mutex
	// Writes and Reads count WithinTx and WithinReadOnlyTx calls.
	Writes int
	Reads  int
	// FailBegin, when set, is returned instead of running the unit of work.
	FailBegin error
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Writes++
	t.mu.Unlock()
	if t.FailBegin != nil {
		return t.FailBegin
	}
	return fn(ctx)
}

func (t *Tx) WithinReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	t.Reads++
	t.mu.Unlock()
	if t.FailBegin != nil {
		return t.FailBegin
	}
	return fn(ctx)
}
