package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/events"
	"github.com/spec-kit/hrms-service/internal/repository"
	"github.com/spec-kit/hrms-service/internal/repository/memory"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

func newEmployeeInput(spec EmployeeIDSpec, name string) EmployeeCreateInput {
	return EmployeeCreateInput{
		ID:         spec,
		FullName:   name,
		Email:      "person@example.com",
		Department: "Engineering",
	}
}

func TestFormatGeneratedID(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{1, "EMP001"},
		{8, "EMP008"},
		{42, "EMP042"},
		{999, "EMP999"},
		{1000, "EMP1000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGeneratedID(tt.n))
	}
}

func TestEmployeeService_CreateGeneratesFirstID(t *testing.T) {
	f := newFixture(time.Now())

	emp, err := f.employees.Create(context.Background(), newEmployeeInput(AutoEmployeeID(), "John Doe"))
	require.NoError(t, err)

	assert.Equal(t, "EMP001", emp.EmployeeID)
	assert.NotEmpty(t, emp.ID)
	assert.False(t, emp.CreatedAt.IsZero())
	assert.Equal(t, 1, f.tx.Writes)
}

func TestEmployeeService_CreateGeneratesAfterHighestSequence(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	for _, id := range []string{"EMP007", "EMP003", "EMPX", "CUSTOM99"} {
		_, err := f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID(id), "Seed "+id))
		require.NoError(t, err)
	}

	emp, err := f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), "Next"))
	require.NoError(t, err)
	assert.Equal(t, "EMP008", emp.EmployeeID)
}

func TestEmployeeService_CreateTrimsFields(t *testing.T) {
	f := newFixture(time.Now())

	emp, err := f.employees.Create(context.Background(), EmployeeCreateInput{
		ID:         ExplicitEmployeeID("E-1"),
		FullName:   "  Jane Smith ",
		Email:      " jane@example.com",
		Department: "Sales  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Smith", emp.FullName)
	assert.Equal(t, "jane@example.com", emp.Email)
	assert.Equal(t, "Sales", emp.Department)
}

func TestEmployeeService_CreateTrimsExplicitID(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	emp, err := f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("  HR-7 "), "Padded"))
	require.NoError(t, err)
	assert.Equal(t, "HR-7", emp.EmployeeID)

	got, err := f.employees.Get(ctx, "HR-7")
	require.NoError(t, err)
	assert.Equal(t, "Padded", got.FullName)

	_, err = f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("HR-7\t"), "Again"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestEmployeeService_CreateDuplicateExplicitID(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	_, err := f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("EMP001"), "First"))
	require.NoError(t, err)

	_, err = f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("EMP001"), "Second"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, "Employee ID EMP001 already exists", apperrors.ToDomainError(err).Message)

	list, err := f.employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "First", list[0].FullName)
}

func TestEmployeeService_CreateExplicitCollidesWithGenerated(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	emp, err := f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), "Generated"))
	require.NoError(t, err)
	require.Equal(t, "EMP001", emp.EmployeeID)

	_, err = f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("EMP001"), "Explicit"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestEmployeeService_CreateInsertRaceIsConflict(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	_, err := f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), "Winner"))
	require.NoError(t, err)

	// The scan ran before the winner committed.
	stale := int64(0)
	f.store.StaleMax = &stale

	_, err = f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), "Loser"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	f.store.StaleMax = nil
	list, err := f.employees.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmployeeService_CreateConcurrentExplicitSameID(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("EMP500"), "Racer"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case apperrors.IsKind(err, apperrors.KindConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	f := newFixture(time.Now())

	_, err := f.employees.Create(context.Background(), EmployeeCreateInput{
		ID:       ExplicitEmployeeID("   "),
		FullName: "",
	})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.KindValidation, domainErr.Kind)
	assert.Contains(t, domainErr.Details, "employeeId")
	assert.Contains(t, domainErr.Details, "fullName")
	assert.Contains(t, domainErr.Details, "email")
	assert.Contains(t, domainErr.Details, "department")
	assert.Zero(t, f.tx.Writes)
}

func TestEmployeeService_CreateStoreUnavailable(t *testing.T) {
	f := newFixture(time.Now())
	f.store.FailWith = repository.ErrUnavailable

	_, err := f.employees.Create(context.Background(), newEmployeeInput(AutoEmployeeID(), "John"))
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnavailable))
	assert.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestEmployeeService_CreateUnexpectedStoreErrorIsInternal(t *testing.T) {
	f := newFixture(time.Now())
	f.store.FailWith = errors.New("syntax error at or near SELECT")

	_, err := f.employees.Create(context.Background(), newEmployeeInput(AutoEmployeeID(), "John"))
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

func TestEmployeeService_CreatePublishesEvent(t *testing.T) {
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewEmployeeService(EmployeeDependencies{
		EmployeeRepo: memory.NewEmployeeRepository(store),
		Tx:           &memory.Tx{},
		Dispatcher:   dispatcher,
	})

	var got []events.Event
	dispatcher.Subscribe(events.EventEmployeeCreated, func(_ context.Context, e events.Event) error {
		got = append(got, e)
		return errors.New("subscriber failure is logged, not returned")
	})

	emp, err := svc.Create(context.Background(), newEmployeeInput(AutoEmployeeID(), "John"))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, emp.EmployeeID, got[0].EmployeeID)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, events.EmployeeCreatedPayload{Department: "Engineering", AutoAssigned: true}, got[0].Payload)
}

func TestEmployeeService_ListInCreationOrderWithCounts(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Carol"} {
		_, err := f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), name))
		require.NoError(t, err)
	}
	_, err := f.attendance.Mark(ctx, AttendanceMarkInput{EmployeeID: "EMP002", Date: day("2026-02-02"), Status: domain.AttendancePresent})
	require.NoError(t, err)
	_, err = f.attendance.Mark(ctx, AttendanceMarkInput{EmployeeID: "EMP002", Date: day("2026-02-03"), Status: domain.AttendanceAbsent})
	require.NoError(t, err)

	list, err := f.employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, []string{"EMP001", "EMP002", "EMP003"}, []string{list[0].EmployeeID, list[1].EmployeeID, list[2].EmployeeID})
	assert.Equal(t, int64(0), list[0].PresentCount)
	assert.Equal(t, int64(1), list[1].PresentCount)
}

func TestEmployeeService_ListEmpty(t *testing.T) {
	f := newFixture(time.Now())

	list, err := f.employees.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEmployeeService_GetNotFound(t *testing.T) {
	f := newFixture(time.Now())

	_, err := f.employees.Get(context.Background(), "EMP404")
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.KindNotFound, domainErr.Kind)
	assert.Equal(t, "Employee with ID EMP404 not found", domainErr.Message)
	assert.Equal(t, "EMP404", domainErr.Details["employeeId"])
}

func TestEmployeeService_DeleteCascadesAttendance(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	_, err := f.employees.Create(ctx, newEmployeeInput(AutoEmployeeID(), "John"))
	require.NoError(t, err)
	for _, d := range []string{"2026-02-02", "2026-02-03"} {
		_, err = f.attendance.Mark(ctx, AttendanceMarkInput{EmployeeID: "EMP001", Date: day(d), Status: domain.AttendancePresent})
		require.NoError(t, err)
	}

	deleted, err := f.employees.Delete(ctx, "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Employee deleted successfully", deleted.Message)
	assert.Equal(t, "EMP001", deleted.EmployeeID)
	assert.Zero(t, f.store.AttendanceCount("EMP001"))

	_, err = f.attendance.ListByEmployee(ctx, "EMP001")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = f.employees.Get(ctx, "EMP001")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestEmployeeService_DeleteNotFound(t *testing.T) {
	f := newFixture(time.Now())

	_, err := f.employees.Delete(context.Background(), "EMP999")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestEmployeeService_DeleteThenRecreateSameID(t *testing.T) {
	f := newFixture(time.Now())
	ctx := context.Background()

	_, err := f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("EMP010"), "Before"))
	require.NoError(t, err)
	_, err = f.employees.Delete(ctx, "EMP010")
	require.NoError(t, err)

	emp, err := f.employees.Create(ctx, newEmployeeInput(ExplicitEmployeeID("EMP010"), "After"))
	require.NoError(t, err)
	assert.Equal(t, "After", emp.FullName)
}
