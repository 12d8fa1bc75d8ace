package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
	"github.com/spec-kit/hrms-service/internal/repository/memory"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

func TestDashboardService_EmptyStore(t *testing.T) {
	f := newFixture(time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC))

	stats, err := f.dashboard.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalEmployees)
	assert.Zero(t, stats.PresentToday)
	assert.Zero(t, stats.AbsentToday)
	assert.Zero(t, stats.ActiveDepartments)
	assert.NotNil(t, stats.RecentAttendance)
	assert.Empty(t, stats.RecentAttendance)
}

func TestDashboardService_Stats(t *testing.T) {
	f := newFixture(time.Date(2026, 2, 3, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()

	inputs := []EmployeeCreateInput{
		{ID: AutoEmployeeID(), FullName: "John Doe", Email: "john@example.com", Department: "Engineering"},
		{ID: AutoEmployeeID(), FullName: "Jane Smith", Email: "jane@example.com", Department: "Engineering"},
		{ID: AutoEmployeeID(), FullName: "Mike Johnson", Email: "mike@example.com", Department: "Sales"},
	}
	for _, in := range inputs {
		_, err := f.employees.Create(ctx, in)
		require.NoError(t, err)
	}

	marks := []AttendanceMarkInput{
		{EmployeeID: "EMP001", Date: day("2026-02-01"), Status: domain.AttendancePresent},
		{EmployeeID: "EMP001", Date: day("2026-02-02"), Status: domain.AttendancePresent},
		{EmployeeID: "EMP001", Date: day("2026-02-03"), Status: domain.AttendancePresent},
		{EmployeeID: "EMP002", Date: day("2026-02-03"), Status: domain.AttendanceAbsent},
		{EmployeeID: "EMP003", Date: day("2026-02-03"), Status: domain.AttendancePresent},
		{EmployeeID: "EMP002", Date: day("2026-02-02"), Status: domain.AttendancePresent},
	}
	for _, m := range marks {
		_, err := f.attendance.Mark(ctx, m)
		require.NoError(t, err)
	}

	stats, err := f.dashboard.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalEmployees)
	assert.Equal(t, int64(2), stats.PresentToday)
	assert.Equal(t, int64(1), stats.AbsentToday)
	assert.Equal(t, int64(2), stats.ActiveDepartments)

	require.Len(t, stats.RecentAttendance, RecentAttendanceLimit)
	first := stats.RecentAttendance[0]
	assert.Equal(t, "EMP003", first.EmployeeID)
	assert.Equal(t, "Mike Johnson", first.EmployeeName)
	assert.Equal(t, "Sales", first.Department)

	var order []string
	for _, r := range stats.RecentAttendance {
		order = append(order, r.EmployeeID+"@"+r.Date.Format(domain.DateLayout))
	}
	assert.Equal(t, []string{
		"EMP003@2026-02-03",
		"EMP002@2026-02-03",
		"EMP001@2026-02-03",
		"EMP002@2026-02-02",
		"EMP001@2026-02-02",
	}, order)
	assert.Equal(t, 1, f.tx.Reads)
}

func TestDashboardService_Unavailable(t *testing.T) {
	f := newFixture(time.Now())
	f.store.FailWith = repository.ErrUnavailable

	_, err := f.dashboard.Stats(context.Background())
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnavailable))
}

func TestNewDashboardServiceDefaultsClock(t *testing.T) {
	svc := NewDashboardService(memory.NewDashboardRepository(memory.NewStore()), &memory.Tx{}, nil)
	assert.NotNil(t, svc.now)
}
