package service

import (
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository/memory"
)

type fixture struct {
	store      *memory.Store
	tx         *memory.Tx
	employees  *EmployeeService
	attendance *AttendanceService
	dashboard  *DashboardService
}

func newFixture(now time.Time) *fixture {
	store := memory.NewStore()
	tx := &memory.Tx{}
	empRepo := memory.NewEmployeeRepository(store)
	return &fixture{
		store: store,
		tx:    tx,
		employees: NewEmployeeService(EmployeeDependencies{
			EmployeeRepo: empRepo,
			Tx:           tx,
		}),
		attendance: NewAttendanceService(AttendanceDependencies{
			EmployeeRepo:   empRepo,
			AttendanceRepo: memory.NewAttendanceRepository(store),
			Tx:             tx,
		}),
		dashboard: NewDashboardService(memory.NewDashboardRepository(store), tx, func() time.Time { return now }),
	}
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
