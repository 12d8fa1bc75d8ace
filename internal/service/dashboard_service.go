package service

import (
	"context"
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/repository"
)

// RecentAttendanceLimit caps the recent activity list.
const RecentAttendanceLimit = 5

// DashboardService composes the overview statistics.
type DashboardService struct {
	stats repository.DashboardRepository
	tx    Transactor
	now   func() time.Time
}

// NewDashboardService constructs the service. now defaults to time.Now.
func NewDashboardService(stats repository.DashboardRepository, tx Transactor, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{stats: stats, tx: tx, now: now}
}

// Stats runs each aggregate as its own statement. Under concurrent writes the
// numbers are not guaranteed to be mutually consistent.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	today := domain.DateOf(s.now())
	stats := &domain.DashboardStats{}

	err := s.tx.WithinReadOnlyTx(ctx, func(ctx context.Context) error {
		var err error
		if stats.TotalEmployees, err = s.stats.CountEmployees(ctx); err != nil {
			return err
		}
		if stats.PresentToday, err = s.stats.CountAttendance(ctx, today, domain.AttendancePresent); err != nil {
			return err
		}
		if stats.AbsentToday, err = s.stats.CountAttendance(ctx, today, domain.AttendanceAbsent); err != nil {
			return err
		}
		if stats.ActiveDepartments, err = s.stats.CountDepartments(ctx); err != nil {
			return err
		}
		stats.RecentAttendance, err = s.stats.RecentAttendance(ctx, RecentAttendanceLimit)
		return err
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	if stats.RecentAttendance == nil {
		stats.RecentAttendance = []domain.RecentAttendance{}
	}
	return stats, nil
}
