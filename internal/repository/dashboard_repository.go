package repository

import (
	"context"
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/persistence"
)

// DashboardRepository runs the read-only aggregate queries.
type DashboardRepository interface {
	CountEmployees(ctx context.Context) (int64, error)
	CountAttendance(ctx context.Context, day time.Time, status domain.AttendanceStatus) (int64, error)
	CountDepartments(ctx context.Context) (int64, error)
	RecentAttendance(ctx context.Context, limit int) ([]domain.RecentAttendance, error)
}

type dashboardRepository struct {
	db *persistence.Postgres
}

// NewDashboardRepository builds repository.
func NewDashboardRepository(db *persistence.Postgres) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CountEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees`)
}

func (r *dashboardRepository) CountAttendance(ctx context.Context, day time.Time, status domain.AttendanceStatus) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM attendance WHERE date=$1 AND status=$2`, day, status)
}

func (r *dashboardRepository) CountDepartments(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(DISTINCT department) FROM employees`)
}

func (r *dashboardRepository) RecentAttendance(ctx context.Context, limit int) ([]domain.RecentAttendance, error) {
	const query = `
        SELECT a.id, a.employee_id, a.date, a.status, a.created_at, e.full_name, e.department
        FROM attendance a
        JOIN employees e ON e.employee_id = a.employee_id
        ORDER BY a.date DESC, a.created_at DESC
        LIMIT $1`
	rows, err := r.db.Querier(ctx).Query(ctx, query, limit)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.RecentAttendance{}
	for rows.Next() {
		var rec domain.RecentAttendance
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.Status,
			&rec.CreatedAt,
			&rec.EmployeeName,
			&rec.Department,
		); err != nil {
			return nil, translate(err)
		}
		result = append(result, rec)
	}
	return result, translate(rows.Err())
}

func (r *dashboardRepository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.db.Querier(ctx).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, translate(err)
	}
	return n, nil
}
