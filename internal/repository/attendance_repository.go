package repository

import (
	"context"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/persistence"
)

// AttendanceRepository stores daily attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *domain.Attendance) error
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error)
}

type attendanceRepository struct {
	db *persistence.Postgres
}

// NewAttendanceRepository builds repository.
func NewAttendanceRepository(db *persistence.Postgres) AttendanceRepository {
	return &attendanceRepository{db: db}
}

// Create inserts a record. A second record for the same employee and day
// fails with ErrDuplicate; an unknown employee fails with ErrMissingReference.
func (r *attendanceRepository) Create(ctx context.Context, rec *domain.Attendance) error {
	const query = `
        INSERT INTO attendance (id, employee_id, date, status)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at`
	err := r.db.Querier(ctx).QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.Status,
	).Scan(&rec.CreatedAt)
	return translate(err)
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error) {
	const query = `
        SELECT id, employee_id, date, status, created_at
        FROM attendance WHERE employee_id=$1
        ORDER BY date DESC, created_at DESC`
	rows, err := r.db.Querier(ctx).Query(ctx, query, employeeID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Attendance{}
	for rows.Next() {
		var rec domain.Attendance
		if err := rows.Scan(
			&rec.ID,
			&rec.EmployeeID,
			&rec.Date,
			&rec.Status,
			&rec.CreatedAt,
		); err != nil {
			return nil, translate(err)
		}
		result = append(result, rec)
	}
	return result, translate(rows.Err())
}
