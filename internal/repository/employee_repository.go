package repository

import (
	"context"

	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/persistence"
)

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
	MaxSequence(ctx context.Context, prefix string) (int64, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Delete(ctx context.Context, employeeID string) error
}

type employeeRepository struct {
	db *persistence.Postgres
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(db *persistence.Postgres) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeWithPresentCount = `
        SELECT e.id, e.employee_id, e.full_name, e.email, e.department, e.created_at,
               COUNT(a.id) FILTER (WHERE a.status = 'Present') AS present_count
        FROM employees e
        LEFT JOIN attendance a ON a.employee_id = e.employee_id`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (id, employee_id, full_name, email, department)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		emp.ID,
		emp.EmployeeID,
		emp.FullName,
		emp.Email,
		emp.Department,
	).Scan(&emp.CreatedAt)
	return translate(err)
}

func (r *employeeRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM employees WHERE employee_id=$1)`
	var exists bool
	if err := r.db.Querier(ctx).QueryRow(ctx, query, employeeID).Scan(&exists); err != nil {
		return false, translate(err)
	}
	return exists, nil
}

// MaxSequence returns the largest numeric suffix among identifiers made of
// prefix followed only by digits, or 0 when there are none.
func (r *employeeRepository) MaxSequence(ctx context.Context, prefix string) (int64, error) {
	const query = `
        SELECT COALESCE(MAX(SUBSTRING(employee_id FROM char_length($1::text) + 1)::BIGINT), 0)
        FROM employees
        WHERE employee_id ~ ('^' || $1::text || '[0-9]{1,18}$')`
	var highest int64
	if err := r.db.Querier(ctx).QueryRow(ctx, query, prefix).Scan(&highest); err != nil {
		return 0, translate(err)
	}
	return highest, nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := employeeWithPresentCount + `
        WHERE e.employee_id=$1
        GROUP BY e.id`

	var emp domain.Employee
	if err := r.db.Querier(ctx).QueryRow(ctx, query, employeeID).Scan(
		&emp.ID,
		&emp.EmployeeID,
		&emp.FullName,
		&emp.Email,
		&emp.Department,
		&emp.CreatedAt,
		&emp.PresentCount,
	); err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

// List returns every employee ordered by creation time, then employee ID.
func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := employeeWithPresentCount + `
        GROUP BY e.id
        ORDER BY e.created_at ASC, e.employee_id ASC`

	rows, err := r.db.Querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(
			&emp.ID,
			&emp.EmployeeID,
			&emp.FullName,
			&emp.Email,
			&emp.Department,
			&emp.CreatedAt,
			&emp.PresentCount,
		); err != nil {
			return nil, translate(err)
		}
		result = append(result, emp)
	}
	return result, translate(rows.Err())
}

// Delete removes the employee; attendance rows go with it via ON DELETE CASCADE.
func (r *employeeRepository) Delete(ctx context.Context, employeeID string) error {
	const query = `DELETE FROM employees WHERE employee_id=$1`
	cmd, err := r.db.Querier(ctx).Exec(ctx, query, employeeID)
	if err != nil {
		return translate(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
