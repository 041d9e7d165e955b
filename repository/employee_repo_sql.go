package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"employeemanagement/models"
)

// SQLEmployeeRepo serves both Postgres (lib/pq) and SQLite (go-sqlite3):
// the two dialects share $N placeholders and RETURNING.
type SQLEmployeeRepo struct {
	DB *sql.DB
}

func NewSQLEmployeeRepo(db *sql.DB) *SQLEmployeeRepo {
	return &SQLEmployeeRepo{DB: db}
}

// ListEmployees returns every employee ordered by id.
func (r *SQLEmployeeRepo) ListEmployees(ctx context.Context) ([]*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, email, age, department, salary
		FROM employee_details
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Employee{}
	for rows.Next() {
		e := &models.Employee{}
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Age, &e.Department, &e.Salary); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEmployee inserts e and stores the generated id back into it.
func (r *SQLEmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO employee_details (name, email, age, department, salary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.Name, e.Email, e.Age, e.Department, e.Salary).Scan(&e.ID)
}

func (r *SQLEmployeeRepo) GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	e := &models.Employee{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, age, department, salary
		FROM employee_details
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Email, &e.Age, &e.Department, &e.Salary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// UpdateEmployee overwrites every mutable column in a single statement.
func (r *SQLEmployeeRepo) UpdateEmployee(ctx context.Context, e *models.Employee) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `
		UPDATE employee_details
		SET name = $1, email = $2, age = $3, department = $4, salary = $5
		WHERE id = $6
	`, e.Name, e.Email, e.Age, e.Department, e.Salary, e.ID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLEmployeeRepo) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM employee_details WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ EmployeeRepository = (*SQLEmployeeRepo)(nil)
