package repository

import (
	"context"

	"employeemanagement/models"
)

// EmployeeRepository defines the persistence contract for employee records.
// Lookups return (nil, nil) when the record does not exist; Update and Delete
// report whether a record was affected.
type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]*models.Employee, error)
	CreateEmployee(ctx context.Context, e *models.Employee) error
	GetEmployeeByID(ctx context.Context, id int64) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, e *models.Employee) (bool, error)
	DeleteEmployee(ctx context.Context, id int64) (bool, error)
}
