package services

import (
	"context"
	"fmt"

	"employeemanagement/models"
	"employeemanagement/repository"

	"github.com/go-playground/validator/v10"
)

// EmployeeService owns the employee record rules on top of any repository.
// Writes to one id are serialized; reads are not.
type EmployeeService struct {
	repo     repository.EmployeeRepository
	validate *validator.Validate
	locks    *keyedMutex
}

func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		locks:    newKeyedMutex(),
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	list, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	if list == nil {
		list = []*models.Employee{}
	}
	return list, nil
}

// Insert stores e under a new id. Any id on the input is ignored.
func (s *EmployeeService) Insert(ctx context.Context, e models.Employee) (*models.Employee, error) {
	e.ID = 0
	if err := s.validate.Struct(&e); err != nil {
		return nil, newValidationError(err)
	}
	if err := s.repo.CreateEmployee(ctx, &e); err != nil {
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return &e, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	e, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee %d: %w", id, err)
	}
	if e == nil {
		return nil, &NotFoundError{ID: id}
	}
	return e, nil
}

// Update applies the non-nil fields of patch to the stored employee.
func (s *EmployeeService) Update(ctx context.Context, id int64, patch models.EmployeeUpdate) (*models.Employee, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.ApplyTo(e)
	if err := s.validate.Struct(e); err != nil {
		return nil, newValidationError(err)
	}

	ok, err := s.repo.UpdateEmployee(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("update employee %d: %w", id, err)
	}
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	ok, err := s.repo.DeleteEmployee(ctx, id)
	if err != nil {
		return fmt.Errorf("delete employee %d: %w", id, err)
	}
	if !ok {
		return &NotFoundError{ID: id}
	}
	return nil
}
