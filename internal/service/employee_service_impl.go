package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rvalverdem/takt/internal/domain"
	"github.com/rvalverdem/takt/internal/repository"
)

type employeeService struct {
	employees repository.EmployeeRepo
}

func NewEmployeeService(employees repository.EmployeeRepo) EmployeeService {
	return &employeeService{employees: employees}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	if e.Name == "" {
		return fmt.Errorf("employee name is required")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.Active = true
	e.CreatedAt = time.Now().UTC()
	return s.employees.Create(ctx, e)
}

func (s *employeeService) List(ctx context.Context, activeOnly bool) ([]*domain.Employee, error) {
	return s.employees.List(ctx, activeOnly)
}
