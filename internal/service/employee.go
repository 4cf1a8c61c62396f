package service

import (
	"context"

	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/mykafka"
	"github.com/Skotchmaster/employee_registry/internal/transport"
)

type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	SearchEmployees(ctx context.Context, query string) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id string) (*models.Employee, error)
	CreateEmployee(ctx context.Context, emp *models.Employee) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id string, next *models.Employee) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}

type EmployeeService struct {
	Repo   EmployeeStore
	Events *Notifier
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.Repo.ListEmployees(ctx)
}

func (s *EmployeeService) Search(ctx context.Context, query string) ([]models.Employee, error) {
	return s.Repo.SearchEmployees(ctx, query)
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*models.Employee, error) {
	return s.Repo.GetEmployee(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, req transport.EmployeeRequest) (*models.Employee, error) {
	emp, err := ValidateEmployee(req)
	if err != nil {
		return nil, err
	}
	created, err := s.Repo.CreateEmployee(ctx, emp)
	if err != nil {
		return nil, err
	}

	s.Events.Publish(ctx, mykafka.TopicEmployeeEvents, created.ID, map[string]any{
		"type":       "employee_created",
		"employeeID": created.ID,
		"email":      created.Email,
	})
	return created, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, req transport.EmployeeRequest) (*models.Employee, error) {
	next, err := ValidateEmployee(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.Repo.UpdateEmployee(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.Events.Publish(ctx, mykafka.TopicEmployeeEvents, updated.ID, map[string]any{
		"type":       "employee_updated",
		"employeeID": updated.ID,
		"email":      updated.Email,
	})
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	s.Events.Publish(ctx, mykafka.TopicEmployeeEvents, id, map[string]any{
		"type":       "employee_deleted",
		"employeeID": id,
	})
	return nil
}
