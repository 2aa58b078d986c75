package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/internal/domain/repository"
	"github.com/robomation/roboquote-api/pkg/apperror"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	activity     *ActivityService
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository, activity *ActivityService) *CustomerService {
	return &CustomerService{customerRepo: customerRepo, activity: activity}
}

// CustomerInput represents the input for creating or updating a customer
type CustomerInput struct {
	Name        string
	CompanyName string
	Email       string
	Phone       string
	Address     string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, teamID uuid.UUID, userID *uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		TeamID:      teamID,
		Name:        input.Name,
		CompanyName: input.CompanyName,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, teamID, userID, "customer", &customer.ID, "create",
		fmt.Sprintf("Customer %q created", customer.Name))
	return customer, nil
}

// GetCustomer returns a single customer
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers returns the team's customers, optionally filtered by search
func (s *CustomerService) ListCustomers(ctx context.Context, teamID uuid.UUID, search string) ([]entity.Customer, error) {
	return s.customerRepo.List(ctx, teamID, search)
}

// UpdateCustomer updates an existing customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, userID *uuid.UUID, input *CustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	customer.CompanyName = input.CompanyName
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address = input.Address

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, customer.TeamID, userID, "customer", &customer.ID, "update",
		fmt.Sprintf("Customer %q updated", customer.Name))
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID, userID *uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(ctx, customer.TeamID, userID, "customer", &id, "delete",
		fmt.Sprintf("Customer %q deleted", customer.Name))
	return nil
}
