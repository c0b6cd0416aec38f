package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/sergiuconi/casier-api/internal/domain/repository"
	"github.com/sergiuconi/casier-api/pkg/apperror"
	"github.com/sergiuconi/casier-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// ResolveCustomer resolves a register identifier to a cart customer.
// The identifier is a customer UUID or, failing that, a loyalty card
// swipe. A miss is (nil, nil): the register falls back to the walk-in
// customer without failing the sale.
func (s *CustomerService) ResolveCustomer(ctx context.Context, id string) (*cart.Customer, error) {
	var customer *entity.Customer
	var err error
	if parsed, perr := uuid.Parse(id); perr == nil {
		customer, err = s.customerRepo.GetByID(ctx, parsed)
	} else {
		customer, err = s.customerRepo.GetByCardID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCartCustomer(customer), nil
}

func toCartCustomer(c *entity.Customer) *cart.Customer {
	out := &cart.Customer{
		ID:              c.ID.String(),
		Type:            c.Type,
		DiscountPercent: c.DiscountPercent,
	}
	if c.FirstName != nil {
		out.FirstName = *c.FirstName
	}
	if c.LastName != nil {
		out.LastName = *c.LastName
	}
	if c.CardID != nil {
		out.CardID = *c.CardID
	}
	if c.NrAuto != nil {
		out.NrAuto = *c.NrAuto
	}
	return out
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Type            string
	FirstName       *string
	LastName        *string
	CardID          *string
	DiscountPercent float64
	NrAuto          *string
	CodFiscal       *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	ctype, ok := enum.ParseCustomerType(input.Type)
	if !ok {
		return nil, apperror.NewBadRequestError("Invalid customer type")
	}

	customer := &entity.Customer{
		Type:            ctype,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		CardID:          input.CardID,
		DiscountPercent: input.DiscountPercent,
		NrAuto:          input.NrAuto,
		CodFiscal:       input.CodFiscal,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
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

// ListCustomers lists customers with optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID              uuid.UUID
	Type            *string
	FirstName       *string
	LastName        *string
	CardID          *string
	DiscountPercent *float64
	NrAuto          *string
	CodFiscal       *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if customer.Anonymous {
		return nil, apperror.NewBadRequestError("The walk-in customer record cannot be modified")
	}

	if input.Type != nil {
		ctype, ok := enum.ParseCustomerType(*input.Type)
		if !ok {
			return nil, apperror.NewBadRequestError("Invalid customer type")
		}
		customer.Type = ctype
	}
	if input.FirstName != nil {
		customer.FirstName = input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = input.LastName
	}
	if input.CardID != nil {
		customer.CardID = input.CardID
	}
	if input.DiscountPercent != nil {
		customer.DiscountPercent = *input.DiscountPercent
	}
	if input.NrAuto != nil {
		customer.NrAuto = input.NrAuto
	}
	if input.CodFiscal != nil {
		customer.CodFiscal = input.CodFiscal
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	if customer.Anonymous {
		return apperror.NewBadRequestError("The walk-in customer record cannot be deleted")
	}
	return s.customerRepo.Delete(ctx, id)
}

// DefaultCustomer loads the seeded walk-in customer, falling back to
// the built-in anonymous record when the seed row is missing.
func (s *CustomerService) DefaultCustomer(ctx context.Context) cart.Customer {
	customer, err := s.customerRepo.GetAnonymous(ctx)
	if err != nil || customer == nil {
		return cart.AnonymousCustomer()
	}
	resolved := toCartCustomer(customer)
	if resolved.LastName == "" {
		resolved.LastName = cart.AnonymousCustomer().LastName
	}
	return *resolved
}
