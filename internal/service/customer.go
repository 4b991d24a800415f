package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"customerlib/internal/model"
	"customerlib/internal/repository"
)

var (
	ErrInvalidID = errors.New("id must be a positive integer")
	ErrNotFound  = errors.New("customer not found")
	ErrNil       = errors.New("customer is nil")
)

// CustomerService defines the use cases for handling customers.
// It turns the repository's not-found results (nil entity, false) into ErrNotFound.
type CustomerService interface {
	// Create persists a new customer and returns it with the store-assigned id.
	// Any id already set on the input is ignored.
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// Get returns a single customer by id.
	Get(ctx context.Context, id int64) (*model.Customer, error)

	// Update overwrites every non-id field of an existing customer.
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)

	// Delete removes a customer by id.
	Delete(ctx context.Context, id int64) error

	// Reset removes all customers and returns how many were removed.
	Reset(ctx context.Context) (int64, error)
}

type customerService struct {
	repo repository.CustomerRepository
	log  *zap.Logger
}

// NewCustomerService constructs a new CustomerService.
func NewCustomerService(repo repository.CustomerRepository, log *zap.Logger) CustomerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &customerService{repo: repo, log: log}
}

func (s *customerService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if c == nil {
		return nil, ErrNil
	}
	in := *c
	in.CustomerID = 0

	id, err := s.repo.Create(ctx, &in)
	if err != nil {
		s.log.Error("failed to create customer", zap.Error(err))
		return nil, err
	}
	in.CustomerID = id
	return &in, nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	c, err := s.repo.Read(ctx, id)
	if err != nil {
		s.log.Error("failed to read customer", zap.Int64("customer_id", id), zap.Error(err))
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if c == nil {
		return nil, ErrNil
	}
	if c.CustomerID <= 0 {
		return nil, ErrInvalidID
	}
	ok, err := s.repo.Update(ctx, c)
	if err != nil {
		s.log.Error("failed to update customer", zap.Int64("customer_id", c.CustomerID), zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.log.Error("failed to delete customer", zap.Int64("customer_id", id), zap.Error(err))
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *customerService) Reset(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.log.Error("failed to delete all customers", zap.Error(err))
		return 0, err
	}
	s.log.Warn("customer table reset", zap.Int64("deleted", n))
	return n, nil
}
