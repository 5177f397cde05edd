package customer

import (
	"context"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"go.uber.org/zap"
)

type Service struct {
	customers Repository
	logger    *zap.Logger
}

func NewService(customers Repository, logger *zap.Logger) *Service {
	return &Service{customers: customers, logger: logger}
}

func (s *Service) Register(ctx context.Context, name, lastName, email, phone, city string) (*Customer, error) {
	addr, err := ids.NewEmail(email)
	if err != nil {
		return nil, err
	}
	c, err := New(ids.NextCustomerID(), name, lastName, addr, phone, city)
	if err != nil {
		return nil, err
	}
	saved, err := s.customers.Save(ctx, c)
	if err != nil {
		return nil, err
	}
	s.logger.Info("customer registered", zap.String("customer_id", saved.ID.String()))
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id ids.CustomerID) (*Customer, error) {
	c, found, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound(EntityName, id.String())
	}
	return c, nil
}

func (s *Service) GetAll(ctx context.Context) ([]*Customer, error) {
	return s.customers.FindAll(ctx)
}

func (s *Service) Delete(ctx context.Context, id ids.CustomerID) error {
	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFound(EntityName, id.String())
	}
	return s.customers.DeleteByID(ctx, id)
}
