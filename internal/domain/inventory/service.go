// Package inventory manages the product catalog and its stock levels.
package inventory

import (
	"context"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/product"
	"go.uber.org/zap"
)

// Notifier receives low-stock alerts. Errors are logged by the service and ignored.
type Notifier interface {
	NotifyLowStockAlert(ctx context.Context, productName string, currentStock int) error
}

type Service struct {
	products product.Repository
	notifier Notifier
	logger   *zap.Logger
}

func NewService(products product.Repository, notifier Notifier, logger *zap.Logger) *Service {
	return &Service{products: products, notifier: notifier, logger: logger}
}

func (s *Service) RegisterProduct(ctx context.Context, name, description string, price money.Money, stock int, categoryName string) (*product.Product, error) {
	category, err := product.ParseCategory(categoryName)
	if err != nil {
		return nil, err
	}
	p, err := product.New(ids.NextProductID(), name, description, price, stock, category)
	if err != nil {
		return nil, err
	}
	saved, err := s.products.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product registered",
		zap.String("product_id", saved.ID.String()),
		zap.String("category", saved.Category.String()),
		zap.Int("stock", saved.Stock()),
	)
	return saved, nil
}

func (s *Service) GetProductByID(ctx context.Context, id ids.ProductID) (*product.Product, error) {
	p, found, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound(product.EntityName, id.String())
	}
	return p, nil
}

func (s *Service) GetAllProducts(ctx context.Context) ([]*product.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *Service) GetProductsByCategory(ctx context.Context, categoryName string) ([]*product.Product, error) {
	category, err := product.ParseCategory(categoryName)
	if err != nil {
		return nil, err
	}
	return s.products.FindByCategory(ctx, category)
}

// UpdateStock overwrites the stock of a product with a counted value.
func (s *Service) UpdateStock(ctx context.Context, id ids.ProductID, newStock int) (*product.Product, error) {
	return s.mutate(ctx, id, "stock updated", func(p *product.Product) error {
		return p.SetStock(newStock)
	})
}

func (s *Service) ReduceStock(ctx context.Context, id ids.ProductID, quantity int) (*product.Product, error) {
	return s.mutate(ctx, id, "stock reduced", func(p *product.Product) error {
		return p.ReduceStock(quantity)
	})
}

func (s *Service) IncreaseStock(ctx context.Context, id ids.ProductID, quantity int) (*product.Product, error) {
	return s.mutate(ctx, id, "stock increased", func(p *product.Product) error {
		return p.IncreaseStock(quantity)
	})
}

func (s *Service) GetLowStockProducts(ctx context.Context) ([]*product.Product, error) {
	return s.products.FindLowStock(ctx, product.LowStockThreshold)
}

// GenerateRestockReport sends one low-stock alert per product under the threshold
// and returns the products it reported.
func (s *Service) GenerateRestockReport(ctx context.Context) ([]*product.Product, error) {
	low, err := s.GetLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range low {
		if s.notifier == nil {
			break
		}
		if err := s.notifier.NotifyLowStockAlert(ctx, p.Name, p.Stock()); err != nil {
			s.logger.Warn("low stock alert failed",
				zap.String("product_id", p.ID.String()),
				zap.Error(err),
			)
		}
	}
	s.logger.Info("restock report generated", zap.Int("low_stock_products", len(low)))
	return low, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id ids.ProductID) error {
	exists, err := s.products.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NotFound(product.EntityName, id.String())
	}
	if err := s.products.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *Service) mutate(ctx context.Context, id ids.ProductID, msg string, change func(*product.Product) error) (*product.Product, error) {
	p, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(p); err != nil {
		return nil, err
	}
	saved, err := s.products.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info(msg, zap.String("product_id", id.String()), zap.Int("stock", saved.Stock()))
	return saved, nil
}
