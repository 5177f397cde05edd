package product

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
)

const EntityName = "product"

// LowStockThreshold is the stock level below which a product needs restocking.
const LowStockThreshold = 10

// MaxStock is the largest stock a product can hold; stores keep it in a 32-bit column.
const MaxStock = math.MaxInt32

// Repository is the persistence port for products.
type Repository interface {
	Save(ctx context.Context, p *Product) (*Product, error)
	FindByID(ctx context.Context, id ids.ProductID) (*Product, bool, error)
	FindAll(ctx context.Context) ([]*Product, error)
	FindByCategory(ctx context.Context, category Category) ([]*Product, error)
	FindLowStock(ctx context.Context, threshold int) ([]*Product, error)
	ExistsByID(ctx context.Context, id ids.ProductID) (bool, error)
	DeleteByID(ctx context.Context, id ids.ProductID) error
}

// Product is a catalog entry. Stock is its only mutable attribute.
type Product struct {
	ID          ids.ProductID
	Name        string
	Description string
	Price       money.Money
	Category    Category
	stock       int
}

func New(id ids.ProductID, name, description string, price money.Money, stock int, category Category) (*Product, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, domain.Invalid("id", "must not be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("name", "must not be empty")
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return nil, domain.Invalid("name", "must not contain control characters")
	}
	if price.Currency() == "" {
		return nil, domain.Invalid("price", "is required")
	}
	if err := checkStock(stock); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, domain.Invalid("category", "unknown category "+string(category))
	}
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		stock:       stock,
	}, nil
}

func (p *Product) Stock() int { return p.stock }

// HasStock reports whether quantity units can be taken from the product.
func (p *Product) HasStock(quantity int) bool { return p.stock >= quantity }

func (p *Product) IsLowStock(threshold int) bool { return p.stock < threshold }

func (p *Product) ReduceStock(quantity int) error {
	if quantity <= 0 {
		return domain.Invalid("quantity", "must be positive")
	}
	if quantity > p.stock {
		return &domain.InsufficientStockError{
			ProductID: string(p.ID),
			Requested: quantity,
			Available: p.stock,
		}
	}
	p.stock -= quantity
	return nil
}

func (p *Product) IncreaseStock(quantity int) error {
	if quantity <= 0 {
		return domain.Invalid("quantity", "must be positive")
	}
	if quantity > MaxStock-p.stock {
		return domain.Invalid("quantity", fmt.Sprintf("stock would exceed %d", MaxStock))
	}
	p.stock += quantity
	return nil
}

// SetStock overwrites the stock level, as done by a manual inventory count.
func (p *Product) SetStock(stock int) error {
	if err := checkStock(stock); err != nil {
		return err
	}
	p.stock = stock
	return nil
}

func (p *Product) Clone() *Product {
	c := *p
	return &c
}

func checkStock(stock int) error {
	if stock < 0 {
		return domain.Invalid("stock", "must not be negative")
	}
	if stock > MaxStock {
		return domain.Invalid("stock", fmt.Sprintf("must not exceed %d", MaxStock))
	}
	return nil
}
