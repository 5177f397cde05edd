package order

import (
	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
)

// Item is one order line. Two items are the same line when they reference the same product.
type Item struct {
	ProductID ids.ProductID
	Quantity  int
	UnitPrice money.Money
}

func NewItem(productID ids.ProductID, quantity int, unitPrice money.Money) (Item, error) {
	if productID == "" {
		return Item{}, domain.Invalid("product_id", "must not be empty")
	}
	if quantity <= 0 {
		return Item{}, domain.Invalid("quantity", "must be greater than zero")
	}
	if unitPrice.Currency() == "" {
		return Item{}, domain.Invalid("unit_price", "is required")
	}
	return Item{ProductID: productID, Quantity: quantity, UnitPrice: unitPrice}, nil
}

func (i Item) TotalPrice() money.Money {
	// Quantity is positive, Multiply cannot fail.
	total, _ := i.UnitPrice.Multiply(i.Quantity)
	return total
}

func (i Item) SameProduct(other Item) bool {
	return i.ProductID == other.ProductID
}
