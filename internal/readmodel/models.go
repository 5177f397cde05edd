// Package readmodel holds the JSON views returned by the API.
package readmodel

import (
	"time"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
)

// ProductReadModel is the read model for products
type ProductReadModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
	LowStock    bool   `json:"low_stock"`
}

type CustomerReadModel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
}

// OrderItemReadModel represents an item in an order
type OrderItemReadModel struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// OrderReadModel is the read model for orders
type OrderReadModel struct {
	ID         string               `json:"id"`
	CustomerID string               `json:"customer_id"`
	Status     string               `json:"status"`
	Items      []OrderItemReadModel `json:"items"`
	Total      string               `json:"total"`
	Currency   string               `json:"currency"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type RestockReportReadModel struct {
	Threshold int                 `json:"threshold"`
	Count     int                 `json:"count"`
	Products  []*ProductReadModel `json:"products"`
}

func FromProduct(p *product.Product) *ProductReadModel {
	return &ProductReadModel{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Amount().String(),
		Currency:    p.Price.Currency(),
		Stock:       p.Stock(),
		Category:    p.Category.String(),
		LowStock:    p.IsLowStock(product.LowStockThreshold),
	}
}

func FromProducts(products []*product.Product) []*ProductReadModel {
	out := make([]*ProductReadModel, 0, len(products))
	for _, p := range products {
		out = append(out, FromProduct(p))
	}
	return out
}

func FromCustomer(c *customer.Customer) *CustomerReadModel {
	return &CustomerReadModel{
		ID:       c.ID.String(),
		Name:     c.Name,
		LastName: c.LastName,
		Email:    c.Email.String(),
		Phone:    c.Phone,
		City:     c.City,
	}
}

func FromCustomers(customers []*customer.Customer) []*CustomerReadModel {
	out := make([]*CustomerReadModel, 0, len(customers))
	for _, c := range customers {
		out = append(out, FromCustomer(c))
	}
	return out
}

func FromOrder(o *order.Order) *OrderReadModel {
	items := o.Items()
	rm := &OrderReadModel{
		ID:         o.ID.String(),
		CustomerID: o.CustomerID.String(),
		Status:     string(o.Status()),
		Items:      make([]OrderItemReadModel, 0, len(items)),
		Total:      o.Total().Amount().String(),
		Currency:   o.Currency(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt(),
	}
	for _, item := range items {
		rm.Items = append(rm.Items, OrderItemReadModel{
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Amount().String(),
			Subtotal:  item.TotalPrice().Amount().String(),
		})
	}
	return rm
}

func FromOrders(orders []*order.Order) []*OrderReadModel {
	out := make([]*OrderReadModel, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
