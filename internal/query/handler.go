package query

import (
	"context"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/inventory"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/example/arka-distribution/internal/readmodel"
)

// Handler serves the read side of the API.
type Handler struct {
	inventorySvc *inventory.Service
	customerSvc  *customer.Service
	orderSvc     *order.Service
}

func NewHandler(inventorySvc *inventory.Service, customerSvc *customer.Service, orderSvc *order.Service) *Handler {
	return &Handler{
		inventorySvc: inventorySvc,
		customerSvc:  customerSvc,
		orderSvc:     orderSvc,
	}
}

// Products
func (h *Handler) GetProduct(ctx context.Context, id string) (*readmodel.ProductReadModel, error) {
	p, err := h.inventorySvc.GetProductByID(ctx, ids.ProductID(id))
	if err != nil {
		return nil, err
	}
	return readmodel.FromProduct(p), nil
}

// ListProducts lists every product, or only those in category when it is set.
func (h *Handler) ListProducts(ctx context.Context, category string) ([]*readmodel.ProductReadModel, error) {
	var (
		products []*product.Product
		err      error
	)
	if category == "" {
		products, err = h.inventorySvc.GetAllProducts(ctx)
	} else {
		products, err = h.inventorySvc.GetProductsByCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}
	return readmodel.FromProducts(products), nil
}

func (h *Handler) ListLowStockProducts(ctx context.Context) ([]*readmodel.ProductReadModel, error) {
	products, err := h.inventorySvc.GetLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	return readmodel.FromProducts(products), nil
}

// Customers
func (h *Handler) GetCustomer(ctx context.Context, id string) (*readmodel.CustomerReadModel, error) {
	c, err := h.customerSvc.GetByID(ctx, ids.CustomerID(id))
	if err != nil {
		return nil, err
	}
	return readmodel.FromCustomer(c), nil
}

func (h *Handler) ListCustomers(ctx context.Context) ([]*readmodel.CustomerReadModel, error) {
	customers, err := h.customerSvc.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return readmodel.FromCustomers(customers), nil
}

// Orders
func (h *Handler) GetOrder(ctx context.Context, id string) (*readmodel.OrderReadModel, error) {
	o, err := h.orderSvc.GetOrderByID(ctx, ids.OrderID(id))
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrder(o), nil
}

// ListOrders lists every order, or only those in status when it is set.
func (h *Handler) ListOrders(ctx context.Context, status string) ([]*readmodel.OrderReadModel, error) {
	var (
		orders []*order.Order
		err    error
	)
	if status == "" {
		orders, err = h.orderSvc.GetAllOrders(ctx)
	} else {
		var s order.Status
		s, err = order.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		orders, err = h.orderSvc.GetOrdersByStatus(ctx, s)
	}
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrders(orders), nil
}

func (h *Handler) ListPendingOrders(ctx context.Context) ([]*readmodel.OrderReadModel, error) {
	orders, err := h.orderSvc.GetPendingOrders(ctx)
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrders(orders), nil
}

// ListCustomerOrders fails with NotFound when the customer does not exist.
func (h *Handler) ListCustomerOrders(ctx context.Context, customerID string) ([]*readmodel.OrderReadModel, error) {
	if _, err := h.customerSvc.GetByID(ctx, ids.CustomerID(customerID)); err != nil {
		return nil, err
	}
	orders, err := h.orderSvc.GetOrdersByCustomerID(ctx, ids.CustomerID(customerID))
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrders(orders), nil
}
