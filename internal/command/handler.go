package command

import (
	"context"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/inventory"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/example/arka-distribution/internal/readmodel"
)

// Handler validates incoming commands and runs them against the domain services.
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

func (h *Handler) RegisterProduct(ctx context.Context, cmd RegisterProduct) (*readmodel.ProductReadModel, error) {
	currency := cmd.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	price, err := money.Parse(cmd.Price, currency)
	if err != nil {
		return nil, err
	}
	p, err := h.inventorySvc.RegisterProduct(ctx, cmd.Name, cmd.Description, price, cmd.Stock, cmd.Category)
	if err != nil {
		return nil, err
	}
	return readmodel.FromProduct(p), nil
}

func (h *Handler) UpdateStock(ctx context.Context, cmd UpdateStock) (*readmodel.ProductReadModel, error) {
	id, err := ids.NewProductID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	p, err := h.inventorySvc.UpdateStock(ctx, id, cmd.Stock)
	if err != nil {
		return nil, err
	}
	return readmodel.FromProduct(p), nil
}

func (h *Handler) ReduceStock(ctx context.Context, cmd AdjustStock) (*readmodel.ProductReadModel, error) {
	id, err := ids.NewProductID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	p, err := h.inventorySvc.ReduceStock(ctx, id, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	return readmodel.FromProduct(p), nil
}

func (h *Handler) IncreaseStock(ctx context.Context, cmd AdjustStock) (*readmodel.ProductReadModel, error) {
	id, err := ids.NewProductID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	p, err := h.inventorySvc.IncreaseStock(ctx, id, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	return readmodel.FromProduct(p), nil
}

func (h *Handler) DeleteProduct(ctx context.Context, productID string) error {
	id, err := ids.NewProductID(productID)
	if err != nil {
		return err
	}
	return h.inventorySvc.DeleteProduct(ctx, id)
}

func (h *Handler) GenerateRestockReport(ctx context.Context) (*readmodel.RestockReportReadModel, error) {
	products, err := h.inventorySvc.GenerateRestockReport(ctx)
	if err != nil {
		return nil, err
	}
	rms := readmodel.FromProducts(products)
	return &readmodel.RestockReportReadModel{
		Threshold: product.LowStockThreshold,
		Count:     len(rms),
		Products:  rms,
	}, nil
}

// Customers

func (h *Handler) RegisterCustomer(ctx context.Context, cmd RegisterCustomer) (*readmodel.CustomerReadModel, error) {
	c, err := h.customerSvc.Register(ctx, cmd.Name, cmd.LastName, cmd.Email, cmd.Phone, cmd.City)
	if err != nil {
		return nil, err
	}
	return readmodel.FromCustomer(c), nil
}

func (h *Handler) DeleteCustomer(ctx context.Context, customerID string) error {
	id, err := ids.NewCustomerID(customerID)
	if err != nil {
		return err
	}
	return h.customerSvc.Delete(ctx, id)
}

// Orders

// CreateOrder prices every line at the product's current price.
func (h *Handler) CreateOrder(ctx context.Context, cmd CreateOrder) (*readmodel.OrderReadModel, error) {
	customerID, err := ids.NewCustomerID(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(cmd.Items))
	for _, line := range cmd.Items {
		item, err := h.priceLine(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	o, err := h.orderSvc.CreateOrder(ctx, customerID, items)
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrder(o), nil
}

func (h *Handler) ConfirmOrder(ctx context.Context, orderID string) (*readmodel.OrderReadModel, error) {
	return h.advance(ctx, orderID, h.orderSvc.ConfirmOrder)
}

func (h *Handler) ShipOrder(ctx context.Context, orderID string) (*readmodel.OrderReadModel, error) {
	return h.advance(ctx, orderID, h.orderSvc.ShipOrder)
}

func (h *Handler) DeliverOrder(ctx context.Context, orderID string) (*readmodel.OrderReadModel, error) {
	return h.advance(ctx, orderID, h.orderSvc.DeliverOrder)
}

func (h *Handler) AddOrderItem(ctx context.Context, cmd AddOrderItem) (*readmodel.OrderReadModel, error) {
	orderID, err := ids.NewOrderID(cmd.OrderID)
	if err != nil {
		return nil, err
	}
	item, err := h.priceLine(ctx, cmd.ProductID, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	o, err := h.orderSvc.AddItemToOrder(ctx, orderID, item)
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrder(o), nil
}

func (h *Handler) RemoveOrderItem(ctx context.Context, cmd RemoveOrderItem) (*readmodel.OrderReadModel, error) {
	orderID, err := ids.NewOrderID(cmd.OrderID)
	if err != nil {
		return nil, err
	}
	productID, err := ids.NewProductID(cmd.ProductID)
	if err != nil {
		return nil, err
	}
	o, err := h.orderSvc.RemoveItemFromOrder(ctx, orderID, order.Item{ProductID: productID})
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrder(o), nil
}

func (h *Handler) advance(ctx context.Context, orderID string, step func(context.Context, ids.OrderID) (*order.Order, error)) (*readmodel.OrderReadModel, error) {
	id, err := ids.NewOrderID(orderID)
	if err != nil {
		return nil, err
	}
	o, err := step(ctx, id)
	if err != nil {
		return nil, err
	}
	return readmodel.FromOrder(o), nil
}

func (h *Handler) priceLine(ctx context.Context, productID string, quantity int) (order.Item, error) {
	id, err := ids.NewProductID(productID)
	if err != nil {
		return order.Item{}, err
	}
	p, err := h.inventorySvc.GetProductByID(ctx, id)
	if err != nil {
		return order.Item{}, err
	}
	return order.NewItem(id, quantity, p.Price)
}
