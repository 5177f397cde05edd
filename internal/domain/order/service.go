package order

import (
	"context"
	"sync"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/product"
	"go.uber.org/zap"
)

// Notifier receives order status changes. Delivery is best effort: a returned
// error is logged and never undoes the operation that triggered it.
type Notifier interface {
	NotifyOrderStatusChange(ctx context.Context, orderID, customerEmail, newStatus string) error
}

// Service coordinates orders with product stock, customers and notifications.
type Service struct {
	orders    Repository
	products  product.Repository
	customers customer.Repository
	notifier  Notifier
	logger    *zap.Logger

	// stockMu makes the check-then-reserve sequence single-writer within the process.
	// Writers in other processes are not covered; see DESIGN.md.
	stockMu sync.Mutex
}

func NewService(
	orders Repository,
	products product.Repository,
	customers customer.Repository,
	notifier Notifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		customers: customers,
		notifier:  notifier,
		logger:    logger,
	}
}

// CreateOrder validates the customer and the stock of every item, then persists the
// order, reserves the stock and notifies the customer. Nothing is written when any
// item fails validation.
func (s *Service) CreateOrder(ctx context.Context, customerID ids.CustomerID, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, domain.Invalid("items", "order must have at least one item")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.Invalid("quantity", "must be greater than zero")
		}
	}

	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	cust, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Quantities are summed per product so repeated lines cannot overdraw stock.
	requested := make(map[ids.ProductID]int, len(items))
	loaded := make(map[ids.ProductID]*product.Product, len(items))
	var productOrder []ids.ProductID
	for _, item := range items {
		p, ok := loaded[item.ProductID]
		if !ok {
			p, err = s.loadProduct(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			loaded[item.ProductID] = p
			productOrder = append(productOrder, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
		if !p.HasStock(requested[item.ProductID]) {
			return nil, &domain.InsufficientStockError{
				ProductID: item.ProductID.String(),
				Requested: requested[item.ProductID],
				Available: p.Stock(),
			}
		}
	}

	o, err := New(ids.NextOrderID(), customerID, items)
	if err != nil {
		return nil, err
	}

	saved, err := s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	for _, id := range productOrder {
		p := loaded[id]
		if err := p.ReduceStock(requested[id]); err != nil {
			return nil, err
		}
		if _, err := s.products.Save(ctx, p); err != nil {
			return nil, err
		}
	}

	s.logger.Info("order created",
		zap.String("order_id", saved.ID.String()),
		zap.String("customer_id", customerID.String()),
		zap.Int("items", len(items)),
		zap.String("total", saved.Total().String()),
	)
	s.notify(ctx, saved, cust)
	return saved, nil
}

func (s *Service) ConfirmOrder(ctx context.Context, id ids.OrderID) (*Order, error) {
	return s.advance(ctx, id, (*Order).Confirm)
}

func (s *Service) ShipOrder(ctx context.Context, id ids.OrderID) (*Order, error) {
	return s.advance(ctx, id, (*Order).Ship)
}

func (s *Service) DeliverOrder(ctx context.Context, id ids.OrderID) (*Order, error) {
	return s.advance(ctx, id, (*Order).Deliver)
}

// AddItemToOrder appends an item to a pending order and reserves its stock.
func (s *Service) AddItemToOrder(ctx context.Context, orderID ids.OrderID, item Item) (*Order, error) {
	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsPending() {
		return nil, &domain.InvalidTransitionError{From: string(o.Status()), Action: "modify"}
	}

	p, err := s.loadProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.HasStock(item.Quantity) {
		return nil, &domain.InsufficientStockError{
			ProductID: item.ProductID.String(),
			Requested: item.Quantity,
			Available: p.Stock(),
		}
	}

	if err := o.AddItem(item); err != nil {
		return nil, err
	}
	if err := p.ReduceStock(item.Quantity); err != nil {
		return nil, err
	}

	// stock first: a failed reservation must not leave the item on the order
	if _, err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	saved, err := s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item added to order",
		zap.String("order_id", orderID.String()),
		zap.String("product_id", item.ProductID.String()),
		zap.Int("quantity", item.Quantity),
	)
	return saved, nil
}

// RemoveItemFromOrder drops the line for item's product and returns its quantity to stock.
func (s *Service) RemoveItemFromOrder(ctx context.Context, orderID ids.OrderID, item Item) (*Order, error) {
	s.stockMu.Lock()
	defer s.stockMu.Unlock()

	o, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsPending() {
		return nil, &domain.InvalidTransitionError{From: string(o.Status()), Action: "remove items from"}
	}

	removed, err := o.RemoveItem(item)
	if err != nil {
		return nil, err
	}

	p, err := s.loadProduct(ctx, removed.ProductID)
	if err != nil {
		return nil, err
	}
	if err := p.IncreaseStock(removed.Quantity); err != nil {
		return nil, err
	}
	if _, err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	saved, err := s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	s.logger.Info("item removed from order",
		zap.String("order_id", orderID.String()),
		zap.String("product_id", removed.ProductID.String()),
		zap.Int("restocked", removed.Quantity),
	)
	return saved, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id ids.OrderID) (*Order, error) {
	return s.loadOrder(ctx, id)
}

func (s *Service) GetOrdersByCustomerID(ctx context.Context, customerID ids.CustomerID) ([]*Order, error) {
	return s.orders.FindByCustomerID(ctx, customerID)
}

func (s *Service) GetOrdersByStatus(ctx context.Context, status Status) ([]*Order, error) {
	return s.orders.FindByStatus(ctx, status)
}

func (s *Service) GetPendingOrders(ctx context.Context) ([]*Order, error) {
	return s.orders.FindPending(ctx)
}

func (s *Service) GetAllOrders(ctx context.Context) ([]*Order, error) {
	return s.orders.FindAll(ctx)
}

// advance applies one state-machine step, persists it and notifies the customer.
func (s *Service) advance(ctx context.Context, id ids.OrderID, step func(*Order) error) (*Order, error) {
	o, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	from := o.Status()
	if err := step(o); err != nil {
		return nil, err
	}

	saved, err := s.orders.Save(ctx, o)
	if err != nil {
		return nil, err
	}

	cust, err := s.loadCustomer(ctx, saved.CustomerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(saved.Status())),
	)
	s.notify(ctx, saved, cust)
	return saved, nil
}

func (s *Service) notify(ctx context.Context, o *Order, c *customer.Customer) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyOrderStatusChange(ctx, o.ID.String(), c.Email.String(), string(o.Status())); err != nil {
		s.logger.Warn("order status notification failed",
			zap.String("order_id", o.ID.String()),
			zap.String("status", string(o.Status())),
			zap.Error(err),
		)
	}
}

func (s *Service) loadOrder(ctx context.Context, id ids.OrderID) (*Order, error) {
	o, found, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound(EntityName, id.String())
	}
	return o, nil
}

func (s *Service) loadProduct(ctx context.Context, id ids.ProductID) (*product.Product, error) {
	p, found, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound(product.EntityName, id.String())
	}
	return p, nil
}

func (s *Service) loadCustomer(ctx context.Context, id ids.CustomerID) (*customer.Customer, error) {
	c, found, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound(customer.EntityName, id.String())
	}
	return c, nil
}
