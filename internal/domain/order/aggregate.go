package order

import (
	"context"
	"strings"
	"time"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
)

const EntityName = "order"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipping  Status = "SHIPPING"
	StatusDelivered Status = "DELIVERED"
)

// validTransitions maps each status to the only status it may move to.
// DELIVERED has no entry: it is terminal.
var validTransitions = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusShipping,
	StatusShipping:  StatusDelivered,
}

func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusPending, StatusConfirmed, StatusShipping, StatusDelivered:
		return status, nil
	}
	return "", domain.Invalid("status", "unknown order status "+s)
}

// Repository is the persistence port for orders.
type Repository interface {
	Save(ctx context.Context, o *Order) (*Order, error)
	FindByID(ctx context.Context, id ids.OrderID) (*Order, bool, error)
	FindByCustomerID(ctx context.Context, customerID ids.CustomerID) ([]*Order, error)
	FindByStatus(ctx context.Context, status Status) ([]*Order, error)
	FindPending(ctx context.Context) ([]*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
	Delete(ctx context.Context, o *Order) error
	DeleteByID(ctx context.Context, id ids.OrderID) error
	ExistsByID(ctx context.Context, id ids.OrderID) (bool, error)
}

// Order owns its status and items. Items can only change while the order is pending,
// and all items share one currency.
type Order struct {
	ID         ids.OrderID
	CustomerID ids.CustomerID
	CreatedAt  time.Time

	status    Status
	items     []Item
	updatedAt time.Time
}

// New creates a pending order.
func New(id ids.OrderID, customerID ids.CustomerID, items []Item) (*Order, error) {
	now := time.Now()
	return Rehydrate(id, customerID, StatusPending, items, now, now)
}

// Rehydrate rebuilds an order from persisted state.
func Rehydrate(id ids.OrderID, customerID ids.CustomerID, status Status, items []Item, createdAt, updatedAt time.Time) (*Order, error) {
	if id == "" {
		return nil, domain.Invalid("id", "must not be empty")
	}
	if customerID == "" {
		return nil, domain.Invalid("customer_id", "must not be empty")
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, domain.Invalid("quantity", "must be greater than zero")
		}
		if i > 0 && item.UnitPrice.Currency() != items[0].UnitPrice.Currency() {
			return nil, currencyMismatch(items[0].UnitPrice.Currency(), item.UnitPrice.Currency())
		}
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	return &Order{
		ID:         id,
		CustomerID: customerID,
		CreatedAt:  createdAt,
		status:     status,
		items:      append([]Item(nil), items...),
		updatedAt:  updatedAt,
	}, nil
}

func (o *Order) Status() Status       { return o.status }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) IsPending() bool      { return o.status == StatusPending }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Currency is the currency shared by the items, or the default for an empty order.
func (o *Order) Currency() string {
	if len(o.items) == 0 {
		return money.DefaultCurrency
	}
	return o.items[0].UnitPrice.Currency()
}

func (o *Order) Total() money.Money {
	total := money.Zero(o.Currency())
	for _, item := range o.items {
		// currencies were checked when the items entered the order
		total, _ = total.Add(item.TotalPrice())
	}
	return total
}

// CanTransitionTo checks if the order can move to the target status
func (o *Order) CanTransitionTo(target Status) bool {
	next, ok := validTransitions[o.status]
	return ok && next == target
}

func (o *Order) Confirm() error { return o.transition(StatusConfirmed, "confirm") }
func (o *Order) Ship() error    { return o.transition(StatusShipping, "ship") }
func (o *Order) Deliver() error { return o.transition(StatusDelivered, "deliver") }

func (o *Order) AddItem(item Item) error {
	if !o.IsPending() {
		return &domain.InvalidTransitionError{From: string(o.status), Action: "modify"}
	}
	if item.Quantity <= 0 {
		return domain.Invalid("quantity", "must be greater than zero")
	}
	if len(o.items) > 0 && item.UnitPrice.Currency() != o.Currency() {
		return currencyMismatch(o.Currency(), item.UnitPrice.Currency())
	}
	o.items = append(o.items, item)
	o.updatedAt = time.Now()
	return nil
}

// RemoveItem drops the first line for the same product as item and returns it.
func (o *Order) RemoveItem(item Item) (Item, error) {
	if !o.IsPending() {
		return Item{}, &domain.InvalidTransitionError{From: string(o.status), Action: "remove items from"}
	}
	for i, existing := range o.items {
		if existing.SameProduct(item) {
			o.items = append(o.items[:i:i], o.items[i+1:]...)
			o.updatedAt = time.Now()
			return existing, nil
		}
	}
	return Item{}, domain.NotFound("order item", item.ProductID.String())
}

func (o *Order) Clone() *Order {
	c := *o
	c.items = o.Items()
	return &c
}

func (o *Order) transition(target Status, action string) error {
	if !o.CanTransitionTo(target) {
		return &domain.InvalidTransitionError{From: string(o.status), Action: action}
	}
	o.status = target
	o.updatedAt = time.Now()
	return nil
}

func currencyMismatch(want, got string) error {
	return domain.Invalid("currency", "order is in "+want+", item is in "+got)
}
