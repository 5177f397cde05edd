package order

import (
	"testing"
	"time"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cop(amount int64) money.Money { return money.MustFromInt(amount, "COP") }

func newTestOrder(t *testing.T, items ...Item) *Order {
	t.Helper()
	if len(items) == 0 {
		items = []Item{{ProductID: "prod-1", Quantity: 2, UnitPrice: cop(1000)}}
	}
	o, err := New("ord-1", "cust-1", items)
	require.NoError(t, err)
	return o
}

func orderInStatus(t *testing.T, status Status) *Order {
	t.Helper()
	now := time.Now()
	o, err := Rehydrate("ord-1", "cust-1", status,
		[]Item{{ProductID: "prod-1", Quantity: 1, UnitPrice: cop(1000)}}, now, now)
	require.NoError(t, err)
	return o
}

// ============================================
// Constructor Tests
// ============================================

func TestNew_StartsPending(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, StatusPending, o.Status())
	assert.True(t, o.IsPending())
	assert.Equal(t, ids.OrderID("ord-1"), o.ID)
	assert.Equal(t, ids.CustomerID("cust-1"), o.CustomerID)
	assert.False(t, o.CreatedAt.IsZero())
	assert.Equal(t, o.CreatedAt, o.UpdatedAt())
}

func TestNew_CopiesItems(t *testing.T) {
	items := []Item{{ProductID: "prod-1", Quantity: 1, UnitPrice: cop(1000)}}
	o := newTestOrder(t, items...)

	items[0].Quantity = 99

	assert.Equal(t, 1, o.Items()[0].Quantity)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		id         ids.OrderID
		customerID ids.CustomerID
		items      []Item
	}{
		{"empty id", "", "cust-1", nil},
		{"empty customer", "ord-1", "", nil},
		{"zero quantity", "ord-1", "cust-1", []Item{{ProductID: "p", Quantity: 0, UnitPrice: cop(1)}}},
		{"mixed currency", "ord-1", "cust-1", []Item{
			{ProductID: "p1", Quantity: 1, UnitPrice: cop(1)},
			{ProductID: "p2", Quantity: 1, UnitPrice: money.MustFromInt(1, "USD")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, tt.customerID, tt.items)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestRehydrate_RejectsUnknownStatus(t *testing.T) {
	_, err := Rehydrate("ord-1", "cust-1", Status("CANCELLED"), nil, time.Now(), time.Now())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" shipping ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipping, s)

	_, err = ParseStatus("lost")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ============================================
// Total Tests
// ============================================

func TestTotal_SumsLines(t *testing.T) {
	o := newTestOrder(t,
		Item{ProductID: "prod-1", Quantity: 2, UnitPrice: cop(100000)},
		Item{ProductID: "prod-2", Quantity: 3, UnitPrice: cop(2500)},
	)

	assert.True(t, o.Total().Equal(cop(207500)), o.Total().String())
	assert.Equal(t, "COP", o.Total().Currency())
}

func TestTotal_EmptyOrderIsZero(t *testing.T) {
	o := newTestOrder(t)
	_, err := o.RemoveItem(Item{ProductID: "prod-1"})
	require.NoError(t, err)

	assert.True(t, o.Total().IsZero())
	assert.Equal(t, money.DefaultCurrency, o.Total().Currency())
}

// ============================================
// State Machine Tests
// ============================================

func TestLifecycle_HappyPath(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Confirm())
	assert.Equal(t, StatusConfirmed, o.Status())

	require.NoError(t, o.Ship())
	assert.Equal(t, StatusShipping, o.Status())

	require.NoError(t, o.Deliver())
	assert.Equal(t, StatusDelivered, o.Status())
}

func TestLifecycle_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		action func(*Order) error
		verb   string
	}{
		{"ship pending", StatusPending, (*Order).Ship, "ship"},
		{"deliver pending", StatusPending, (*Order).Deliver, "deliver"},
		{"confirm confirmed", StatusConfirmed, (*Order).Confirm, "confirm"},
		{"deliver confirmed", StatusConfirmed, (*Order).Deliver, "deliver"},
		{"confirm shipping", StatusShipping, (*Order).Confirm, "confirm"},
		{"ship shipping", StatusShipping, (*Order).Ship, "ship"},
		{"confirm delivered", StatusDelivered, (*Order).Confirm, "confirm"},
		{"ship delivered", StatusDelivered, (*Order).Ship, "ship"},
		{"deliver delivered", StatusDelivered, (*Order).Deliver, "deliver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := orderInStatus(t, tt.from)
			before := o.UpdatedAt()

			err := tt.action(o)

			require.ErrorIs(t, err, domain.ErrInvalidTransition)
			var transitionErr *domain.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, string(tt.from), transitionErr.From)
			assert.Equal(t, tt.verb, transitionErr.Action)
			assert.Equal(t, tt.from, o.Status())
			assert.Equal(t, before, o.UpdatedAt())
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	assert.True(t, orderInStatus(t, StatusPending).CanTransitionTo(StatusConfirmed))
	assert.False(t, orderInStatus(t, StatusPending).CanTransitionTo(StatusShipping))
	assert.True(t, orderInStatus(t, StatusShipping).CanTransitionTo(StatusDelivered))
	assert.False(t, orderInStatus(t, StatusDelivered).CanTransitionTo(StatusPending))
}

func TestTransition_RefreshesUpdatedAt(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	o, err := Rehydrate("ord-1", "cust-1", StatusPending, nil, past, past)
	require.NoError(t, err)

	require.NoError(t, o.Confirm())

	assert.True(t, o.UpdatedAt().After(past))
	assert.Equal(t, past, o.CreatedAt)
}

// ============================================
// Item Tests
// ============================================

func TestAddItem_Pending(t *testing.T) {
	o := newTestOrder(t)

	err := o.AddItem(Item{ProductID: "prod-2", Quantity: 1, UnitPrice: cop(500)})

	require.NoError(t, err)
	assert.Len(t, o.Items(), 2)
	assert.True(t, o.Total().Equal(cop(2500)))
}

func TestAddItem_NotPending(t *testing.T) {
	o := orderInStatus(t, StatusConfirmed)

	err := o.AddItem(Item{ProductID: "prod-2", Quantity: 1, UnitPrice: cop(500)})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Len(t, o.Items(), 1)
}

func TestAddItem_Rejects(t *testing.T) {
	o := newTestOrder(t)

	err := o.AddItem(Item{ProductID: "prod-2", Quantity: 0, UnitPrice: cop(500)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	err = o.AddItem(Item{ProductID: "prod-2", Quantity: 1, UnitPrice: money.MustFromInt(5, "USD")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Len(t, o.Items(), 1)
}

func TestRemoveItem_ReturnsRemovedLine(t *testing.T) {
	o := newTestOrder(t,
		Item{ProductID: "prod-1", Quantity: 2, UnitPrice: cop(1000)},
		Item{ProductID: "prod-2", Quantity: 5, UnitPrice: cop(300)},
	)

	removed, err := o.RemoveItem(Item{ProductID: "prod-2", Quantity: 1})

	require.NoError(t, err)
	assert.Equal(t, 5, removed.Quantity)
	require.Len(t, o.Items(), 1)
	assert.Equal(t, ids.ProductID("prod-1"), o.Items()[0].ProductID)
}

func TestRemoveItem_Missing(t *testing.T) {
	o := newTestOrder(t)

	_, err := o.RemoveItem(Item{ProductID: "prod-9"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, o.Items(), 1)
}

func TestRemoveItem_NotPending(t *testing.T) {
	o := orderInStatus(t, StatusShipping)

	_, err := o.RemoveItem(Item{ProductID: "prod-1"})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestItems_ReturnsCopy(t *testing.T) {
	o := newTestOrder(t)

	items := o.Items()
	items[0].Quantity = 42

	assert.Equal(t, 2, o.Items()[0].Quantity)
}

func TestClone_IsIndependent(t *testing.T) {
	o := newTestOrder(t)
	c := o.Clone()

	require.NoError(t, c.AddItem(Item{ProductID: "prod-2", Quantity: 1, UnitPrice: cop(1)}))
	require.NoError(t, c.Confirm())

	assert.Equal(t, StatusPending, o.Status())
	assert.Len(t, o.Items(), 1)
}

// ============================================
// Item Constructor Tests
// ============================================

func TestNewItem(t *testing.T) {
	item, err := NewItem("prod-1", 3, cop(100))
	require.NoError(t, err)
	assert.True(t, item.TotalPrice().Equal(cop(300)))

	_, err = NewItem("", 1, cop(100))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewItem("prod-1", -1, cop(100))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
