package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, id ids.ProductID, stock int, category product.Category) *product.Product {
	t.Helper()
	p, err := product.New(id, "Product "+string(id), "desc", money.MustFromInt(12500, "COP"), stock, category)
	require.NoError(t, err)
	return p
}

func testOrder(t *testing.T, id ids.OrderID, customerID ids.CustomerID, status order.Status) *order.Order {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	o, err := order.Rehydrate(id, customerID, status, []order.Item{
		{ProductID: "p-1", Quantity: 2, UnitPrice: money.MustFromInt(1500, "COP")},
	}, now, now)
	require.NoError(t, err)
	return o
}

// ============================================
// Product Store Tests
// ============================================

func TestMemoryProductStore_SaveAndFind(t *testing.T) {
	s := NewMemoryProductStore()
	ctx := context.Background()

	_, err := s.Save(ctx, testProduct(t, "p-1", 5, product.CategoryStorage))
	require.NoError(t, err)

	p, found, err := s.FindByID(ctx, "p-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 5, p.Stock())

	_, found, err = s.FindByID(ctx, "p-2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryProductStore_IsolatesCopies(t *testing.T) {
	s := NewMemoryProductStore()
	ctx := context.Background()
	original := testProduct(t, "p-1", 5, product.CategoryStorage)

	saved, err := s.Save(ctx, original)
	require.NoError(t, err)
	require.NoError(t, original.SetStock(1))
	require.NoError(t, saved.SetStock(2))

	p, _, err := s.FindByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock())
}

func TestMemoryProductStore_Queries(t *testing.T) {
	s := NewMemoryProductStore()
	ctx := context.Background()
	for _, p := range []*product.Product{
		testProduct(t, "p-1", 5, product.CategoryStorage),
		testProduct(t, "p-2", 50, product.CategoryStorage),
		testProduct(t, "p-3", 1, product.CategoryMonitors),
	} {
		_, err := s.Save(ctx, p)
		require.NoError(t, err)
	}

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids.ProductID("p-1"), all[0].ID)

	storage, err := s.FindByCategory(ctx, product.CategoryStorage)
	require.NoError(t, err)
	assert.Len(t, storage, 2)

	low, err := s.FindLowStock(ctx, product.LowStockThreshold)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	exists, err := s.ExistsByID(ctx, "p-3")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.DeleteByID(ctx, "p-3"))
	exists, err = s.ExistsByID(ctx, "p-3")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryProductStore_ConcurrentSaves(t *testing.T) {
	s := NewMemoryProductStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		p := testProduct(t, "p-1", i, product.CategoryOther)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Save(ctx, p)
			_, _, _ = s.FindByID(ctx, "p-1")
		}()
	}
	wg.Wait()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

// ============================================
// Customer Store Tests
// ============================================

func TestMemoryCustomerStore(t *testing.T) {
	s := NewMemoryCustomerStore()
	ctx := context.Background()
	c, err := customer.New("c-1", "Ana", "Gomez", "ana@example.com", "", "Cali")
	require.NoError(t, err)

	_, err = s.Save(ctx, c)
	require.NoError(t, err)

	found, ok, err := s.FindByID(ctx, "c-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cali", found.City)

	require.NoError(t, s.DeleteByID(ctx, "c-1"))
	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

// ============================================
// Order Store Tests
// ============================================

func TestMemoryOrderStore_Queries(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()
	for _, o := range []*order.Order{
		testOrder(t, "o-1", "c-1", order.StatusPending),
		testOrder(t, "o-2", "c-1", order.StatusShipping),
		testOrder(t, "o-3", "c-2", order.StatusPending),
	} {
		_, err := s.Save(ctx, o)
		require.NoError(t, err)
	}

	byCustomer, err := s.FindByCustomerID(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	pending, err := s.FindPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	shipping, err := s.FindByStatus(ctx, order.StatusShipping)
	require.NoError(t, err)
	require.Len(t, shipping, 1)
	assert.Equal(t, ids.OrderID("o-2"), shipping[0].ID)

	require.NoError(t, s.Delete(ctx, shipping[0]))
	require.NoError(t, s.DeleteByID(ctx, "o-3"))
	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, ids.OrderID("o-1"), all[0].ID)
}

func TestMemoryOrderStore_StoresSnapshot(t *testing.T) {
	s := NewMemoryOrderStore()
	ctx := context.Background()
	o := testOrder(t, "o-1", "c-1", order.StatusPending)

	_, err := s.Save(ctx, o)
	require.NoError(t, err)
	require.NoError(t, o.Confirm())

	stored, _, err := s.FindByID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, stored.Status())
}
