package store

import (
	"context"
	"sync"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
)

// table is an in-memory collection that keeps insertion order and stores copies,
// so callers never share state with the store.
type table[K comparable, V any] struct {
	mu    sync.RWMutex
	rows  map[K]V
	order []K
	clone func(V) V
}

func newTable[K comparable, V any](clone func(V) V) *table[K, V] {
	return &table[K, V]{rows: make(map[K]V), clone: clone}
}

func (t *table[K, V]) set(id K, v V) V {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.clone(v)
	return t.clone(v)
}

func (t *table[K, V]) get(id K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.rows[id]
	if !ok {
		var zero V
		return zero, false
	}
	return t.clone(v), true
}

func (t *table[K, V]) filter(keep func(V) bool) []V {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]V, 0, len(t.order))
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, t.clone(v))
		}
	}
	return out
}

func (t *table[K, V]) has(id K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.rows[id]
	return ok
}

func (t *table[K, V]) delete(id K) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, k := range t.order {
		if k == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// ============================================
// Products
// ============================================

// MemoryProductStore is an in-memory product.Repository
type MemoryProductStore struct {
	t *table[ids.ProductID, *product.Product]
}

func NewMemoryProductStore() *MemoryProductStore {
	return &MemoryProductStore{t: newTable[ids.ProductID]((*product.Product).Clone)}
}

func (s *MemoryProductStore) Save(_ context.Context, p *product.Product) (*product.Product, error) {
	return s.t.set(p.ID, p), nil
}

func (s *MemoryProductStore) FindByID(_ context.Context, id ids.ProductID) (*product.Product, bool, error) {
	p, ok := s.t.get(id)
	return p, ok, nil
}

func (s *MemoryProductStore) FindAll(_ context.Context) ([]*product.Product, error) {
	return s.t.filter(nil), nil
}

func (s *MemoryProductStore) FindByCategory(_ context.Context, category product.Category) ([]*product.Product, error) {
	return s.t.filter(func(p *product.Product) bool { return p.Category == category }), nil
}

func (s *MemoryProductStore) FindLowStock(_ context.Context, threshold int) ([]*product.Product, error) {
	return s.t.filter(func(p *product.Product) bool { return p.IsLowStock(threshold) }), nil
}

func (s *MemoryProductStore) ExistsByID(_ context.Context, id ids.ProductID) (bool, error) {
	return s.t.has(id), nil
}

func (s *MemoryProductStore) DeleteByID(_ context.Context, id ids.ProductID) error {
	s.t.delete(id)
	return nil
}

// ============================================
// Customers
// ============================================

// MemoryCustomerStore is an in-memory customer.Repository
type MemoryCustomerStore struct {
	t *table[ids.CustomerID, *customer.Customer]
}

func NewMemoryCustomerStore() *MemoryCustomerStore {
	return &MemoryCustomerStore{t: newTable[ids.CustomerID]((*customer.Customer).Clone)}
}

func (s *MemoryCustomerStore) Save(_ context.Context, c *customer.Customer) (*customer.Customer, error) {
	return s.t.set(c.ID, c), nil
}

func (s *MemoryCustomerStore) FindByID(_ context.Context, id ids.CustomerID) (*customer.Customer, bool, error) {
	c, ok := s.t.get(id)
	return c, ok, nil
}

func (s *MemoryCustomerStore) FindAll(_ context.Context) ([]*customer.Customer, error) {
	return s.t.filter(nil), nil
}

func (s *MemoryCustomerStore) ExistsByID(_ context.Context, id ids.CustomerID) (bool, error) {
	return s.t.has(id), nil
}

func (s *MemoryCustomerStore) DeleteByID(_ context.Context, id ids.CustomerID) error {
	s.t.delete(id)
	return nil
}

// ============================================
// Orders
// ============================================

// MemoryOrderStore is an in-memory order.Repository
type MemoryOrderStore struct {
	t *table[ids.OrderID, *order.Order]
}

func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{t: newTable[ids.OrderID]((*order.Order).Clone)}
}

func (s *MemoryOrderStore) Save(_ context.Context, o *order.Order) (*order.Order, error) {
	return s.t.set(o.ID, o), nil
}

func (s *MemoryOrderStore) FindByID(_ context.Context, id ids.OrderID) (*order.Order, bool, error) {
	o, ok := s.t.get(id)
	return o, ok, nil
}

func (s *MemoryOrderStore) FindByCustomerID(_ context.Context, customerID ids.CustomerID) ([]*order.Order, error) {
	return s.t.filter(func(o *order.Order) bool { return o.CustomerID == customerID }), nil
}

func (s *MemoryOrderStore) FindByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	return s.t.filter(func(o *order.Order) bool { return o.Status() == status }), nil
}

func (s *MemoryOrderStore) FindPending(ctx context.Context) ([]*order.Order, error) {
	return s.FindByStatus(ctx, order.StatusPending)
}

func (s *MemoryOrderStore) FindAll(_ context.Context) ([]*order.Order, error) {
	return s.t.filter(nil), nil
}

func (s *MemoryOrderStore) Delete(_ context.Context, o *order.Order) error {
	s.t.delete(o.ID)
	return nil
}

func (s *MemoryOrderStore) DeleteByID(_ context.Context, id ids.OrderID) error {
	s.t.delete(id)
	return nil
}

func (s *MemoryOrderStore) ExistsByID(_ context.Context, id ids.OrderID) (bool, error) {
	return s.t.has(id), nil
}

var (
	_ product.Repository  = (*MemoryProductStore)(nil)
	_ customer.Repository = (*MemoryCustomerStore)(nil)
	_ order.Repository    = (*MemoryOrderStore)(nil)
)
