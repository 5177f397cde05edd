package mocks

import (
	"context"
	"sync"

	"github.com/example/arka-distribution/internal/domain/customer"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/example/arka-distribution/internal/infrastructure/store"
)

// MockProductStore is an in-memory product.Repository that records saves
// and can be told to fail.
type MockProductStore struct {
	*store.MemoryProductStore

	mu        sync.Mutex
	SaveCalls []*product.Product
	SaveErr   error
	FindErr   error
}

func NewMockProductStore(seed ...*product.Product) *MockProductStore {
	m := &MockProductStore{MemoryProductStore: store.NewMemoryProductStore()}
	for _, p := range seed {
		m.MemoryProductStore.Save(context.Background(), p)
	}
	return m
}

func (m *MockProductStore) Save(ctx context.Context, p *product.Product) (*product.Product, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, p.Clone())
	m.mu.Unlock()

	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	return m.MemoryProductStore.Save(ctx, p)
}

func (m *MockProductStore) FindByID(ctx context.Context, id ids.ProductID) (*product.Product, bool, error) {
	if m.FindErr != nil {
		return nil, false, m.FindErr
	}
	return m.MemoryProductStore.FindByID(ctx, id)
}

func (m *MockProductStore) FindAll(ctx context.Context) ([]*product.Product, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.MemoryProductStore.FindAll(ctx)
}

func (m *MockProductStore) FindLowStock(ctx context.Context, threshold int) ([]*product.Product, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return m.MemoryProductStore.FindLowStock(ctx, threshold)
}

// Stock returns the stored stock of id, or -1 when the product is missing.
func (m *MockProductStore) Stock(id ids.ProductID) int {
	p, ok, _ := m.MemoryProductStore.FindByID(context.Background(), id)
	if !ok {
		return -1
	}
	return p.Stock()
}

// MockCustomerStore is an in-memory customer.Repository that records saves.
type MockCustomerStore struct {
	*store.MemoryCustomerStore

	mu        sync.Mutex
	SaveCalls []*customer.Customer
	SaveErr   error
	FindErr   error
}

func NewMockCustomerStore(seed ...*customer.Customer) *MockCustomerStore {
	m := &MockCustomerStore{MemoryCustomerStore: store.NewMemoryCustomerStore()}
	for _, c := range seed {
		m.MemoryCustomerStore.Save(context.Background(), c)
	}
	return m
}

func (m *MockCustomerStore) Save(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, c.Clone())
	m.mu.Unlock()

	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	return m.MemoryCustomerStore.Save(ctx, c)
}

func (m *MockCustomerStore) FindByID(ctx context.Context, id ids.CustomerID) (*customer.Customer, bool, error) {
	if m.FindErr != nil {
		return nil, false, m.FindErr
	}
	return m.MemoryCustomerStore.FindByID(ctx, id)
}

// MockOrderStore is an in-memory order.Repository that records saves.
type MockOrderStore struct {
	*store.MemoryOrderStore

	mu        sync.Mutex
	SaveCalls []*order.Order
	SaveErr   error
	FindErr   error
}

func NewMockOrderStore(seed ...*order.Order) *MockOrderStore {
	m := &MockOrderStore{MemoryOrderStore: store.NewMemoryOrderStore()}
	for _, o := range seed {
		m.MemoryOrderStore.Save(context.Background(), o)
	}
	return m
}

func (m *MockOrderStore) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, o.Clone())
	m.mu.Unlock()

	if m.SaveErr != nil {
		return nil, m.SaveErr
	}
	return m.MemoryOrderStore.Save(ctx, o)
}

func (m *MockOrderStore) FindByID(ctx context.Context, id ids.OrderID) (*order.Order, bool, error) {
	if m.FindErr != nil {
		return nil, false, m.FindErr
	}
	return m.MemoryOrderStore.FindByID(ctx, id)
}

var (
	_ product.Repository  = (*MockProductStore)(nil)
	_ customer.Repository = (*MockCustomerStore)(nil)
	_ order.Repository    = (*MockOrderStore)(nil)
)
