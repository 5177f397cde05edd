package mocks

import (
	"context"
	"sync"
)

// MockNotifier records every notification it receives.
type MockNotifier struct {
	mu sync.Mutex

	StatusChanges  []StatusChange
	LowStockAlerts []LowStockAlert

	// Err is returned from every call after it is recorded.
	Err error
}

type StatusChange struct {
	OrderID       string
	CustomerEmail string
	NewStatus     string
}

type LowStockAlert struct {
	ProductName  string
	CurrentStock int
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) NotifyOrderStatusChange(_ context.Context, orderID, customerEmail, newStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StatusChanges = append(m.StatusChanges, StatusChange{
		OrderID:       orderID,
		CustomerEmail: customerEmail,
		NewStatus:     newStatus,
	})
	return m.Err
}

func (m *MockNotifier) NotifyLowStockAlert(_ context.Context, productName string, currentStock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LowStockAlerts = append(m.LowStockAlerts, LowStockAlert{
		ProductName:  productName,
		CurrentStock: currentStock,
	})
	return m.Err
}
