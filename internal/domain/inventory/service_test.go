package inventory

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/example/arka-distribution/internal/infrastructure/store/mocks"
	notifymocks "github.com/example/arka-distribution/internal/notification/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestInventoryService(seed ...*product.Product) (*Service, *mocks.MockProductStore, *notifymocks.MockNotifier) {
	products := mocks.NewMockProductStore(seed...)
	notifier := notifymocks.NewMockNotifier()
	return NewService(products, notifier, zap.NewNop()), products, notifier
}

func testProduct(t *testing.T, id ids.ProductID, name string, stock int) *product.Product {
	t.Helper()
	p, err := product.New(id, name, "", money.MustFromInt(10000, "COP"), stock, product.CategoryStorage)
	require.NoError(t, err)
	return p
}

// ============================================
// Register Product Tests
// ============================================

func TestService_RegisterProduct_Success(t *testing.T) {
	service, products, _ := newTestInventoryService()
	ctx := context.Background()

	p, err := service.RegisterProduct(ctx, "SSD 1TB", "NVMe", money.MustFromInt(320000, "COP"), 25, "storage")

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, product.CategoryStorage, p.Category)
	assert.Equal(t, 25, p.Stock())
	require.Len(t, products.SaveCalls, 1)
	assert.Equal(t, p.ID, products.SaveCalls[0].ID)
}

func TestService_RegisterProduct_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		stock    int
		category string
	}{
		{"unknown category", "SSD", 1, "FURNITURE"},
		{"blank name", "  ", 1, "STORAGE"},
		{"negative stock", "SSD", -1, "STORAGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, products, _ := newTestInventoryService()

			_, err := service.RegisterProduct(context.Background(), tt.product, "", money.MustFromInt(1, "COP"), tt.stock, tt.category)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, products.SaveCalls)
		})
	}
}

func TestService_RegisterProduct_UnknownCategoryField(t *testing.T) {
	service, _, _ := newTestInventoryService()

	_, err := service.RegisterProduct(context.Background(), "Desk", "", money.MustFromInt(1, "COP"), 1, "FURNITURE")

	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "category", validation.Field)
}

// ============================================
// Lookup Tests
// ============================================

func TestService_GetProductByID_NotFound(t *testing.T) {
	service, _, _ := newTestInventoryService()

	_, err := service.GetProductByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_GetProductsByCategory(t *testing.T) {
	keyboard, err := product.New("p-1", "Keyboard", "", money.MustFromInt(1, "COP"), 5, product.CategoryPeripherals)
	require.NoError(t, err)
	service, _, _ := newTestInventoryService(keyboard, testProduct(t, "p-2", "SSD", 5))

	found, err := service.GetProductsByCategory(context.Background(), "peripherals")

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ids.ProductID("p-1"), found[0].ID)
}

// ============================================
// Stock Tests
// ============================================

func TestService_UpdateStock(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))
	ctx := context.Background()

	p, err := service.UpdateStock(ctx, "p-1", 40)

	require.NoError(t, err)
	assert.Equal(t, 40, p.Stock())
	assert.Equal(t, 40, products.Stock("p-1"))
}

func TestService_UpdateStock_Negative(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))

	_, err := service.UpdateStock(context.Background(), "p-1", -3)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, products.SaveCalls)
	assert.Equal(t, 5, products.Stock("p-1"))
}

func TestService_UpdateStock_NotFound(t *testing.T) {
	service, _, _ := newTestInventoryService()

	_, err := service.UpdateStock(context.Background(), "missing", 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ReduceStock(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))
	ctx := context.Background()

	_, err := service.ReduceStock(ctx, "p-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, products.Stock("p-1"))

	_, err = service.ReduceStock(ctx, "p-1", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, products.Stock("p-1"))
}

func TestService_IncreaseStock(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))

	_, err := service.IncreaseStock(context.Background(), "p-1", 7)

	require.NoError(t, err)
	assert.Equal(t, 12, products.Stock("p-1"))
}

func TestService_IncreaseStock_Overflow(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))

	_, err := service.IncreaseStock(context.Background(), "p-1", math.MaxInt)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, products.SaveCalls)
	assert.Equal(t, 5, products.Stock("p-1"))
}

func TestService_SaveError(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))
	products.SaveErr = errors.New("db down")

	_, err := service.IncreaseStock(context.Background(), "p-1", 1)

	assert.EqualError(t, err, "db down")
}

// ============================================
// Restock Report Tests
// ============================================

func TestService_GetLowStockProducts(t *testing.T) {
	service, _, _ := newTestInventoryService(
		testProduct(t, "p-1", "Cable", 9),
		testProduct(t, "p-2", "Mouse", 10),
	)

	low, err := service.GetLowStockProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Cable", low[0].Name)
}

func TestService_GenerateRestockReport(t *testing.T) {
	service, _, notifier := newTestInventoryService(
		testProduct(t, "p-1", "Cable", 5),
		testProduct(t, "p-2", "Mouse", 3),
		testProduct(t, "p-3", "Monitor", 50),
	)

	reported, err := service.GenerateRestockReport(context.Background())

	require.NoError(t, err)
	assert.Len(t, reported, 2)
	require.Len(t, notifier.LowStockAlerts, 2)
	assert.ElementsMatch(t, []notifymocks.LowStockAlert{
		{ProductName: "Cable", CurrentStock: 5},
		{ProductName: "Mouse", CurrentStock: 3},
	}, notifier.LowStockAlerts)
}

func TestService_GenerateRestockReport_NothingLow(t *testing.T) {
	service, _, notifier := newTestInventoryService(testProduct(t, "p-1", "Monitor", 50))

	reported, err := service.GenerateRestockReport(context.Background())

	require.NoError(t, err)
	assert.Empty(t, reported)
	assert.Empty(t, notifier.LowStockAlerts)
}

func TestService_GenerateRestockReport_NotifierFailureIgnored(t *testing.T) {
	service, _, notifier := newTestInventoryService(
		testProduct(t, "p-1", "Cable", 1),
		testProduct(t, "p-2", "Mouse", 2),
	)
	notifier.Err = errors.New("broker unavailable")

	reported, err := service.GenerateRestockReport(context.Background())

	require.NoError(t, err)
	assert.Len(t, reported, 2)
	assert.Len(t, notifier.LowStockAlerts, 2)
}

// ============================================
// Delete Tests
// ============================================

func TestService_DeleteProduct(t *testing.T) {
	service, products, _ := newTestInventoryService(testProduct(t, "p-1", "SSD", 5))
	ctx := context.Background()

	require.NoError(t, service.DeleteProduct(ctx, "p-1"))
	assert.Equal(t, -1, products.Stock("p-1"))

	err := service.DeleteProduct(ctx, "p-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
