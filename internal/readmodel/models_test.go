package readmodel

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/example/arka-distribution/internal/domain/money"
	"github.com/example/arka-distribution/internal/domain/order"
	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromProduct(t *testing.T) {
	p, err := product.New("p-1", "Mouse", "wireless", money.MustFromInt(89900, "COP"), 3, product.CategoryPeripherals)
	require.NoError(t, err)

	rm := FromProduct(p)

	assert.Equal(t, "89900", rm.Price)
	assert.Equal(t, "COP", rm.Currency)
	assert.Equal(t, "PERIPHERALS", rm.Category)
	assert.True(t, rm.LowStock)
}

func TestFromOrder(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	o, err := order.Rehydrate("o-1", "c-1", order.StatusConfirmed, []order.Item{
		{ProductID: "p-1", Quantity: 3, UnitPrice: money.MustFromInt(2500, "COP")},
	}, now, now)
	require.NoError(t, err)

	rm := FromOrder(o)

	assert.Equal(t, "CONFIRMED", rm.Status)
	assert.Equal(t, "7500", rm.Total)
	require.Len(t, rm.Items, 1)
	assert.Equal(t, "7500", rm.Items[0].Subtotal)

	data, err := json.Marshal(rm)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"customer_id":"c-1"`)
}

func TestFromOrders_EmptyIsNotNil(t *testing.T) {
	rms := FromOrders(nil)

	assert.NotNil(t, rms)
	assert.Empty(t, rms)
}
