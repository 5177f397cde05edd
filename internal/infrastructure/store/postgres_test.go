package store

import (
	"database/sql"
	"testing"

	"github.com/example/arka-distribution/internal/domain/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow feeds fixed column values to scanProduct and scanCustomer.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *decimal.Decimal:
			*p = decimal.RequireFromString(r.values[i].(string))
		}
	}
	return nil
}

func TestScanProduct(t *testing.T) {
	row := fakeRow{values: []any{"p-1", "Monitor 27", "IPS", "1299900.5000", "COP", 4, "MONITORS"}}

	p, err := scanProduct(row)

	require.NoError(t, err)
	assert.Equal(t, "Monitor 27", p.Name)
	assert.Equal(t, product.CategoryMonitors, p.Category)
	assert.Equal(t, "1299900.5", p.Price.Amount().String())
	assert.Equal(t, 4, p.Stock())
}

func TestScanProduct_NoRows(t *testing.T) {
	_, err := scanProduct(fakeRow{err: sql.ErrNoRows})

	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScanProduct_InvalidStoredCategory(t *testing.T) {
	row := fakeRow{values: []any{"p-1", "Chair", "", "10", "COP", 1, "FURNITURE"}}

	_, err := scanProduct(row)

	assert.Error(t, err)
}

func TestScanCustomer(t *testing.T) {
	row := fakeRow{values: []any{"c-1", "Ana", "Gomez", "ana@example.com", "300", "Cali"}}

	c, err := scanCustomer(row)

	require.NoError(t, err)
	assert.Equal(t, "Ana Gomez", c.FullName())
}
