package ids

import (
	"testing"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductID_Trims(t *testing.T) {
	id, err := NewProductID("  prod-001 ")

	require.NoError(t, err)
	assert.Equal(t, ProductID("prod-001"), id)
}

func TestIdentifiers_RejectBlank(t *testing.T) {
	for _, value := range []string{"", "   ", "\t\n"} {
		_, err := NewProductID(value)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = NewCustomerID(value)
		assert.ErrorIs(t, err, domain.ErrValidation)

		_, err = NewOrderID(value)
		assert.ErrorIs(t, err, domain.ErrValidation)
	}
}

func TestIdentifiers_EqualByValue(t *testing.T) {
	a, _ := NewCustomerID("cust-1")
	b, _ := NewCustomerID(" cust-1")

	assert.Equal(t, a, b)
}

func TestNextIDs_AreUnique(t *testing.T) {
	assert.NotEqual(t, NextOrderID(), NextOrderID())
	assert.NotEmpty(t, NextProductID())
	assert.NotEmpty(t, NextCustomerID())
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"simple", "juan@example.com", true},
		{"plus and dots", "ana.maria+shop@mail.example.co", true},
		{"trimmed", "  juan@example.com ", true},
		{"missing at", "juan.example.com", false},
		{"missing tld", "juan@example", false},
		{"short tld", "juan@example.c", false},
		{"empty", "", false},
		{"spaces inside", "juan perez@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.value)
			if tt.valid {
				require.NoError(t, err)
				assert.NotContains(t, email.String(), " ")
				return
			}
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
