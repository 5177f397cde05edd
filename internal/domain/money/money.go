package money

import (
	"fmt"
	"strings"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for the total of an order with no items.
const DefaultCurrency = "COP"

// Money is an immutable non-negative amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

func New(amount decimal.Decimal, currency string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domain.Invalid("amount", "must not be negative")
	}
	code, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: code}, nil
}

// Parse builds Money from a decimal string such as "100000" or "19.99".
func Parse(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, domain.Invalid("amount", fmt.Sprintf("%q is not a decimal number", amount))
	}
	return New(d, currency)
}

func FromInt(amount int64, currency string) (Money, error) {
	return New(decimal.NewFromInt(amount), currency)
}

// MustFromInt panics on invalid input; meant for tests and constants.
func MustFromInt(amount int64, currency string) Money {
	m, err := FromInt(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func Zero(currency string) Money {
	code, err := normalizeCurrency(currency)
	if err != nil {
		code = DefaultCurrency
	}
	return Money{amount: decimal.Zero, currency: code}
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, domain.Invalid("amount", "subtraction result cannot be negative")
	}
	return Money{amount: result, currency: m.currency}, nil
}

func (m Money) Multiply(multiplier int) (Money, error) {
	if multiplier < 0 {
		return Money{}, domain.Invalid("multiplier", "must not be negative")
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(multiplier))), currency: m.currency}, nil
}

// Equal compares amounts numerically, so 10 and 10.00 are equal.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.currency + " " + m.amount.String()
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return domain.Invalid("currency", fmt.Sprintf("mismatch %s vs %s", m.currency, other.currency))
	}
	return nil
}

func normalizeCurrency(currency string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if len(code) != 3 {
		return "", domain.Invalid("currency", fmt.Sprintf("%q is not an ISO 4217 code", currency))
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", domain.Invalid("currency", fmt.Sprintf("%q is not an ISO 4217 code", currency))
		}
	}
	return code, nil
}
