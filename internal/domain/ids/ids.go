// Package ids holds the validated identifier types shared by the domain packages.
package ids

import (
	"regexp"
	"strings"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/google/uuid"
)

type (
	ProductID  string
	CustomerID string
	OrderID    string
	Email      string
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func NewProductID(value string) (ProductID, error) {
	v, err := nonBlank("product_id", value)
	return ProductID(v), err
}

func NewCustomerID(value string) (CustomerID, error) {
	v, err := nonBlank("customer_id", value)
	return CustomerID(v), err
}

func NewOrderID(value string) (OrderID, error) {
	v, err := nonBlank("order_id", value)
	return OrderID(v), err
}

func NewEmail(value string) (Email, error) {
	v := strings.TrimSpace(value)
	if !emailPattern.MatchString(v) {
		return "", domain.Invalid("email", "malformed address")
	}
	return Email(v), nil
}

func NextProductID() ProductID   { return ProductID(uuid.New().String()) }
func NextCustomerID() CustomerID { return CustomerID(uuid.New().String()) }
func NextOrderID() OrderID       { return OrderID(uuid.New().String()) }

func (id ProductID) String() string  { return string(id) }
func (id CustomerID) String() string { return string(id) }
func (id OrderID) String() string    { return string(id) }
func (e Email) String() string       { return string(e) }

func nonBlank(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", domain.Invalid(field, "must not be empty")
	}
	return v, nil
}
