package customer

import (
	"context"
	"strings"

	"github.com/example/arka-distribution/internal/domain"
	"github.com/example/arka-distribution/internal/domain/ids"
)

const EntityName = "customer"

// Repository is the persistence port for customers.
type Repository interface {
	Save(ctx context.Context, c *Customer) (*Customer, error)
	FindByID(ctx context.Context, id ids.CustomerID) (*Customer, bool, error)
	FindAll(ctx context.Context) ([]*Customer, error)
	ExistsByID(ctx context.Context, id ids.CustomerID) (bool, error)
	DeleteByID(ctx context.Context, id ids.CustomerID) error
}

type Customer struct {
	ID       ids.CustomerID
	Name     string
	LastName string
	Email    ids.Email
	Phone    string
	City     string
}

func New(id ids.CustomerID, name, lastName string, email ids.Email, phone, city string) (*Customer, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, domain.Invalid("id", "must not be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("name", "must not be empty")
	}
	if email == "" {
		return nil, domain.Invalid("email", "is required")
	}
	return &Customer{
		ID:       id,
		Name:     name,
		LastName: strings.TrimSpace(lastName),
		Email:    email,
		Phone:    strings.TrimSpace(phone),
		City:     strings.TrimSpace(city),
	}, nil
}

func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.Name
	}
	return c.Name + " " + c.LastName
}

func (c *Customer) Clone() *Customer {
	cp := *c
	return &cp
}
