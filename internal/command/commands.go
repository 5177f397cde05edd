package command

// Product Commands
type RegisterProduct struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock"`
	Category    string `json:"category"`
}

type UpdateStock struct {
	ProductID string `json:"-"`
	Stock     int    `json:"stock"`
}

// AdjustStock moves stock up or down by Quantity units.
type AdjustStock struct {
	ProductID string `json:"-"`
	Quantity  int    `json:"quantity"`
}

// Customer Commands
type RegisterCustomer struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
}

// Order Commands
type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateOrder struct {
	CustomerID string      `json:"customer_id"`
	Items      []OrderLine `json:"items"`
}

type AddOrderItem struct {
	OrderID   string `json:"-"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type RemoveOrderItem struct {
	OrderID   string `json:"-"`
	ProductID string `json:"-"`
}
