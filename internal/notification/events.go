// Package notification delivers order status changes and low-stock alerts to
// logs, Kafka and e-mail.
package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderStatusChanged = "OrderStatusChanged"
	EventLowStockAlert      = "LowStockAlert"
)

// Event is the envelope published to Kafka.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

type OrderStatusChanged struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	Status        string `json:"status"`
}

type LowStockAlert struct {
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
}

func NewEvent(eventType, key string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Key:       key,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}
