package notification

import (
	"context"
	"fmt"
)

// Publisher is implemented by kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, key string, value any) error
}

// KafkaNotifier publishes notifications as Event envelopes.
type KafkaNotifier struct {
	publisher Publisher
}

func NewKafkaNotifier(publisher Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher}
}

func (n *KafkaNotifier) NotifyOrderStatusChange(ctx context.Context, orderID, customerEmail, newStatus string) error {
	return n.publish(ctx, EventOrderStatusChanged, orderID, OrderStatusChanged{
		OrderID:       orderID,
		CustomerEmail: customerEmail,
		Status:        newStatus,
	})
}

func (n *KafkaNotifier) NotifyLowStockAlert(ctx context.Context, productName string, currentStock int) error {
	return n.publish(ctx, EventLowStockAlert, productName, LowStockAlert{
		ProductName: productName,
		Stock:       currentStock,
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, eventType, key string, payload any) error {
	event, err := NewEvent(eventType, key, payload)
	if err != nil {
		return fmt.Errorf("build %s event: %w", eventType, err)
	}
	if err := n.publisher.Publish(ctx, key, event); err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	return nil
}
