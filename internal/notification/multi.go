package notification

import (
	"context"
	"errors"
)

// Sink receives both kinds of notification.
type Sink interface {
	NotifyOrderStatusChange(ctx context.Context, orderID, customerEmail, newStatus string) error
	NotifyLowStockAlert(ctx context.Context, productName string, currentStock int) error
}

// Multi forwards every notification to all sinks, even when one fails.
type Multi []Sink

func (m Multi) NotifyOrderStatusChange(ctx context.Context, orderID, customerEmail, newStatus string) error {
	var errs []error
	for _, s := range m {
		if err := s.NotifyOrderStatusChange(ctx, orderID, customerEmail, newStatus); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyLowStockAlert(ctx context.Context, productName string, currentStock int) error {
	var errs []error
	for _, s := range m {
		if err := s.NotifyLowStockAlert(ctx, productName, currentStock); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ Sink = (*LogNotifier)(nil)
	_ Sink = (*KafkaNotifier)(nil)
	_ Sink = Multi(nil)
)
