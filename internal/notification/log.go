package notification

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

func (n *LogNotifier) NotifyOrderStatusChange(_ context.Context, orderID, customerEmail, newStatus string) error {
	n.logger.Info("order status changed",
		zap.String("order_id", orderID),
		zap.String("customer_email", customerEmail),
		zap.String("status", newStatus),
	)
	return nil
}

func (n *LogNotifier) NotifyLowStockAlert(_ context.Context, productName string, currentStock int) error {
	n.logger.Warn("low stock",
		zap.String("product", productName),
		zap.Int("stock", currentStock),
	)
	return nil
}
