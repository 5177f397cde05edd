package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Mailer is implemented by email.Service.
type Mailer interface {
	SendOrderStatusChange(to, orderID, status string) error
	SendLowStockAlert(to, productName string, stock int) error
}

// Handler turns events consumed from Kafka into e-mails.
type Handler struct {
	mailer     Mailer
	opsAddress string
	logger     *zap.Logger
}

// NewHandler creates a handler that mails customers about their orders and
// opsAddress about low stock. An empty opsAddress disables stock e-mails.
func NewHandler(mailer Mailer, opsAddress string, logger *zap.Logger) *Handler {
	return &Handler{
		mailer:     mailer,
		opsAddress: opsAddress,
		logger:     logger,
	}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var event Event
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	switch event.Type {
	case EventOrderStatusChanged:
		return h.handleStatusChange(event)
	case EventLowStockAlert:
		return h.handleLowStock(event)
	default:
		h.logger.Debug("ignoring event", zap.String("type", event.Type), zap.String("id", event.ID))
		return nil
	}
}

func (h *Handler) handleStatusChange(event Event) error {
	var e OrderStatusChanged
	if err := json.Unmarshal(event.Data, &e); err != nil {
		return fmt.Errorf("decode %s: %w", event.Type, err)
	}
	if e.CustomerEmail == "" {
		h.logger.Warn("status change without customer email", zap.String("order_id", e.OrderID))
		return nil
	}

	if err := h.mailer.SendOrderStatusChange(e.CustomerEmail, e.OrderID, e.Status); err != nil {
		return err
	}
	h.logger.Info("status email sent",
		zap.String("order_id", e.OrderID),
		zap.String("status", e.Status),
		zap.String("to", e.CustomerEmail),
	)
	return nil
}

func (h *Handler) handleLowStock(event Event) error {
	if h.opsAddress == "" {
		return nil
	}
	var e LowStockAlert
	if err := json.Unmarshal(event.Data, &e); err != nil {
		return fmt.Errorf("decode %s: %w", event.Type, err)
	}

	if err := h.mailer.SendLowStockAlert(h.opsAddress, e.ProductName, e.Stock); err != nil {
		return err
	}
	h.logger.Info("low stock email sent", zap.String("product", e.ProductName), zap.Int("stock", e.Stock))
	return nil
}
