package inventory

import (
	"context"
	"fmt"

	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/inventory"
	"github.com/Eros-Aphrodite/Inventory-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// StockAlert describes a stock change that was refused
type StockAlert struct {
	TenantID  string `json:"tenant_id"`
	ProductID string `json:"product_id"`
	SourceID  string `json:"source_id"`
	Movement  string `json:"movement"`
	Requested string `json:"requested"`
}

// StockAlertNotifier delivers stock alerts to whoever restocks
type StockAlertNotifier interface {
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockSkippedHandler reacts to sales that could not take stock because the
// product had run out
type StockSkippedHandler struct {
	logger   *zap.Logger
	notifier StockAlertNotifier
}

// NewStockSkippedHandler creates a new StockSkippedHandler
func NewStockSkippedHandler(logger *zap.Logger) *StockSkippedHandler {
	return &StockSkippedHandler{logger: logger}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockSkippedHandler) WithNotifier(notifier StockAlertNotifier) *StockSkippedHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockSkippedHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockSkipped}
}

// Handle processes a StockSkippedEvent
func (h *StockSkippedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	skipped, ok := event.(*inventory.StockSkippedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockSkipped, event.EventType())
	}

	alert := StockAlert{
		TenantID:  event.TenantID().String(),
		ProductID: event.AggregateID().String(),
		SourceID:  skipped.SourceID.String(),
		Movement:  string(skipped.Movement),
		Requested: skipped.Requested.String(),
	}
	h.logger.Warn("stock change skipped",
		zap.String("tenant_id", alert.TenantID),
		zap.String("product_id", alert.ProductID),
		zap.String("source_id", alert.SourceID),
		zap.String("movement", alert.Movement),
		zap.String("requested", alert.Requested),
	)

	if h.notifier != nil {
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			// a failed notification does not fail event handling
			h.logger.Error("failed to send stock alert",
				zap.String("product_id", alert.ProductID),
				zap.Error(err),
			)
		}
	}
	return nil
}

var _ shared.EventHandler = (*StockSkippedHandler)(nil)

// LoggingStockAlertNotifier writes alerts to the log
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{logger: logger}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(ctx context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("product_id", alert.ProductID),
		zap.String("movement", alert.Movement),
		zap.String("requested", alert.Requested),
	)
	return nil
}

var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
