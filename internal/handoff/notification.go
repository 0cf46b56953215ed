package handoff

import (
	"context"
	"encoding/json"
	"time"

	"github.com/donarib/storefront-service/internal/pkg/logger"
	"go.uber.org/zap"
)

const RoutingKeyOrderCreated = "order.created"

// Notification tells staff a customer is about to message the store.
type Notification struct {
	OrderID   string    `json:"order_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

func DecodeNotification(body []byte) (Notification, error) {
	var n Notification
	err := json.Unmarshal(body, &n)
	return n, err
}

// Publisher is satisfied by the RabbitMQ client.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type Notifier struct {
	pub    Publisher
	logger logger.ZapLogger
}

func NewNotifier(pub Publisher, log logger.ZapLogger) *Notifier {
	return &Notifier{pub: pub, logger: log}
}

// Notify publishes n. Errors are logged; the order is already stored.
func (n *Notifier) Notify(ctx context.Context, note Notification) {
	if n == nil || n.pub == nil {
		return
	}
	body, err := json.Marshal(note)
	if err != nil {
		n.logger.Error("failed to encode notification", zap.String("order_id", note.OrderID), zap.Error(err))
		return
	}
	if err := n.pub.Publish(ctx, RoutingKeyOrderCreated, body); err != nil {
		n.logger.Error("failed to publish notification", zap.String("order_id", note.OrderID), zap.Error(err))
	}
}
