package listener

import (
	"context"

	"github.com/donarib/storefront-service/internal/handoff"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// HandleFunc delivers a notification to staff. A returned error requeues it.
type HandleFunc func(ctx context.Context, n handoff.Notification) error

type NotificationListener struct {
	deliveries <-chan amqp.Delivery
	handle     HandleFunc
	logger     logger.ZapLogger
}

func NewNotificationListener(deliveries <-chan amqp.Delivery, handle HandleFunc, logger logger.ZapLogger) *NotificationListener {
	return &NotificationListener{
		deliveries: deliveries,
		handle:     handle,
		logger:     logger,
	}
}

func (l *NotificationListener) Start(ctx context.Context) {
	l.logger.Info("Starting notification listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping notification listener")
			return
		case d, ok := <-l.deliveries:
			if !ok {
				l.logger.Warn("Notification channel closed")
				return
			}
			l.process(ctx, d)
		}
	}
}

func (l *NotificationListener) process(ctx context.Context, d amqp.Delivery) {
	n, err := handoff.DecodeNotification(d.Body)
	if err != nil {
		l.logger.Error("Failed to decode notification", zap.Error(err))
		// poison message, drop it
		_ = d.Nack(false, false)
		return
	}

	if err := l.handle(ctx, n); err != nil {
		l.logger.Error("Failed to handle notification", zap.String("order_id", n.OrderID), zap.Error(err))
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
