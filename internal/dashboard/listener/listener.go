package listener

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/internal/dashboard"
	"github.com/donarib/storefront-service/internal/order"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/stats"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type OrderEventListener struct {
	consumer  MessageReader
	stats     stats.UseCase
	dashboard dashboard.UseCase
	logger    logger.ZapLogger
	backoff   time.Duration
}

func NewOrderEventListener(consumer MessageReader, statsUC stats.UseCase, dashboardUC dashboard.UseCase, logger logger.ZapLogger) *OrderEventListener {
	return &OrderEventListener{
		consumer:  consumer,
		stats:     statsUC,
		dashboard: dashboardUC,
		logger:    logger,
		backoff:   time.Second,
	}
}

func (l *OrderEventListener) Start(ctx context.Context) {
	l.logger.Info("Starting order event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping order event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *OrderEventListener) processMessage(ctx context.Context, value []byte) {
	event, err := order.UnmarshalEvent(value)
	if err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.Type {
	case order.EventOrderCreated, order.EventOrderStatusChanged, order.EventOrderNoteUpdated:
	default:
		l.logger.Debug("Ignoring event", zap.String("type", string(event.Type)))
		return
	}

	l.logger.Info("Processing order event",
		zap.String("type", string(event.Type)),
		zap.String("order_id", event.OrderID),
		zap.String("status", string(event.Status)),
	)

	l.stats.Invalidate(ctx)
	if _, err := l.dashboard.Refresh(ctx); err != nil {
		l.logger.Error("Failed to refresh dashboard", zap.String("order_id", event.OrderID), zap.Error(err))
	}
}
