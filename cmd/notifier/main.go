package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/donarib/storefront-service/config"
	"github.com/donarib/storefront-service/internal/handoff"
	notifyListenerPkg "github.com/donarib/storefront-service/internal/handoff/listener"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/pkg/rabbitmq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// notifier drains the staff notification queue. Delivery to a real channel
// is out of scope; notifications are logged for whoever tails the service.
func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.Server.AppEnv == "dev",
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()

	rmq, err := rabbitmq.Dial(rabbitmq.Config{
		Host:     cfg.RabbitMQ.Host,
		Port:     cfg.RabbitMQ.Port,
		User:     cfg.RabbitMQ.User,
		Password: cfg.RabbitMQ.Password,
		VHost:    cfg.RabbitMQ.VHost,
		Exchange: cfg.RabbitMQ.Exchange,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to RabbitMQ", zap.Error(err))
	}
	defer rmq.Close()

	deliveries, err := rmq.Consume(cfg.RabbitMQ.Queue, handoff.RoutingKeyOrderCreated, "notifier")
	if err != nil {
		appLogger.Fatal("Could not consume notifications", zap.String("queue", cfg.RabbitMQ.Queue), zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	l := notifyListenerPkg.NewNotificationListener(deliveries, func(_ context.Context, n handoff.Notification) error {
		appLogger.Info("New order awaiting confirmation",
			zap.String("order_id", n.OrderID),
			zap.Time("created_at", n.CreatedAt),
			zap.String("link", n.Link),
			zap.String("message", n.Message),
		)
		return nil
	}, appLogger)

	appLogger.Info("Notifier started", zap.String("queue", cfg.RabbitMQ.Queue))
	l.Start(ctx)
}
