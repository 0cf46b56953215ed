package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/donarib/storefront-service/config"
	"github.com/donarib/storefront-service/internal/pkg/broker"
	"github.com/donarib/storefront-service/internal/pkg/cache"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/pkg/postgres"
	"github.com/donarib/storefront-service/internal/pkg/rabbitmq"
	"github.com/donarib/storefront-service/internal/pkg/search"
	"github.com/donarib/storefront-service/internal/pkg/server"

	"github.com/donarib/storefront-service/internal/auth"
	authH "github.com/donarib/storefront-service/internal/auth/handler"

	cartH "github.com/donarib/storefront-service/internal/cart/handler"
	cartRepoPkg "github.com/donarib/storefront-service/internal/cart/repository"
	cartUCPkg "github.com/donarib/storefront-service/internal/cart/usecase"

	"github.com/donarib/storefront-service/internal/dashboard"
	dashH "github.com/donarib/storefront-service/internal/dashboard/handler"
	dashListenerPkg "github.com/donarib/storefront-service/internal/dashboard/listener"
	dashUCPkg "github.com/donarib/storefront-service/internal/dashboard/usecase"

	"github.com/donarib/storefront-service/internal/handoff"

	ingH "github.com/donarib/storefront-service/internal/ingredient/handler"
	ingRepoPkg "github.com/donarib/storefront-service/internal/ingredient/repository"
	ingUCPkg "github.com/donarib/storefront-service/internal/ingredient/usecase"

	menuH "github.com/donarib/storefront-service/internal/menu/handler"
	menuUCPkg "github.com/donarib/storefront-service/internal/menu/usecase"

	"github.com/donarib/storefront-service/internal/order"
	orderH "github.com/donarib/storefront-service/internal/order/handler"
	orderRepoPkg "github.com/donarib/storefront-service/internal/order/repository"
	orderUCPkg "github.com/donarib/storefront-service/internal/order/usecase"

	prodH "github.com/donarib/storefront-service/internal/product/handler"
	prodRepoPkg "github.com/donarib/storefront-service/internal/product/repository"
	prodUCPkg "github.com/donarib/storefront-service/internal/product/usecase"

	statsH "github.com/donarib/storefront-service/internal/stats/handler"
	statsUCPkg "github.com/donarib/storefront-service/internal/stats/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	appLogger := newLogger(cfg)
	defer appLogger.Sync()

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		appLogger.Fatal("Unknown timezone", zap.String("timezone", cfg.Server.Timezone), zap.Error(err))
	}

	translator, err := i18n.New()
	if err != nil {
		appLogger.Fatal("Could not load translations", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(ctx, &postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	prodRepo := prodRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	ingRepo := ingRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(ctx, &cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka
	kafkaCfg := &broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}
	kafkaProducer := broker.NewProducer(kafkaCfg)
	defer kafkaProducer.Close()
	kafkaConsumer := broker.NewConsumer(kafkaCfg)
	defer kafkaConsumer.Close()
	appLogger.Info("Kafka configured", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.6 Initialize RabbitMQ
	var notifier *handoff.Notifier
	rmq, err := rabbitmq.Dial(rabbitmq.Config{
		Host:     cfg.RabbitMQ.Host,
		Port:     cfg.RabbitMQ.Port,
		User:     cfg.RabbitMQ.User,
		Password: cfg.RabbitMQ.Password,
		VHost:    cfg.RabbitMQ.VHost,
		Exchange: cfg.RabbitMQ.Exchange,
	})
	if err != nil {
		appLogger.Warn("Could not connect to RabbitMQ (staff notifications disabled)", zap.Error(err))
	} else {
		defer rmq.Close()
		notifier = handoff.NewNotifier(rmq, appLogger)
		appLogger.Info("Connected to RabbitMQ", zap.String("exchange", cfg.RabbitMQ.Exchange))
	}

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(ctx, &search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to SQL)", zap.Error(err))
		esClient = nil
	} else {
		if err := prodUCPkg.EnsureIndex(ctx, esClient); err != nil {
			appLogger.Warn("Could not create product index", zap.Error(err))
		}
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	var events order.EventPublisher = kafkaProducer
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, esClient, appLogger)
	menuUC := menuUCPkg.NewMenuUseCase(prodUC, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, prodRepo, events, appLogger)
	composer := handoff.NewComposer(translator, cfg.Store.Name, cfg.Store.WhatsAppPhone)
	cartUC := cartUCPkg.NewCartUseCase(
		cartRepoPkg.NewRedisStore(redisClient, cfg.Store.CartTTL),
		prodRepo,
		orderUC,
		composer,
		notifier,
		appLogger,
	)
	ingUC := ingUCPkg.NewIngredientUseCase(ingRepo, redisClient, appLogger)
	statsUC := statsUCPkg.NewStatsUseCase(orderRepo, redisClient, translator, loc, cfg.Stats.CacheTTL, appLogger)
	hub := dashboard.NewHub()
	dashUC := dashUCPkg.NewDashboardUseCase(orderRepo, hub, loc, appLogger)

	// 6.5 Initialize Listeners
	dashListener := dashListenerPkg.NewOrderEventListener(kafkaConsumer, statsUC, dashUC, appLogger)
	go dashListener.Start(ctx)

	// 7. Initialize Handlers
	authenticator := auth.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.AdminPasswordHash, cfg.Auth.SessionTTL)
	if cfg.Auth.AdminPasswordHash == "" {
		appLogger.Warn("ADMIN_PASSWORD_HASH is empty, admin login is disabled")
	}
	authHandler := authH.NewAuthHandler(authenticator, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	menuHandler := menuH.NewMenuHandler(menuUC, appLogger)
	cartHandler := cartH.NewCartHandler(cartUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	ingHandler := ingH.NewIngredientHandler(ingUC, appLogger)
	statsHandler := statsH.NewStatsHandler(statsUC, appLogger)
	dashHandler := dashH.NewDashboardHandler(dashUC, appLogger)

	// 8. Routes
	app := server.New("storefront-service", appLogger)
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Get("/menu", menuHandler.GetMenu)
	api.Get("/products/search", prodHandler.Search)

	carts := api.Group("/carts")
	carts.Post("", cartHandler.CreateCart)
	carts.Get("/:id", cartHandler.GetCart)
	carts.Delete("/:id", cartHandler.ClearCart)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Patch("/:id/items/:key", cartHandler.AdjustItem)
	carts.Delete("/:id/items/:key", cartHandler.RemoveItem)
	carts.Post("/:id/checkout", cartHandler.Checkout)

	api.Post("/admin/login", authHandler.Login)
	// Registered ahead of the admin group so its query-token middleware runs instead.
	api.Get("/admin/dashboard/stream", authHandler.RequireStaffStream(), dashHandler.Stream)
	admin := api.Group("/admin", authHandler.RequireStaff())

	admin.Get("/products", prodHandler.ListProducts)
	admin.Post("/products", prodHandler.CreateProduct)
	admin.Get("/products/:id", prodHandler.GetProduct)
	admin.Put("/products/:id", prodHandler.UpdateProduct)
	admin.Delete("/products/:id", prodHandler.DeleteProduct)
	admin.Post("/products/:id/toggle", prodHandler.ToggleActive)

	admin.Get("/orders", orderHandler.ListOrders)
	admin.Get("/orders/recent", orderHandler.ListRecent)
	admin.Get("/orders/:id", orderHandler.GetOrder)
	admin.Post("/orders/:id/confirm", orderHandler.Confirm)
	admin.Post("/orders/:id/cancel", orderHandler.Cancel)
	admin.Put("/orders/:id/note", orderHandler.UpdateNote)
	admin.Post("/counter-orders", orderHandler.CreateCounterOrder)

	admin.Get("/ingredients", ingHandler.ListIngredients)
	admin.Post("/ingredients", ingHandler.CreateIngredient)
	admin.Get("/ingredients/low-stock", ingHandler.ListLowStock)
	admin.Put("/ingredients/:id", ingHandler.UpdateIngredient)
	admin.Delete("/ingredients/:id", ingHandler.DeleteIngredient)
	admin.Post("/ingredients/:id/adjust", ingHandler.AdjustQuantity)

	admin.Get("/stats", statsHandler.GetReport)
	admin.Get("/stats/export", statsHandler.Export)

	admin.Get("/dashboard", dashHandler.GetSnapshot)

	// 9. Start gRPC health server
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", withColon(cfg.Server.HealthGRPCPort))
	if err != nil {
		appLogger.Fatal("failed to listen", zap.Error(err))
	}
	go func() {
		appLogger.Info("Starting gRPC health server", zap.String("port", cfg.Server.HealthGRPCPort))
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("gRPC server stopped", zap.Error(err))
		}
	}()

	// 10. Start HTTP server
	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", cfg.Server.HTTPPort))
		if err := app.Listen(withColon(cfg.Server.HTTPPort)); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()
	hub.Close()
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("HTTP shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}

func newLogger(cfg *config.Config) logger.ZapLogger {
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}
	return logger.NewZapLogger(logConfig)
}

func withColon(port string) string {
	if !strings.HasPrefix(port, ":") {
		return ":" + port
	}
	return port
}
