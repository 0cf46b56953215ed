package main

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/config"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/pkg/postgres"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: cfg.Server.AppEnv == "dev",
		Encoding:      cfg.Logger.Encoding,
		Level:         cfg.Logger.Level,
	})
	defer appLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.NewPostgres(ctx, &postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: time.Minute,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()

	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		appLogger.Fatal("Migration failed", zap.Strings("applied", applied), zap.Error(err))
	}
	if len(applied) == 0 {
		appLogger.Info("Schema is up to date")
		return
	}
	appLogger.Info("Migrations applied", zap.Strings("versions", applied))
}
