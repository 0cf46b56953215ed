package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/cache"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/stats"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "stats:"

type statsUseCase struct {
	repo     stats.OrderReader
	cache    *cache.RedisClient
	i18n     *i18n.Translator
	location *time.Location
	cacheTTL time.Duration
	clock    func() time.Time
	logger   logger.ZapLogger
}

// NewStatsUseCase wires the report builder. cache may be nil.
func NewStatsUseCase(repo stats.OrderReader, cache *cache.RedisClient, tr *i18n.Translator, loc *time.Location, cacheTTL time.Duration, log logger.ZapLogger) stats.UseCase {
	return &statsUseCase{
		repo:     repo,
		cache:    cache,
		i18n:     tr,
		location: loc,
		cacheTTL: cacheTTL,
		clock:    time.Now,
		logger:   log,
	}
}

func (uc *statsUseCase) Now() time.Time {
	return uc.clock().In(uc.location)
}

func (uc *statsUseCase) Report(ctx context.Context, period stats.Period) *stats.PeriodReport {
	key := cacheKeyPrefix + string(period)
	if uc.cache != nil {
		var cached stats.PeriodReport
		err := uc.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached
		}
		if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("stats cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	since := period.Since(uc.Now())
	orders, err := uc.repo.FindByStatusSince(ctx, model.OrderStatusConfirmed, since)
	if err != nil {
		uc.logger.Error("failed to load orders for stats",
			zap.String("period", string(period)),
			zap.Time("since", since),
			zap.Error(err),
		)
		report := stats.EmptyReport()
		report.Degraded = true
		return &stats.PeriodReport{Period: period, Since: since, Report: report}
	}

	out := &stats.PeriodReport{Period: period, Since: since, Report: stats.Aggregate(orders)}

	if uc.cache != nil {
		if err := uc.cache.SetJSON(ctx, key, out, uc.cacheTTL); err != nil {
			uc.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out
}

func (uc *statsUseCase) Export(ctx context.Context, period stats.Period, w io.Writer, lang string) error {
	orders, err := uc.repo.FindByStatusSince(ctx, model.OrderStatusConfirmed, period.Since(uc.Now()))
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	return stats.WriteCSV(w, orders, uc.location, uc.i18n.Localizer(lang))
}

func (uc *statsUseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, cacheKeyPrefix+"*"); err != nil {
		uc.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}
