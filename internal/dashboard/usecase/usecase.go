package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/donarib/storefront-service/internal/dashboard"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"go.uber.org/zap"
)

type dashboardUseCase struct {
	repo   dashboard.OrderReader
	hub    *dashboard.Hub
	loc    *time.Location
	clock  func() time.Time
	logger logger.ZapLogger

	// serializes build and publish so a higher seq never carries older data
	mu sync.Mutex
}

func NewDashboardUseCase(repo dashboard.OrderReader, hub *dashboard.Hub, loc *time.Location, log logger.ZapLogger) dashboard.UseCase {
	return &dashboardUseCase{
		repo:   repo,
		hub:    hub,
		loc:    loc,
		clock:  time.Now,
		logger: log,
	}
}

func (uc *dashboardUseCase) Refresh(ctx context.Context) (*dashboard.Snapshot, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := uc.clock().In(uc.loc)
	week, err := uc.repo.FindByStatusSince(ctx, model.OrderStatusConfirmed, dashboard.WeekStart(now))
	if err != nil {
		return nil, fmt.Errorf("load week orders: %w", err)
	}
	pending, err := uc.repo.FindByStatus(ctx, model.OrderStatusPending, 0)
	if err != nil {
		return nil, fmt.Errorf("load pending orders: %w", err)
	}
	recent, err := uc.repo.FindByStatus(ctx, model.OrderStatusConfirmed, dashboard.RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent orders: %w", err)
	}

	s := dashboard.Build(now, week, pending, recent)
	uc.hub.Publish(s)
	uc.logger.Debug("dashboard refreshed",
		zap.Uint64("seq", s.Seq),
		zap.Int("pending", len(s.Pending)),
		zap.Int("subscribers", uc.hub.Subscribers()),
	)
	return s, nil
}

func (uc *dashboardUseCase) Subscribe() (*dashboard.Snapshot, <-chan *dashboard.Snapshot, func()) {
	updates, cancel := uc.hub.Subscribe()
	return uc.hub.Last(), updates, cancel
}
