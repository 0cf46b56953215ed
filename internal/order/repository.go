package order

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	// FindByStatus returns newest first; limit <= 0 means no limit.
	FindByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	FindByStatusSince(ctx context.Context, status model.OrderStatus, since time.Time) ([]model.Order, error)

	// UpdateStatus moves an order from one status to another and reports
	// whether a row matched both the id and the expected current status.
	UpdateStatus(ctx context.Context, id string, from, to model.OrderStatus, at time.Time) (bool, error)
	UpdateNote(ctx context.Context, id, note string, at time.Time) (bool, error)
}
