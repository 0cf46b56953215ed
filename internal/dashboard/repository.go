package dashboard

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/internal/model"
)

// OrderReader is the slice of the order repository the dashboard reads.
type OrderReader interface {
	FindByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	FindByStatusSince(ctx context.Context, status model.OrderStatus, since time.Time) ([]model.Order, error)
}
