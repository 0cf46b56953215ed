package stats

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/internal/model"
)

// OrderReader is the slice of the order store statistics need.
type OrderReader interface {
	FindByStatusSince(ctx context.Context, status model.OrderStatus, since time.Time) ([]model.Order, error)
}
