package order

import (
	"context"
	"errors"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order/dto"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("order is no longer pending")
	ErrInvalidInput      = errors.New("invalid order")
)

type UseCase interface {
	PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error)
	CreateCounterOrder(ctx context.Context, input *dto.CounterOrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	ListRecentConfirmed(ctx context.Context, limit int) ([]model.Order, error)
	Confirm(ctx context.Context, id string) (*model.Order, error)
	Cancel(ctx context.Context, id string) (*model.Order, error)
	UpdateNote(ctx context.Context, id, note string) (*model.Order, error)
}
