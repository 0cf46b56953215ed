package cart

import (
	"context"

	"github.com/donarib/storefront-service/internal/cart/dto"
	"github.com/donarib/storefront-service/internal/handoff"
	"github.com/donarib/storefront-service/internal/model"
)

type UseCase interface {
	Create(ctx context.Context) (*Cart, error)
	Get(ctx context.Context, id string) (*Cart, error)
	AddItem(ctx context.Context, input *dto.AddItemInput) (*Cart, error)
	Adjust(ctx context.Context, id, key string, delta int) (*Cart, error)
	Remove(ctx context.Context, id, key string) (*Cart, error)
	Clear(ctx context.Context, id string) error
	Checkout(ctx context.Context, input *dto.CheckoutInput) (*CheckoutResult, error)
}

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// CheckoutResult is what the customer needs to send the order to the store.
type CheckoutResult struct {
	Order   *model.Order `json:"order"`
	Message string       `json:"message"`
	Link    string       `json:"link"`
}

func NewCheckoutResult(o *model.Order, h handoff.Handoff) *CheckoutResult {
	return &CheckoutResult{Order: o, Message: h.Message, Link: h.Link}
}
