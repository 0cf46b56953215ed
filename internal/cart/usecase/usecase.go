package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/donarib/storefront-service/internal/cart"
	"github.com/donarib/storefront-service/internal/cart/dto"
	"github.com/donarib/storefront-service/internal/handoff"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order"
	orderdto "github.com/donarib/storefront-service/internal/order/dto"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type cartUseCase struct {
	store    cart.Store
	products cart.ProductFinder
	orders   order.UseCase
	composer *handoff.Composer
	notifier *handoff.Notifier
	clock    func() time.Time
	logger   logger.ZapLogger
}

// NewCartUseCase wires carts to checkout. notifier may be nil.
func NewCartUseCase(
	store cart.Store,
	products cart.ProductFinder,
	orders order.UseCase,
	composer *handoff.Composer,
	notifier *handoff.Notifier,
	log logger.ZapLogger,
) cart.UseCase {
	return &cartUseCase{
		store:    store,
		products: products,
		orders:   orders,
		composer: composer,
		notifier: notifier,
		clock:    time.Now,
		logger:   log,
	}
}

func (uc *cartUseCase) Create(ctx context.Context) (*cart.Cart, error) {
	c := cart.New(uuid.New().String())
	c.UpdatedAt = uc.clock()
	if err := uc.store.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return c, nil
}

func (uc *cartUseCase) Get(ctx context.Context, id string) (*cart.Cart, error) {
	c, err := uc.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, cart.ErrNotFound
	}
	return c, nil
}

func (uc *cartUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*cart.Cart, error) {
	c, err := uc.Get(ctx, input.CartID)
	if err != nil {
		return nil, err
	}

	p, err := uc.products.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	line, err := cart.NewLine(p, input.Size, input.Quantity)
	if err != nil {
		return nil, err
	}
	c.Add(line)
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *cartUseCase) Adjust(ctx context.Context, id, key string, delta int) (*cart.Cart, error) {
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Adjust(key, delta); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *cartUseCase) Remove(ctx context.Context, id, key string) (*cart.Cart, error) {
	c, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Remove(key); err != nil {
		return nil, err
	}
	if err := uc.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *cartUseCase) Clear(ctx context.Context, id string) error {
	c, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	c.Clear()
	return uc.save(ctx, c)
}

// Checkout turns the cart into a pending order and hands back the chat
// message the customer sends to the store. The cart is emptied but kept.
func (uc *cartUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*cart.CheckoutResult, error) {
	c, err := uc.Get(ctx, input.CartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrEmptyCart
	}

	o, err := uc.orders.PlaceOrder(ctx, &orderdto.PlaceOrderInput{
		Items:         c.OrderItems(),
		Customer:      input.Customer(),
		PaymentMethod: input.PaymentMethod,
		Status:        model.OrderStatusPending,
	})
	if err != nil {
		return nil, err
	}

	h := uc.composer.Compose(o, input.Lang)
	uc.notifier.Notify(ctx, handoff.Notification{
		OrderID:   o.ID,
		Message:   h.Message,
		Link:      h.Link,
		CreatedAt: o.CreatedAt,
	})

	c.Clear()
	if err := uc.save(ctx, c); err != nil {
		uc.logger.Warn("failed to clear checked out cart", zap.String("cart_id", c.ID), zap.Error(err))
	}
	return cart.NewCheckoutResult(o, h), nil
}

func (uc *cartUseCase) save(ctx context.Context, c *cart.Cart) error {
	c.UpdatedAt = uc.clock()
	if err := uc.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
