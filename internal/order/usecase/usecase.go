package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/donarib/storefront-service/internal/cart"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order"
	"github.com/donarib/storefront-service/internal/order/dto"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultRecentLimit = 10
	publishTimeout     = 5 * time.Second
)

type orderUseCase struct {
	repo     order.Repository
	products order.ProductFinder
	events   order.EventPublisher
	clock    func() time.Time
	logger   logger.ZapLogger
}

// NewOrderUseCase builds the order service. events may be nil, in which case
// changes are not announced.
func NewOrderUseCase(repo order.Repository, products order.ProductFinder, events order.EventPublisher, log logger.ZapLogger) order.UseCase {
	return &orderUseCase{
		repo:     repo,
		products: products,
		events:   events,
		clock:    time.Now,
		logger:   log,
	}
}

func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: %w", order.ErrInvalidInput, cart.ErrEmptyCart)
	}
	total := decimal.Zero
	for _, it := range input.Items {
		if it.Quantity <= 0 || !it.Size.Valid() || it.Name == "" {
			return nil, fmt.Errorf("%w: bad line %q", order.ErrInvalidInput, it.Name)
		}
		total = total.Add(it.Subtotal())
	}
	if err := input.Customer.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", order.ErrInvalidInput, err)
	}
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", order.ErrInvalidInput, input.PaymentMethod)
	}
	if input.Status != model.OrderStatusPending && input.Status != model.OrderStatusConfirmed {
		return nil, fmt.Errorf("%w: orders start pending or confirmed", order.ErrInvalidInput)
	}

	now := uc.clock()
	o := &model.Order{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Items:         input.Items,
		Total:         total,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
	}
	o.SetCustomer(input.Customer)

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	uc.logger.Info("order placed",
		zap.String("order_id", o.ID),
		zap.String("status", string(o.Status)),
		zap.String("total", o.Total.String()),
	)
	uc.publish(ctx, order.EventOrderCreated, o)
	return o, nil
}

// CreateCounterOrder records a walk-in sale. Prices come from the catalog at
// the time of sale and the order is confirmed immediately.
func (uc *orderUseCase) CreateCounterOrder(ctx context.Context, input *dto.CounterOrderInput) (*model.Order, error) {
	c := cart.New("")
	for _, it := range input.Items {
		p, err := uc.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: product %s not found", order.ErrInvalidInput, it.ProductID)
		}
		line, err := cart.NewLine(p, it.Size, it.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", order.ErrInvalidInput, p.Name, err)
		}
		c.Add(line)
	}

	return uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         c.OrderItems(),
		Customer:      model.PickupCustomer(input.CustomerName),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusConfirmed,
	})
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", order.ErrInvalidInput, status)
	}
	return uc.repo.FindByStatus(ctx, status, 0)
}

func (uc *orderUseCase) ListRecentConfirmed(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return uc.repo.FindByStatus(ctx, model.OrderStatusConfirmed, limit)
}

func (uc *orderUseCase) Confirm(ctx context.Context, id string) (*model.Order, error) {
	return uc.transition(ctx, id, model.OrderStatusConfirmed)
}

func (uc *orderUseCase) Cancel(ctx context.Context, id string) (*model.Order, error) {
	return uc.transition(ctx, id, model.OrderStatusCancelled)
}

// transition only ever leaves pending. The update is conditional on the
// current status so a concurrent second decision finds no row to change.
func (uc *orderUseCase) transition(ctx context.Context, id string, to model.OrderStatus) (*model.Order, error) {
	ok, err := uc.repo.UpdateStatus(ctx, id, model.OrderStatusPending, to, uc.clock())
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: order is %s", order.ErrInvalidTransition, o.Status)
	}

	uc.logger.Info("order status changed", zap.String("order_id", id), zap.String("status", string(to)))
	uc.publish(ctx, order.EventOrderStatusChanged, o)
	return o, nil
}

func (uc *orderUseCase) UpdateNote(ctx context.Context, id, note string) (*model.Order, error) {
	ok, err := uc.repo.UpdateNote(ctx, id, note, uc.clock())
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if !ok {
		return nil, order.ErrNotFound
	}
	o, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, order.EventOrderNoteUpdated, o)
	return o, nil
}

// publish announces a change. Failures are logged and never fail the caller.
func (uc *orderUseCase) publish(ctx context.Context, t order.EventType, o *model.Order) {
	if uc.events == nil {
		return
	}
	payload, err := order.NewEvent(t, o, uc.clock()).Marshal()
	if err != nil {
		uc.logger.Error("failed to encode order event", zap.String("order_id", o.ID), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.events.Publish(ctx, o.ID, payload); err != nil {
		uc.logger.Error("failed to publish order event",
			zap.String("order_id", o.ID),
			zap.String("event", string(t)),
			zap.Error(err),
		)
	}
}
