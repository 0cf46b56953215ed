package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order"
	"github.com/donarib/storefront-service/internal/order/dto"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	orders map[string]*model.Order
}

func newMemRepo() *memRepo {
	return &memRepo{orders: map[string]*model.Order{}}
}

func (m *memRepo) Create(_ context.Context, o *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memRepo) FindByStatus(_ context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, o := range m.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRepo) FindByStatusSince(ctx context.Context, status model.OrderStatus, _ time.Time) ([]model.Order, error) {
	return m.FindByStatus(ctx, status, 0)
}

func (m *memRepo) UpdateStatus(_ context.Context, id string, from, to model.OrderStatus, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = at
	return true, nil
}

func (m *memRepo) UpdateNote(_ context.Context, id, note string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return false, nil
	}
	o.Note = note
	o.UpdatedAt = at
	return true, nil
}

type fakeProducts map[string]*model.Product

func (f fakeProducts) FindByID(_ context.Context, id string) (*model.Product, error) {
	return f[id], nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	e, err := order.UnmarshalEvent(value)
	if err != nil {
		return err
	}
	p.events = append(p.events, e)
	return nil
}

func cheese(qty int) model.OrderItem {
	return model.OrderItem{Name: "Cheese", Size: model.SizeDoble, Price: decimal.NewFromInt(9000), Quantity: qty}
}

func newUseCase(products fakeProducts) (order.UseCase, *memRepo, *recordingPublisher) {
	repo := newMemRepo()
	pub := &recordingPublisher{}
	return NewOrderUseCase(repo, products, pub, logger.NewNop()), repo, pub
}

func TestPlaceOrder(t *testing.T) {
	uc, repo, pub := newUseCase(nil)

	o, err := uc.PlaceOrder(context.Background(), &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(2)},
		Customer:      model.DeliveryCustomer("Ana", "Junin 400"),
		PaymentMethod: model.PaymentMethodTransfer,
		Status:        model.OrderStatusPending,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, "18000", o.Total.String())
	assert.Equal(t, "Ana", o.CustomerName)
	assert.Equal(t, "Junin 400", o.DeliveryStreet)
	assert.Contains(t, repo.orders, o.ID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, order.EventOrderCreated, pub.events[0].Type)
	assert.Equal(t, o.ID, pub.events[0].OrderID)
}

func TestPlaceOrderValidation(t *testing.T) {
	uc, _, _ := newUseCase(nil)
	ctx := context.Background()

	_, err := uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Customer: model.PickupCustomer(""), PaymentMethod: model.PaymentMethodCash, Status: model.OrderStatusPending,
	})
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	_, err = uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.DeliveryCustomer("Ana", "  "),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusPending,
	})
	assert.ErrorIs(t, err, order.ErrInvalidInput)
	assert.ErrorIs(t, err, model.ErrMissingStreet)

	_, err = uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.PickupCustomer(""),
		PaymentMethod: "crypto",
		Status:        model.OrderStatusPending,
	})
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	_, err = uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.PickupCustomer(""),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusCancelled,
	})
	assert.ErrorIs(t, err, order.ErrInvalidInput)
}

func TestPlaceOrderSurvivesPublishFailure(t *testing.T) {
	uc, repo, pub := newUseCase(nil)
	pub.err = errors.New("broker down")

	o, err := uc.PlaceOrder(context.Background(), &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.PickupCustomer("Luis"),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusPending,
	})
	require.NoError(t, err)
	assert.Contains(t, repo.orders, o.ID)
}

func TestCreateCounterOrder(t *testing.T) {
	products := fakeProducts{
		"p1": {Name: "Cheese", Category: model.CategoryBurger, PriceSimple: decimal.NewFromInt(7000), IsActive: true},
		"p2": {Name: "Coca Cola", Category: model.CategoryDrink, Price: decimal.NewFromInt(2500), IsActive: true},
	}
	uc, _, _ := newUseCase(products)

	o, err := uc.CreateCounterOrder(context.Background(), &dto.CounterOrderInput{
		Items: []dto.CounterItem{
			{ProductID: "p1", Size: model.SizeSimple, Quantity: 1},
			{ProductID: "p2", Size: model.SizeBebida, Quantity: 2},
			{ProductID: "p1", Size: model.SizeSimple, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusConfirmed, o.Status)
	assert.Equal(t, model.DeliveryTypePickup, o.DeliveryType)
	assert.Equal(t, model.PaymentMethodCash, o.PaymentMethod)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "19000", o.Total.String())
}

func TestCreateCounterOrderUnknownProduct(t *testing.T) {
	uc, _, _ := newUseCase(fakeProducts{})

	_, err := uc.CreateCounterOrder(context.Background(), &dto.CounterOrderInput{
		Items: []dto.CounterItem{{ProductID: "nope", Size: model.SizeSimple, Quantity: 1}},
	})
	assert.ErrorIs(t, err, order.ErrInvalidInput)
}

func TestConfirmThenCancelFails(t *testing.T) {
	uc, _, pub := newUseCase(nil)
	ctx := context.Background()
	o, err := uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.PickupCustomer("Ana"),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusPending,
	})
	require.NoError(t, err)

	confirmed, err := uc.Confirm(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, confirmed.Status)

	_, err = uc.Cancel(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	_, err = uc.Confirm(ctx, o.ID)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	require.Len(t, pub.events, 2)
	assert.Equal(t, order.EventOrderStatusChanged, pub.events[1].Type)
	assert.Equal(t, model.OrderStatusConfirmed, pub.events[1].Status)
}

func TestConcurrentConfirmOnlyOneWins(t *testing.T) {
	uc, _, _ := newUseCase(nil)
	ctx := context.Background()
	o, err := uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.PickupCustomer("Ana"),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusPending,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Confirm(ctx, o.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestTransitionUnknownOrder(t *testing.T) {
	uc, _, _ := newUseCase(nil)

	_, err := uc.Confirm(context.Background(), "missing")
	assert.ErrorIs(t, err, order.ErrNotFound)

	_, err = uc.UpdateNote(context.Background(), "missing", "x")
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestUpdateNote(t *testing.T) {
	uc, _, pub := newUseCase(nil)
	ctx := context.Background()
	o, err := uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
		Items:         model.OrderItems{cheese(1)},
		Customer:      model.PickupCustomer("Ana"),
		PaymentMethod: model.PaymentMethodCash,
		Status:        model.OrderStatusConfirmed,
	})
	require.NoError(t, err)

	updated, err := uc.UpdateNote(ctx, o.ID, "sin cebolla")
	require.NoError(t, err)
	assert.Equal(t, "sin cebolla", updated.Note)
	assert.Equal(t, order.EventOrderNoteUpdated, pub.events[len(pub.events)-1].Type)
}

func TestListByStatusRejectsUnknown(t *testing.T) {
	uc, _, _ := newUseCase(nil)
	_, err := uc.ListByStatus(context.Background(), "shipped")
	assert.ErrorIs(t, err, order.ErrInvalidInput)
}
