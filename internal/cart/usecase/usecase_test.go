package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/donarib/storefront-service/internal/cart"
	"github.com/donarib/storefront-service/internal/cart/dto"
	"github.com/donarib/storefront-service/internal/handoff"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order"
	orderdto "github.com/donarib/storefront-service/internal/order/dto"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	carts map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{carts: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, id string) (*cart.Cart, error) {
	data, ok := m.carts[id]
	if !ok {
		return nil, nil
	}
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (m *memStore) Save(_ context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.carts[c.ID] = data
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.carts, id)
	return nil
}

type products map[string]*model.Product

func (p products) FindByID(_ context.Context, id string) (*model.Product, error) {
	return p[id], nil
}

type stubOrders struct {
	order.UseCase
	placed *orderdto.PlaceOrderInput
	err    error
}

func (s *stubOrders) PlaceOrder(_ context.Context, in *orderdto.PlaceOrderInput) (*model.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.placed = in
	o := &model.Order{
		BaseModel:     model.BaseModel{ID: "ord-1", CreatedAt: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)},
		Items:         in.Items,
		PaymentMethod: in.PaymentMethod,
		Status:        in.Status,
	}
	for _, it := range in.Items {
		o.Total = o.Total.Add(it.Subtotal())
	}
	o.SetCustomer(in.Customer)
	return o, nil
}

type recordingPublisher struct {
	bodies [][]byte
}

func (r *recordingPublisher) Publish(_ context.Context, _ string, body []byte) error {
	r.bodies = append(r.bodies, body)
	return nil
}

type fixture struct {
	uc     cart.UseCase
	store  *memStore
	orders *stubOrders
	pub    *recordingPublisher
}

func newFixture() *fixture {
	catalog := products{
		"p-clasica": {
			BaseModel:   model.BaseModel{ID: "p-clasica"},
			Name:        "Clásica",
			Category:    model.CategoryBurger,
			PriceSimple: decimal.NewFromInt(7000),
			PriceDoble:  decimal.NewFromInt(9000),
			PriceTriple: decimal.NewFromInt(11000),
			IsActive:    true,
		},
		"p-coca": {
			BaseModel: model.BaseModel{ID: "p-coca"},
			Name:      "Coca Cola",
			Category:  model.CategoryDrink,
			Price:     decimal.NewFromInt(2500),
			IsActive:  true,
		},
		"p-off": {
			BaseModel: model.BaseModel{ID: "p-off"},
			Name:      "Vieja",
			Category:  model.CategoryDrink,
			Price:     decimal.NewFromInt(100),
		},
	}
	f := &fixture{store: newMemStore(), orders: &stubOrders{}, pub: &recordingPublisher{}}
	log := logger.NewNop()
	f.uc = NewCartUseCase(
		f.store,
		catalog,
		f.orders,
		handoff.NewComposer(i18n.MustNew(), "Doña Rib Burger", "5490000000000"),
		handoff.NewNotifier(f.pub, log),
		log,
	)
	return f
}

func TestAddItemMergesAndPrices(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c, err := f.uc.Create(ctx)
	require.NoError(t, err)

	_, err = f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-clasica", Size: model.SizeDoble, Quantity: 1})
	require.NoError(t, err)
	c, err = f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-clasica", Size: model.SizeDoble, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(27000)))

	stored, err := f.uc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.ItemCount())
}

func TestAddItemRejections(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, err := f.uc.Create(ctx)
	require.NoError(t, err)

	_, err = f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-off", Size: model.SizeBebida, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrProductUnavailable)

	_, err = f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "missing", Size: model.SizeBebida, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrProductUnavailable)

	_, err = f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-coca", Size: model.SizeDoble, Quantity: 1})
	assert.ErrorIs(t, err, model.ErrSizeNotOffered)

	_, err = f.uc.AddItem(ctx, &dto.AddItemInput{CartID: "ghost", ProductID: "p-coca", Size: model.SizeBebida, Quantity: 1})
	assert.ErrorIs(t, err, cart.ErrNotFound)
}

func TestAdjustRemovesAtZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, _ := f.uc.Create(ctx)
	_, err := f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-coca", Size: model.SizeBebida, Quantity: 2})
	require.NoError(t, err)

	c, err = f.uc.Adjust(ctx, c.ID, "Coca Cola-Bebida", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Quantity)

	c, err = f.uc.Adjust(ctx, c.ID, "Coca Cola-Bebida", -1)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = f.uc.Remove(ctx, c.ID, "Coca Cola-Bebida")
	assert.ErrorIs(t, err, cart.ErrLineNotFound)
}

func TestCheckoutPlacesPendingOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, _ := f.uc.Create(ctx)
	_, err := f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-clasica", Size: model.SizeSimple, Quantity: 2})
	require.NoError(t, err)

	res, err := f.uc.Checkout(ctx, &dto.CheckoutInput{
		CartID:        c.ID,
		DeliveryType:  model.DeliveryTypeDelivery,
		CustomerName:  "Ana",
		Street:        "Junín 1234",
		PaymentMethod: model.PaymentMethodTransfer,
		Lang:          "es",
	})
	require.NoError(t, err)

	require.NotNil(t, f.orders.placed)
	assert.Equal(t, model.OrderStatusPending, f.orders.placed.Status)
	assert.Equal(t, model.DeliveryCustomer("Ana", "Junín 1234"), f.orders.placed.Customer)
	require.Len(t, f.orders.placed.Items, 1)

	assert.Equal(t, "ord-1", res.Order.ID)
	assert.Contains(t, res.Message, "• 2x Clásica Simple - $14000")
	assert.Contains(t, res.Message, "📍 Dirección: Junín 1234")
	assert.Contains(t, res.Link, "https://wa.me/5490000000000?text=")

	require.Len(t, f.pub.bodies, 1)
	n, err := handoff.DecodeNotification(f.pub.bodies[0])
	require.NoError(t, err)
	assert.Equal(t, "ord-1", n.OrderID)
	assert.Equal(t, res.Link, n.Link)

	after, err := f.uc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c, _ := f.uc.Create(ctx)

	_, err := f.uc.Checkout(ctx, &dto.CheckoutInput{CartID: c.ID, DeliveryType: model.DeliveryTypePickup, PaymentMethod: model.PaymentMethodCash})
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
	assert.Nil(t, f.orders.placed)
	assert.Empty(t, f.pub.bodies)
}

func TestCheckoutKeepsCartWhenOrderRejected(t *testing.T) {
	f := newFixture()
	f.orders.err = errors.Join(order.ErrInvalidInput, model.ErrMissingStreet)
	ctx := context.Background()
	c, _ := f.uc.Create(ctx)
	_, err := f.uc.AddItem(ctx, &dto.AddItemInput{CartID: c.ID, ProductID: "p-coca", Size: model.SizeBebida, Quantity: 1})
	require.NoError(t, err)

	_, err = f.uc.Checkout(ctx, &dto.CheckoutInput{CartID: c.ID, DeliveryType: model.DeliveryTypeDelivery, PaymentMethod: model.PaymentMethodCash})
	assert.ErrorIs(t, err, order.ErrInvalidInput)

	kept, err := f.uc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, kept.ItemCount())
	assert.Empty(t, f.pub.bodies)
}
