package handoff

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *model.Order {
	o := &model.Order{
		Items: model.OrderItems{
			{Name: "Clásica", Size: model.SizeDoble, Quantity: 2, Price: decimal.NewFromInt(9000)},
			{Name: "Coca Cola", Size: model.SizeBebida, Quantity: 1, Price: decimal.NewFromInt(2500)},
		},
		Total:         decimal.NewFromInt(20500),
		PaymentMethod: model.PaymentMethodCash,
	}
	o.ID = "ord-1"
	return o
}

func TestMessagePickup(t *testing.T) {
	c := NewComposer(i18n.MustNew(), "Doña Rib Burger", "5493795312150")
	o := sampleOrder()
	o.SetCustomer(model.PickupCustomer(""))

	want := "🍔 *Nuevo Pedido - Doña Rib Burger*\n\n" +
		"• 2x Clásica Doble - $18000\n" +
		"• 1x Coca Cola Bebida - $2500\n" +
		"\n💰 *Total: $20500*\n\n" +
		"📍 *Retiro en local*\n" +
		"\n💳 *Pago: Efectivo 💵*"
	assert.Equal(t, want, c.Message(o, "es"))
}

func TestMessageDeliveryWithName(t *testing.T) {
	c := NewComposer(i18n.MustNew(), "Doña Rib Burger", "5493795312150")
	o := sampleOrder()
	o.PaymentMethod = model.PaymentMethodTransfer
	o.SetCustomer(model.DeliveryCustomer(" Ana ", "San Martín 123 & Mitre"))

	msg := c.Message(o, "en")
	assert.Contains(t, msg, "👤 Customer: Ana\n")
	assert.Contains(t, msg, "🚚 *Home delivery*\n📍 Address: San Martín 123 & Mitre\n")
	assert.True(t, strings.HasSuffix(msg, "💳 *Payment: Bank transfer 🏦*"))
	assert.NotContains(t, msg, "Pickup")
}

func TestLinkRoundTrip(t *testing.T) {
	c := NewComposer(i18n.MustNew(), "Doña Rib Burger", "5493795312150")
	o := sampleOrder()
	o.SetCustomer(model.DeliveryCustomer("", "Calle 1 + 2 & 3"))

	h := c.Compose(o, "es")
	require.True(t, strings.HasPrefix(h.Link, "https://wa.me/5493795312150?text="))
	assert.NotContains(t, h.Link, "+")
	assert.Contains(t, h.Link, "%20")

	u, err := url.Parse(h.Link)
	require.NoError(t, err)
	assert.Equal(t, h.Message, u.Query().Get("text"))
}

type recordingPublisher struct {
	key  string
	body []byte
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, body []byte) error {
	p.key = key
	p.body = body
	return p.err
}

func TestNotifierPublishes(t *testing.T) {
	pub := &recordingPublisher{}
	n := NewNotifier(pub, logger.NewNop())

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n.Notify(context.Background(), Notification{OrderID: "ord-1", Message: "hola", Link: "https://wa.me/1", CreatedAt: at})

	assert.Equal(t, RoutingKeyOrderCreated, pub.key)
	got, err := DecodeNotification(pub.body)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", got.OrderID)
	assert.Equal(t, "hola", got.Message)
	assert.True(t, at.Equal(got.CreatedAt))
}

func TestNotifierSwallowsErrors(t *testing.T) {
	n := NewNotifier(&recordingPublisher{err: errors.New("broker down")}, logger.NewNop())
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), Notification{OrderID: "ord-1"})
	})

	var nilNotifier *Notifier
	assert.NotPanics(t, func() {
		nilNotifier.Notify(context.Background(), Notification{OrderID: "ord-1"})
	})
}
