package order

import (
	"context"
	"encoding/json"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
	EventOrderNoteUpdated   EventType = "order.note_updated"
)

// Event is what goes on the orders topic. Consumers only need to know that
// something changed; they reload state from storage.
type Event struct {
	Type       EventType         `json:"type"`
	OrderID    string            `json:"order_id"`
	Status     model.OrderStatus `json:"status"`
	Total      decimal.Decimal   `json:"total"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewEvent(t EventType, o *model.Order, at time.Time) Event {
	return Event{
		Type:       t,
		OrderID:    o.ID,
		Status:     o.Status,
		Total:      o.Total,
		OccurredAt: at,
	}
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalEvent(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// EventPublisher is satisfied by the Kafka producer.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// ProductFinder resolves catalog entries for counter orders.
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}
