package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryTypePickup || d == DeliveryTypeDelivery
}

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "efectivo"
	PaymentMethodTransfer PaymentMethod = "transferencia"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentMethodCash || p == PaymentMethodTransfer
}

// UnknownClient is the placeholder older orders carry instead of a name.
const UnknownClient = "Sin nombre"

// legacyAddressSeparator splits "name - street" in imported delivery addresses.
const legacyAddressSeparator = " - "

var ErrMissingStreet = errors.New("delivery orders need a street")

// Customer says who picks the order up or where it goes.
// Street is only meaningful for Kind == DeliveryTypeDelivery.
type Customer struct {
	Kind   DeliveryType `json:"kind"`
	Name   string       `json:"name,omitempty"`
	Street string       `json:"street,omitempty"`
}

func PickupCustomer(name string) Customer {
	return Customer{Kind: DeliveryTypePickup, Name: strings.TrimSpace(name)}
}

func DeliveryCustomer(name, street string) Customer {
	return Customer{Kind: DeliveryTypeDelivery, Name: strings.TrimSpace(name), Street: strings.TrimSpace(street)}
}

func (c Customer) Validate() error {
	if !c.Kind.Valid() {
		return fmt.Errorf("invalid delivery type %q", c.Kind)
	}
	if c.Kind == DeliveryTypeDelivery && c.Street == "" {
		return ErrMissingStreet
	}
	return nil
}

type OrderItem struct {
	Name     string          `json:"name"`
	Size     Size            `json:"size"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image,omitempty"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItems is stored as a JSONB array on the order row.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}

func (items *OrderItems) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*items = OrderItems{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("order items: unsupported scan type %T", src)
	}
	return json.Unmarshal(data, items)
}

type Order struct {
	BaseModel
	Items          OrderItems      `db:"items" json:"items"`
	Total          decimal.Decimal `db:"total" json:"total"`
	DeliveryType   DeliveryType    `db:"delivery_type" json:"delivery_type"`
	PaymentMethod  PaymentMethod   `db:"payment_method" json:"payment_method"`
	CustomerName   string          `db:"customer_name" json:"customer_name"`
	DeliveryStreet string          `db:"delivery_street" json:"delivery_street"`
	LegacyAddress  *string         `db:"address" json:"address,omitempty"`
	Status         OrderStatus     `db:"status" json:"status"`
	Note           string          `db:"note" json:"note"`
}

func (o *Order) Customer() Customer {
	return Customer{Kind: o.DeliveryType, Name: o.CustomerName, Street: o.DeliveryStreet}
}

func (o *Order) SetCustomer(c Customer) {
	o.DeliveryType = c.Kind
	o.CustomerName = c.Name
	o.DeliveryStreet = c.Street
}

// ClientLabel names the customer for rankings and exports. The explicit
// customer name wins; rows imported with only the free-text address fall back
// to it (delivery addresses keep the part before " - "). An empty result means
// the order has no usable client.
func (o *Order) ClientLabel() string {
	label := strings.TrimSpace(o.CustomerName)
	if label == "" && o.LegacyAddress != nil {
		label = *o.LegacyAddress
		if o.DeliveryType == DeliveryTypeDelivery {
			label, _, _ = strings.Cut(label, legacyAddressSeparator)
		}
		label = strings.TrimSpace(label)
	}
	if label == UnknownClient {
		return ""
	}
	return label
}
