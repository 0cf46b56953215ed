package cart

import (
	"errors"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("cart not found")
	ErrLineNotFound       = errors.New("cart line not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrProductUnavailable = errors.New("product is not available")
)

// Line is one product and size in the cart.
type Line struct {
	Key      string          `json:"key"`
	Name     string          `json:"name"`
	Size     model.Size      `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func LineKey(name string, size model.Size) string {
	return name + "-" + string(size)
}

// NewLine prices a product at the given size. Inactive products and sizes the
// product does not offer are rejected.
func NewLine(p *model.Product, size model.Size, qty int) (Line, error) {
	if qty <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	if p == nil || !p.IsActive {
		return Line{}, ErrProductUnavailable
	}
	price, err := p.PriceFor(size)
	if err != nil {
		return Line{}, err
	}
	return Line{
		Key:      LineKey(p.Name, size),
		Name:     p.Name,
		Size:     size,
		Price:    price,
		Quantity: qty,
		Image:    p.ImageURL,
	}, nil
}

// Cart keeps lines in insertion order.
type Cart struct {
	ID        string    `json:"id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(id string) *Cart {
	return &Cart{ID: id, Lines: []Line{}}
}

func (c *Cart) index(key string) int {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			return i
		}
	}
	return -1
}

// Add merges line into an existing entry with the same key or appends it.
// The price already in the cart is kept.
func (c *Cart) Add(line Line) {
	if line.Key == "" {
		line.Key = LineKey(line.Name, line.Size)
	}
	if i := c.index(line.Key); i >= 0 {
		c.Lines[i].Quantity += line.Quantity
		return
	}
	c.Lines = append(c.Lines, line)
}

// Adjust changes a line's quantity by delta and drops it at zero or below.
func (c *Cart) Adjust(key string, delta int) error {
	i := c.index(key)
	if i < 0 {
		return ErrLineNotFound
	}
	q := c.Lines[i].Quantity + delta
	if q <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return nil
	}
	c.Lines[i].Quantity = q
	return nil
}

func (c *Cart) Remove(key string) error {
	i := c.index(key)
	if i < 0 {
		return ErrLineNotFound
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// OrderItems snapshots the lines for persistence.
func (c *Cart) OrderItems() model.OrderItems {
	items := make(model.OrderItems, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, model.OrderItem{
			Name:     l.Name,
			Size:     l.Size,
			Quantity: l.Quantity,
			Price:    l.Price,
			Image:    l.Image,
		})
	}
	return items
}
