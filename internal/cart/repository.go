package cart

import "context"

// Store persists carts. Get returns nil, nil for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, id string) error
}
