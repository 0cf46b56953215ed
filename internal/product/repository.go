package product

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) (bool, error)

	SetActive(ctx context.Context, id string, active bool, at time.Time) (bool, error)
}
