package product

import (
	"context"
	"errors"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/product/dto"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidInput = errors.New("invalid product")
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (*model.Product, error)

	// SearchProducts matches active products by name or description.
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
}
