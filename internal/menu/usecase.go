package menu

import (
	"context"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/product/dto"
)

type UseCase interface {
	GetMenu(ctx context.Context) (*Menu, error)
}

// ProductLister is satisfied by the product use case, so menu reads share its cache.
type ProductLister interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
}
