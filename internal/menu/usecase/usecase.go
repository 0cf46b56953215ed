package usecase

import (
	"context"

	"github.com/donarib/storefront-service/internal/menu"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/product/dto"
)

type menuUseCase struct {
	products menu.ProductLister
	logger   logger.ZapLogger
}

func NewMenuUseCase(products menu.ProductLister, log logger.ZapLogger) menu.UseCase {
	return &menuUseCase{
		products: products,
		logger:   log,
	}
}

func (uc *menuUseCase) GetMenu(ctx context.Context) (*menu.Menu, error) {
	active := true
	products, _, err := uc.products.ListProducts(ctx, &dto.ProductFilters{
		IsActive:  &active,
		SortBy:    "name",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, err
	}
	return menu.Build(products), nil
}
