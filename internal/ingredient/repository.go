package ingredient

import (
	"context"
	"time"

	"github.com/donarib/storefront-service/internal/ingredient/dto"
	"github.com/donarib/storefront-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	FindByID(ctx context.Context, id string) (*model.Ingredient, error)
	// FindAll returns ingredients ordered by name.
	FindAll(ctx context.Context, filters *dto.IngredientFilters) ([]model.Ingredient, error)
	Update(ctx context.Context, ingredient *model.Ingredient) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	SetQuantity(ctx context.Context, id string, quantity float64, at time.Time) (bool, error)
}
