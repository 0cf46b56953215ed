package ingredient

import (
	"context"
	"errors"

	"github.com/donarib/storefront-service/internal/ingredient/dto"
	"github.com/donarib/storefront-service/internal/model"
)

var (
	ErrNotFound     = errors.New("ingredient not found")
	ErrInvalidInput = errors.New("invalid ingredient")
	ErrBusy         = errors.New("ingredient is being adjusted, try again")
)

type UseCase interface {
	ListIngredients(ctx context.Context) ([]model.Ingredient, error)
	ListLowStock(ctx context.Context) ([]model.Ingredient, error)
	CreateIngredient(ctx context.Context, input *dto.IngredientInput) (*model.Ingredient, error)
	UpdateIngredient(ctx context.Context, id string, input *dto.IngredientInput) (*model.Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error

	// AdjustQuantity adds delta to the on-hand quantity, never going below zero.
	AdjustQuantity(ctx context.Context, input *dto.AdjustQuantityInput) (*model.Ingredient, error)
}
