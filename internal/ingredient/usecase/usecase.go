package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/donarib/storefront-service/internal/ingredient"
	"github.com/donarib/storefront-service/internal/ingredient/dto"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/cache"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type ingredientUseCase struct {
	repo   ingredient.Repository
	cache  *cache.RedisClient
	clock  func() time.Time
	logger logger.ZapLogger
}

func NewIngredientUseCase(repo ingredient.Repository, cache *cache.RedisClient, log logger.ZapLogger) ingredient.UseCase {
	return &ingredientUseCase{
		repo:   repo,
		cache:  cache,
		clock:  time.Now,
		logger: log,
	}
}

func validate(in *dto.IngredientInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ingredient.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.MinStock < 0 || math.IsNaN(in.Quantity) || math.IsNaN(in.MinStock) {
		return fmt.Errorf("%w: quantities cannot be negative", ingredient.ErrInvalidInput)
	}
	return nil
}

func (uc *ingredientUseCase) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return uc.repo.FindAll(ctx, &dto.IngredientFilters{})
}

func (uc *ingredientUseCase) ListLowStock(ctx context.Context) ([]model.Ingredient, error) {
	return uc.repo.FindAll(ctx, &dto.IngredientFilters{LowStock: true})
}

func (uc *ingredientUseCase) CreateIngredient(ctx context.Context, input *dto.IngredientInput) (*model.Ingredient, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := uc.clock()
	i := &model.Ingredient{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      strings.TrimSpace(input.Name),
		Quantity:  input.Quantity,
		Unit:      input.Unit,
		MinStock:  input.MinStock,
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (uc *ingredientUseCase) UpdateIngredient(ctx context.Context, id string, input *dto.IngredientInput) (*model.Ingredient, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	release, err := uc.lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	i, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, ingredient.ErrNotFound
	}

	i.Name = strings.TrimSpace(input.Name)
	i.Quantity = input.Quantity
	i.Unit = input.Unit
	i.MinStock = input.MinStock
	i.UpdatedAt = uc.clock()

	ok, err := uc.repo.Update(ctx, i)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ingredient.ErrNotFound
	}
	return i, nil
}

func (uc *ingredientUseCase) DeleteIngredient(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ingredient.ErrNotFound
	}
	return nil
}

func (uc *ingredientUseCase) AdjustQuantity(ctx context.Context, input *dto.AdjustQuantityInput) (*model.Ingredient, error) {
	if math.IsNaN(input.Delta) || math.IsInf(input.Delta, 0) {
		return nil, fmt.Errorf("%w: delta must be a finite number", ingredient.ErrInvalidInput)
	}

	release, err := uc.lock(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	defer release()

	i, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, ingredient.ErrNotFound
	}

	before := i.Quantity
	i.Quantity = math.Max(0, i.Quantity+input.Delta)
	i.UpdatedAt = uc.clock()

	ok, err := uc.repo.SetQuantity(ctx, i.ID, i.Quantity, i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ingredient.ErrNotFound
	}

	uc.logger.Info("ingredient adjusted",
		zap.String("ingredient_id", i.ID),
		zap.Float64("before", before),
		zap.Float64("after", i.Quantity),
	)
	if i.IsLowStock() {
		uc.logger.Warn("ingredient below minimum stock",
			zap.String("ingredient", i.Name),
			zap.Float64("quantity", i.Quantity),
			zap.Float64("min_stock", i.MinStock),
		)
	}
	return i, nil
}

// lock takes the per-ingredient lock shared by every write to the quantity.
// It gives up with ErrBusy after lockAttempts tries, or with the context error
// once ctx is done.
func (uc *ingredientUseCase) lock(ctx context.Context, id string) (func(), error) {
	lockKey := "lock:ingredient:" + id
	lockValue := uuid.New().String()

	for attempt := 0; attempt < lockAttempts; attempt++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire ingredient lock", zap.String("ingredient_id", id), zap.Error(err))
		}
		if ok {
			return func() {
				if err := uc.cache.ReleaseLock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
					uc.logger.Warn("failed to release ingredient lock", zap.String("ingredient_id", id), zap.Error(err))
				}
			}, nil
		}
		if attempt == lockAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockBackoff):
		}
	}
	return nil, ingredient.ErrBusy
}
