package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/cache"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/product"
	"github.com/donarib/storefront-service/internal/product/dto"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	products     map[string]*model.Product
	findAllCalls int
	lastFilters  *dto.ProductFilters
}

func (m *memRepo) Create(_ context.Context, p *model.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	m.findAllCalls++
	m.lastFilters = f
	var out []model.Product
	for _, p := range m.products {
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (m *memRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.products[id]; !ok {
		return false, nil
	}
	delete(m.products, id)
	return true, nil
}

func (m *memRepo) SetActive(_ context.Context, id string, active bool, at time.Time) (bool, error) {
	p, ok := m.products[id]
	if !ok {
		return false, nil
	}
	p.IsActive = active
	p.UpdatedAt = at
	return true, nil
}

func newUseCase(t *testing.T) (product.UseCase, *memRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &memRepo{products: map[string]*model.Product{}}
	uc := NewProductUseCase(repo, &cache.RedisClient{Client: client}, nil, logger.NewNop())
	return uc, repo, mr
}

func cheeseInput() *dto.CreateProductInput {
	return &dto.CreateProductInput{
		Name:        " Cheese ",
		Category:    model.CategoryBurger,
		PriceSimple: decimal.NewFromInt(7000),
		PriceDoble:  decimal.NewFromInt(9000),
		PriceTriple: decimal.NewFromInt(11000),
		IsActive:    true,
	}
}

func TestCreateProduct(t *testing.T) {
	uc, repo, _ := newUseCase(t)

	p, err := uc.CreateProduct(context.Background(), cheeseInput())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Cheese", p.Name)
	assert.Contains(t, repo.products, p.ID)
}

func TestCreateProductValidation(t *testing.T) {
	uc, _, _ := newUseCase(t)

	in := cheeseInput()
	in.Category = "pizza"
	_, err := uc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, product.ErrInvalidInput)

	in = cheeseInput()
	in.Name = "  "
	_, err = uc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, product.ErrInvalidInput)

	in = cheeseInput()
	in.PriceDoble = decimal.NewFromInt(-1)
	_, err = uc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, product.ErrInvalidInput)
}

func TestListProductsIsCachedUntilWrite(t *testing.T) {
	uc, repo, mr := newUseCase(t)
	ctx := context.Background()
	_, err := uc.CreateProduct(ctx, cheeseInput())
	require.NoError(t, err)

	filters := &dto.ProductFilters{SortBy: "name"}
	_, count, err := uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, _, err = uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findAllCalls)
	assert.Len(t, mr.Keys(), 1)

	_, err = uc.CreateProduct(ctx, cheeseInput())
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())

	_, count, err = uc.ListProducts(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2, repo.findAllCalls)
}

func TestToggleActive(t *testing.T) {
	uc, repo, _ := newUseCase(t)
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, cheeseInput())
	require.NoError(t, err)

	toggled, err := uc.ToggleActive(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.False(t, repo.products[p.ID].IsActive)

	toggled, err = uc.ToggleActive(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)

	_, err = uc.ToggleActive(ctx, "missing")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestUpdateProduct(t *testing.T) {
	uc, repo, _ := newUseCase(t)
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, cheeseInput())
	require.NoError(t, err)

	in := cheeseInput()
	in.PriceSimple = decimal.NewFromInt(7500)
	updated, err := uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: p.ID, CreateProductInput: *in})
	require.NoError(t, err)
	assert.Equal(t, "7500", updated.PriceSimple.String())
	assert.Equal(t, "7500", repo.products[p.ID].PriceSimple.String())

	_, err = uc.UpdateProduct(ctx, &dto.UpdateProductInput{ID: "missing", CreateProductInput: *in})
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	uc, repo, _ := newUseCase(t)
	ctx := context.Background()

	results, err := uc.SearchProducts(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, repo.findAllCalls)

	_, err = uc.SearchProducts(ctx, "chee")
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilters)
	assert.Equal(t, "chee", repo.lastFilters.SearchQuery)
	require.NotNil(t, repo.lastFilters.IsActive)
	assert.True(t, *repo.lastFilters.IsActive)
}

func TestDeleteProduct(t *testing.T) {
	uc, repo, _ := newUseCase(t)
	ctx := context.Background()
	p, err := uc.CreateProduct(ctx, cheeseInput())
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProduct(ctx, p.ID))
	assert.NotContains(t, repo.products, p.ID)
	assert.ErrorIs(t, uc.DeleteProduct(ctx, p.ID), product.ErrNotFound)
}
