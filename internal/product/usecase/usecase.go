package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/cache"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/pkg/search"
	"github.com/donarib/storefront-service/internal/product"
	"github.com/donarib/storefront-service/internal/product/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	IndexName       = "products"
	listCachePrefix = "products:list:"
	listCacheTTL    = 5 * time.Minute
	searchLimit     = 20
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"category": { "type": "keyword" },
			"description": { "type": "text" },
			"description_simple": { "type": "text" },
			"description_doble": { "type": "text" },
			"description_triple": { "type": "text" },
			"active": { "type": "boolean" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	clock  func() time.Time
	logger logger.ZapLogger
}

// NewProductUseCase builds the catalog service. es may be nil; search then
// goes straight to the database.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		clock:  time.Now,
		logger: log,
	}
}

// EnsureIndex creates the search index if it does not exist yet.
func EnsureIndex(ctx context.Context, es *search.Client) error {
	return es.CreateIndex(ctx, IndexName, indexMapping)
}

func validate(in *dto.CreateProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", product.ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", product.ErrInvalidInput, in.Category)
	}
	for _, p := range []decimal.Decimal{in.PriceSimple, in.PriceDoble, in.PriceTriple, in.Price} {
		if p.IsNegative() {
			return fmt.Errorf("%w: prices cannot be negative", product.ErrInvalidInput)
		}
	}
	return nil
}

func apply(p *model.Product, in *dto.CreateProductInput) {
	p.Name = strings.TrimSpace(in.Name)
	p.Category = in.Category
	p.ImageURL = in.ImageURL
	p.PriceSimple = in.PriceSimple
	p.PriceDoble = in.PriceDoble
	p.PriceTriple = in.PriceTriple
	p.Price = in.Price
	p.Description = in.Description
	p.DescriptionSimple = in.DescriptionSimple
	p.DescriptionDoble = in.DescriptionDoble
	p.DescriptionTriple = in.DescriptionTriple
	p.IsActive = in.IsActive
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := uc.clock()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
	}
	apply(p, input)

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Index(ctx, IndexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrNotFound
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := generateCacheKey(filters)
	if err == nil {
		var hit cachedList
		if err := uc.cache.GetJSON(ctx, cacheKey, &hit); err == nil {
			return hit.Products, hit.Count, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, cachedList{Products: products, Count: count}, listCacheTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}

	return products, count, nil
}

func generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", listCachePrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if err := uc.cache.DeletePattern(ctx, listCachePrefix+"*"); err != nil {
		uc.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Product{}, nil
	}

	if uc.es != nil {
		products, err := uc.searchElastic(ctx, query)
		if err == nil {
			return products, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	active := true
	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{
		IsActive:    &active,
		SearchQuery: query,
		SortBy:      "name",
		PageSize:    searchLimit,
	})
	return products, err
}

func (uc *productUseCase) searchElastic(ctx context.Context, query string) ([]model.Product, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":     query,
							"fields":    []string{"name^3", "description", "description_simple", "description_doble", "description_triple"},
							"fuzziness": "AUTO",
						},
					},
				},
				"filter": []map[string]interface{}{
					{"term": map[string]interface{}{"active": true}},
				},
			},
		},
		"size": searchLimit,
	}

	res, err := uc.es.Search(ctx, IndexName, q)
	if err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			uc.logger.Warn("skipping malformed search hit", zap.String("id", hit.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validate(&input.CreateProductInput); err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	apply(p, &input.CreateProductInput)
	p.UpdatedAt = uc.clock()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) ToggleActive(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p.IsActive = !p.IsActive
	p.UpdatedAt = uc.clock()
	ok, err := uc.repo.SetActive(ctx, id, p.IsActive, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, product.ErrNotFound
	}

	uc.invalidateListCache(ctx)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return product.ErrNotFound
	}

	uc.invalidateListCache(ctx)
	if uc.es != nil {
		id := strings.Clone(id)
		go func() {
			if err := uc.es.Delete(context.Background(), IndexName, id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}

	return nil
}
