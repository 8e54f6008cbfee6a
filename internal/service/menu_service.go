package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"food-order-service/internal/entity"
)

// ProductStore is the catalog collection surface the service consumes.
type ProductStore interface {
	CreateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	GetProductByID(ctx context.Context, id int64) (*entity.Product, error)
	GetProducts(ctx context.Context) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
}

// MenuItemPatch carries the fields a PATCH may change; nil fields are left
// untouched.
type MenuItemPatch struct {
	Name     *string  `json:"name"`
	Recipe   *string  `json:"recipe"`
	Image    *string  `json:"image"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
}

// MenuService serves the catalog. Single-item reads go through a Redis
// read-through cache; orders and payments are never cached.
type MenuService struct {
	products ProductStore
	rdb      Cache
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(products ProductStore, rdb Cache) *MenuService {
	return &MenuService{
		products: products,
		rdb:      rdb,
	}
}

// ListMenu returns the whole catalog.
func (s *MenuService) ListMenu(ctx context.Context) ([]entity.Product, error) {
	products, err := s.products.GetProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error fetching menu")
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	return products, nil
}

// GetMenuItem reads one catalog entry, preferring the cache.
func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*entity.Product, error) {
	if cached := s.readCache(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: menu item %d", entity.ErrNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error fetching menu item %d", id)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	s.writeCache(ctx, product)

	return product, nil
}

// AddMenuItem validates and stores a new catalog entry.
func (s *MenuService) AddMenuItem(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	if product.Name == "" || product.Recipe == "" || product.Image == "" || product.Category == "" {
		return nil, fmt.Errorf("%w: name, recipe, image and category are required", entity.ErrInvalidRequest)
	}
	if product.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", entity.ErrInvalidRequest)
	}

	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msg("Error adding menu item")
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	s.writeCache(ctx, created)

	return created, nil
}

// UpdateMenuItem applies a partial update and returns the updated document.
func (s *MenuService) UpdateMenuItem(ctx context.Context, id int64, patch *MenuItemPatch) (*entity.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: menu item %d", entity.ErrNotFound, id)
		}
		logger.Error().Err(err).Msgf("Error fetching menu item %d", id)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Recipe != nil {
		product.Recipe = *patch.Recipe
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", entity.ErrInvalidRequest)
		}
		product.Price = *patch.Price
	}
	product.UpdatedAt = time.Now()

	updated, err := s.products.UpdateProduct(ctx, product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating menu item %d", id)
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}

	s.writeCache(ctx, updated)

	return updated, nil
}

// RemoveMenuItem deletes a catalog entry and drops its cache key.
func (s *MenuService) RemoveMenuItem(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.products.DeleteProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting menu item %d", id)
		return 0, fmt.Errorf("%w: %v", entity.ErrUpstream, err)
	}
	if deleted == 0 {
		return 0, fmt.Errorf("%w: menu item %d", entity.ErrNotFound, id)
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, menuCacheKey(id)).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error evicting menu item %d from cache", id)
		}
	}

	return deleted, nil
}

func (s *MenuService) readCache(ctx context.Context, id int64) *entity.Product {
	if s.rdb == nil {
		return nil
	}

	cached, err := s.rdb.Get(ctx, menuCacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error reading menu item %d from cache", id)
		}
		return nil
	}

	product := &entity.Product{}
	if err := json.Unmarshal([]byte(cached), product); err != nil {
		logger.Error().Err(err).Msgf("Error unmarshalling cached menu item %d", id)
		return nil
	}

	return product
}

func (s *MenuService) writeCache(ctx context.Context, product *entity.Product) {
	if s.rdb == nil {
		return
	}

	productJSON, err := json.Marshal(product)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling menu item %d", product.ID)
		return
	}

	if err := s.rdb.Set(ctx, menuCacheKey(product.ID), productJSON, time.Hour).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error caching menu item %d", product.ID)
	}
}

func menuCacheKey(id int64) string {
	return fmt.Sprintf("menu:%d", id)
}
