package product

import (
	"context"
	"time"

	"lokamart-be/internal/cache"
)

const (
	listCacheKey = "products:active"
	listCacheTTL = time.Minute
)

type Service interface {
	GetProducts(ctx context.Context) ([]Product, error)
	GetSnapshot(ctx context.Context, productID uint) (*Snapshot, error)
}

type service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) GetProducts(ctx context.Context) ([]Product, error) {
	var cached []Product
	if found, err := s.cache.GetJSON(ctx, listCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.cache.SetJSON(ctx, listCacheKey, products, listCacheTTL)

	return products, nil
}

// GetSnapshot is never cached: the cart's stock gate needs live inventory.
func (s *service) GetSnapshot(ctx context.Context, productID uint) (*Snapshot, error) {
	return s.repo.GetSnapshot(ctx, productID)
}
