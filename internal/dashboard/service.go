package dashboard

import (
	"context"
	"time"

	"lokamart-be/internal/cache"
)

const (
	dataCacheKey = "dashboard:data"
	dataCacheTTL = 5 * time.Minute
)

type Service interface {
	GetDashboardData(ctx context.Context) (*Data, error)
}

type service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) Service {
	return &service{repo: repo, cache: c}
}

func (s *service) GetDashboardData(ctx context.Context) (*Data, error) {
	var cached Data
	if found, err := s.cache.GetJSON(ctx, dataCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	data := &Data{}

	images, err := s.repo.GetImages(ctx)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		data.DashboardImages = images
	}

	products, err := s.repo.GetFastSellingProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		data.FastSellingProducts = products
	}

	_ = s.cache.SetJSON(ctx, dataCacheKey, data, dataCacheTTL)

	return data, nil
}
