package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shopassist/shopassist/internal/cache"
	appErrors "github.com/shopassist/shopassist/internal/errors"
	"github.com/shopassist/shopassist/internal/models"
	repository "github.com/shopassist/shopassist/internal/repositories"
)

// CatalogService is the read-only query surface over the product catalog.
// Listing never fails for "no matches"; it returns an empty slice.
type CatalogService interface {
	ListProducts(ctx context.Context, query string) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
}

type catalogService struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

func NewCatalogService(repo repository.ProductRepository, productCache cache.Cache) CatalogService {
	return &catalogService{repo: repo, cache: productCache}
}

func (s *catalogService) ListProducts(ctx context.Context, query string) ([]*models.Product, error) {

	products, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if products == nil {
		products = []*models.Product{}
	}

	return products, nil
}

func (s *catalogService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {

	cacheKey := cache.Key(cache.ProductKeyPrefix, strconv.FormatInt(id, 10))

	if s.cache != nil {
		var cached models.Product

		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			slog.Warn("Product cache read failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		} else if found {
			return &cached, nil
		}
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError(fmt.Sprintf("Product %d not found", id)).WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, product, 0); err != nil {
			slog.Warn("Product cache write failed", slog.String("key", cacheKey), slog.String("error", err.Error()))
		}
	}

	return product, nil
}
