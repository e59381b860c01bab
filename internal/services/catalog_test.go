package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	cacheMocks "github.com/shopassist/shopassist/internal/cache/mocks"
	appErrors "github.com/shopassist/shopassist/internal/errors"
	"github.com/shopassist/shopassist/internal/models"
	"github.com/shopassist/shopassist/internal/repositories/mocks"
	service "github.com/shopassist/shopassist/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - No Filter Returns All", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		expected := []*models.Product{
			{ID: 1, Name: "Red Shirt"},
			{ID: 2, Name: "Blue Hat"},
		}
		mockRepo.On("ListProducts", mock.Anything, "").Return(expected, nil).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, "")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, products)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - No Matches Yields Empty Slice, Not Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("ListProducts", mock.Anything, "nothing").Return(nil, nil).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, "nothing")

		// Assert
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("ListProducts", mock.Anything, "shirt").Return(nil, errors.New("connection refused")).Once()

		// Act
		products, err := catalogService.ListProducts(ctx, "shirt")

		// Assert
		require.Error(t, err)
		assert.Nil(t, products)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestGetProductByID(t *testing.T) {
	ctx := context.Background()

	shirt := &models.Product{ID: 1, Name: "Red Shirt", Price: 19.99, Stock: 10}

	t.Run("Success - Cache Miss Reads Store And Populates Cache", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		mockCache := new(cacheMocks.Cache)
		catalogService := service.NewCatalogService(mockRepo, mockCache)

		mockCache.On("Get", mock.Anything, "product:1", mock.Anything).Return(false, nil).Once()
		mockRepo.On("GetProductByID", mock.Anything, int64(1)).Return(shirt, nil).Once()
		mockCache.On("Set", mock.Anything, "product:1", shirt, mock.Anything).Return(nil).Once()

		// Act
		product, err := catalogService.GetProductByID(ctx, 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, shirt, product)
		mockCache.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Cache Hit Skips Store", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		mockCache := new(cacheMocks.Cache)
		catalogService := service.NewCatalogService(mockRepo, mockCache)

		mockCache.On("Get", mock.Anything, "product:1", mock.Anything).Run(func(args mock.Arguments) {
			cached := args.Get(2).(*models.Product)
			*cached = *shirt
		}).Return(true, nil).Once()

		// Act
		product, err := catalogService.GetProductByID(ctx, 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, shirt.Name, product.Name)
		mockRepo.AssertNotCalled(t, "GetProductByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Idempotent Read", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("GetProductByID", mock.Anything, int64(1)).Return(shirt, nil).Twice()

		// Act
		first, err1 := catalogService.GetProductByID(ctx, 1)
		second, err2 := catalogService.GetProductByID(ctx, 1)

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, first, second, "two reads with no intervening mutation must match")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		catalogService := service.NewCatalogService(mockRepo, nil)

		mockRepo.On("GetProductByID", mock.Anything, int64(999999)).Return(nil, sql.ErrNoRows).Once()

		// Act
		product, err := catalogService.GetProductByID(ctx, 999999)

		// Assert
		require.Error(t, err)
		assert.Nil(t, product)

		var appErr *appErrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrCodeNotFound, appErr.Code)
	})

	t.Run("Success - Cache Failure Falls Through To Store", func(t *testing.T) {
		// Arrange
		mockRepo := new(mocks.ProductRepository)
		mockCache := new(cacheMocks.Cache)
		catalogService := service.NewCatalogService(mockRepo, mockCache)

		mockCache.On("Get", mock.Anything, "product:1", mock.Anything).Return(false, errors.New("redis down")).Once()
		mockRepo.On("GetProductByID", mock.Anything, int64(1)).Return(shirt, nil).Once()
		mockCache.On("Set", mock.Anything, "product:1", shirt, mock.Anything).Return(errors.New("redis down")).Once()

		// Act
		product, err := catalogService.GetProductByID(ctx, 1)

		// Assert
		require.NoError(t, err, "cache trouble must never fail a read")
		assert.Equal(t, shirt, product)
	})
}
