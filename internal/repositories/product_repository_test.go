package repository_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopassist/shopassist/internal/models"
	repository "github.com/shopassist/shopassist/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductRepo(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	assert.NotNil(t, repo, "NewProductRepo should return a non-nil repository")
}

func productColumns() []string {
	return []string{"id", "name", "description", "price", "stock", "category"}
}

func TestProductRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProductRepo(db)
	ctx := t.Context()

	t.Run("ListProducts", func(t *testing.T) {
		t.Run("Success - No Filter", func(t *testing.T) {
			// Arrange
			rows := sqlmock.NewRows(productColumns()).
				AddRow(1, "Red Shirt", "Cotton shirt", 19.99, 10, "Shirts").
				AddRow(2, "Blue Hat", "Wool hat", 9.50, 5, "Hats")

			mock.ExpectQuery(`SELECT id, name, description, price, stock, category\s+FROM products\s+ORDER BY id`).
				WillReturnRows(rows)

			// Act
			products, err := repo.ListProducts(ctx, "")

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, int64(1), products[0].ID, "store-native order is insertion order")
			assert.Equal(t, "Blue Hat", products[1].Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - Case-Insensitive Filter", func(t *testing.T) {
			// Arrange
			rows := sqlmock.NewRows(productColumns()).
				AddRow(1, "Red Shirt", "Cotton shirt", 19.99, 10, "Shirts")

			mock.ExpectQuery(`WHERE name ILIKE \$1 OR description ILIKE \$1`).
				WithArgs("%shirt%").
				WillReturnRows(rows)

			// Act
			products, err := repo.ListProducts(ctx, "shirt")

			// Assert
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "Red Shirt", products[0].Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Success - No Matches", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(`WHERE name ILIKE \$1 OR description ILIKE \$1`).
				WithArgs("%boots%").
				WillReturnRows(sqlmock.NewRows(productColumns()))

			// Act
			products, err := repo.ListProducts(ctx, "boots")

			// Assert
			require.NoError(t, err)
			assert.Empty(t, products)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("connection refused")
			mock.ExpectQuery(`SELECT id, name, description, price, stock, category`).
				WillReturnError(dbError)

			// Act
			products, err := repo.ListProducts(ctx, "")

			// Assert
			require.Error(t, err)
			assert.Nil(t, products)
			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("GetProductByID", func(t *testing.T) {
		expectedSQL := `SELECT id, name, description, price, stock, category\s+FROM products\s+WHERE id = \$1`

		t.Run("Success", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(int64(1)).
				WillReturnRows(sqlmock.NewRows(productColumns()).
					AddRow(1, "Red Shirt", "Cotton shirt", 19.99, 10, "Shirts"))

			// Act
			product, err := repo.GetProductByID(ctx, 1)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(1), product.ID)
			assert.Equal(t, "Red Shirt", product.Name)
			assert.Equal(t, 19.99, product.Price)
			assert.Equal(t, int64(10), product.Stock)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Not Found Surfaces sql.ErrNoRows", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs(int64(999999)).
				WillReturnRows(sqlmock.NewRows(productColumns()))

			// Act
			product, err := repo.GetProductByID(ctx, 999999)

			// Assert
			require.Error(t, err)
			assert.Nil(t, product)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})

	t.Run("ReplaceAll", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			// Arrange
			products := []*models.Product{
				{Name: "Red Shirt", Description: "Cotton shirt", Price: 19.99, Stock: 10, Category: "Shirts"},
				{Name: "Blue Hat", Description: "Wool hat", Price: 9.50, Stock: 5, Category: "Hats"},
			}

			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM products`).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(`INSERT INTO products`).
				WithArgs("Red Shirt", "Cotton shirt", 19.99, int64(10), "Shirts").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			mock.ExpectQuery(`INSERT INTO products`).
				WithArgs("Blue Hat", "Wool hat", 9.50, int64(5), "Hats").
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
			mock.ExpectCommit()

			// Act
			err := repo.ReplaceAll(ctx, products)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, int64(1), products[0].ID)
			assert.Equal(t, int64(2), products[1].ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run("Insert Failure Rolls Back", func(t *testing.T) {
			// Arrange
			dbError := errors.New("insert failed")

			mock.ExpectBegin()
			mock.ExpectExec(`DELETE FROM products`).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(`INSERT INTO products`).WillReturnError(dbError)
			mock.ExpectRollback()

			// Act
			err := repo.ReplaceAll(ctx, []*models.Product{{Name: "Red Shirt"}})

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, dbError)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	})
}
