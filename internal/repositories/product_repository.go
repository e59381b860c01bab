package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopassist/shopassist/internal/models"
	"github.com/shopassist/shopassist/internal/utils"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, query string) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ReplaceAll(ctx context.Context, products []*models.Product) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

// ListProducts returns all products in insertion order, or only those whose
// name or description contains the query, case-insensitively.
func (r *productRepository) ListProducts(ctx context.Context, query string) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var (
		rows *sql.Rows
		err  error
	)

	if query == "" {
		listSQL := `
			SELECT id, name, description, price, stock, category
			FROM products
			ORDER BY id
		`
		rows, err = r.DB.QueryContext(dbCtx, listSQL)
	} else {
		searchSQL := `
			SELECT id, name, description, price, stock, category
			FROM products
			WHERE name ILIKE $1 OR description ILIKE $1
			ORDER BY id
		`
		rows, err = r.DB.QueryContext(dbCtx, searchSQL, "%"+query+"%")
	}

	if err != nil {
		return nil, fmt.Errorf("querying database: %w", err)
	}

	defer rows.Close()

	var products []*models.Product

	for rows.Next() {
		product := &models.Product{}

		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.Category)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}

	query := `
		SELECT id, name, description, price, stock, category
		FROM products
		WHERE id = $1
	`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.Category)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("querying database: %w", err)
	}

	return product, nil
}

// ReplaceAll swaps the whole catalog for the given products inside one
// transaction. Used by the bulk loader; identifiers are reassigned.
func (r *productRepository) ReplaceAll(ctx context.Context, products []*models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(dbCtx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	insertSQL := `
		INSERT INTO products (name, description, price, stock, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	for _, product := range products {
		err := tx.QueryRowContext(dbCtx, insertSQL, product.Name, product.Description, product.Price, product.Stock, product.Category).Scan(&product.ID)
		if err != nil {
			return fmt.Errorf("failed to insert product %q: %w", product.Name, err)
		}
	}

	return tx.Commit()
}
