package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/shopassist/shopassist/internal/errors"
	"github.com/shopassist/shopassist/internal/models"
	repository "github.com/shopassist/shopassist/internal/repositories"
)

// CartService owns all cart writes. Every operation validates the full item
// list against the catalog before anything is persisted; the first failing
// item aborts the whole request.
type CartService interface {
	CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.Cart, error)
	GetCart(ctx context.Context, id int64) (*models.Cart, error)
	UpdateCart(ctx context.Context, id int64, req *models.UpdateCartRequest) (*models.Cart, error)
}

type cartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) CartService {
	return &cartService{carts: carts, products: products}
}

// CreateCart builds a new cart from the requested items, in request order.
// Duplicate product ids are kept as separate lines. An empty item list is
// accepted and yields an empty cart. Non-positive quantities are rejected
// before any catalog access.
func (s *cartService) CreateCart(ctx context.Context, req *models.CreateCartRequest) (*models.Cart, error) {

	for _, item := range req.Items {
		if item.Qty <= 0 {
			return nil, appErrors.ValidationError(fmt.Sprintf("Quantity for product %d must be positive", item.ProductID))
		}
	}

	lines, totalAmount, totalItems, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	cart := &models.Cart{
		Items:       lines,
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
	}

	if err := s.carts.CreateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to create cart").WithError(err)
	}

	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, id int64) (*models.Cart, error) {

	cart, err := s.carts.GetCartByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return cart, nil
}

// UpdateCart replaces the cart's line list wholesale. Items with qty <= 0 are
// dropped before validation; submitting a line with qty 0 is how a caller
// removes it. An update that drops every line empties the cart.
func (s *cartService) UpdateCart(ctx context.Context, id int64, req *models.UpdateCartRequest) (*models.Cart, error) {

	// Cart existence is checked before any catalog access.
	cart, err := s.carts.GetCartByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Cart not found").WithError(err)
		}
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	requested := make([]models.CartItemRequest, 0, len(req.Items))

	for _, item := range req.Items {
		if item.Qty <= 0 {
			continue
		}
		requested = append(requested, item)
	}

	lines, totalAmount, totalItems, err := s.buildLines(ctx, requested)
	if err != nil {
		return nil, err
	}

	cart.Items = lines
	cart.TotalAmount = totalAmount
	cart.TotalItems = totalItems

	if err := s.carts.UpdateCart(ctx, cart); err != nil {
		return nil, appErrors.DatabaseError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// buildLines validates each requested item against the catalog and snapshots
// the product's current name and price. It fails on the first unknown product
// or the first quantity exceeding recorded stock; stock is only checked,
// never decremented.
func (s *cartService) buildLines(ctx context.Context, items []models.CartItemRequest) ([]models.CartLine, float64, int64, error) {

	lines := make([]models.CartLine, 0, len(items))

	var totalAmount float64
	var totalItems int64

	for _, item := range items {

		product, err := s.products.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, 0, 0, appErrors.NotFoundError(fmt.Sprintf("Product %d not found", item.ProductID)).WithError(err)
			}
			return nil, 0, 0, appErrors.DatabaseError("Failed to fetch product").WithError(err)
		}

		if product.Stock < item.Qty {
			return nil, 0, 0, appErrors.InsufficientStockError(fmt.Sprintf("Insufficient stock for %s", product.Name)).
				WithDetail(fmt.Sprintf("product %d: requested %d, available %d", product.ID, item.Qty, product.Stock))
		}

		lines = append(lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Qty:       item.Qty,
		})

		totalAmount += product.Price * float64(item.Qty)
		totalItems += item.Qty
	}

	return lines, totalAmount, totalItems, nil
}
