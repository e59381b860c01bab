package models

import "time"

// CartLine is one persisted cart entry. Name and Price are captured from the
// catalog at write time and are never re-read afterwards.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int64   `json:"qty"`
}

type Cart struct {
	ID          int64      `json:"id"`
	Items       []CartLine `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	TotalItems  int64      `json:"total_items"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Qty       int64 `json:"qty"`
}

type CreateCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"dive"`
}

type UpdateCartRequest struct {
	Items []CartItemRequest `json:"items" validate:"dive"`
}
