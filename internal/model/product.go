package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product with available stock.
type Product struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Images      []string        `json:"images" db:"images"`
	CategoryID  int64           `json:"categoryId" db:"category_id"`
	AddedByID   int64           `json:"addedById" db:"added_by"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductRequest is the payload for creating a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Images      []string        `json:"images"`
	CategoryID  int64           `json:"categoryId"`
}

// UpdateProductRequest is the payload for PATCH /products/{id}.
// Nil fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Quantity    *int             `json:"quantity,omitempty"`
	Images      *[]string        `json:"images,omitempty"`
	CategoryID  *int64           `json:"categoryId,omitempty"`
}
