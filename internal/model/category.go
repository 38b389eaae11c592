package model

import "time"

// Category groups products in the catalogue.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	AddedByID   int64     `json:"addedById" db:"added_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryRequest is the payload for creating or updating a category.
type CategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
