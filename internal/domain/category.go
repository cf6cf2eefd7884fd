package domain

import (
	"context"
	"errors"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository defines the interface for category-related operations.
// Categories are read-only from this API; they are assumed pre-seeded.
type CategoryRepository interface {
	// List retrieves all categories ordered by id
	List(ctx context.Context) ([]Category, error)

	// GetByID retrieves a category by its id
	GetByID(ctx context.Context, id int) (*Category, error)
}

// Category represents a question category
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}
