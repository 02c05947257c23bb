package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Category groups transactions by purpose. Titles are unique.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	// FindOrCreate returns the category with the given title, creating it when absent.
	FindOrCreate(ctx context.Context, title string) (*Category, error)
	GetByTitles(ctx context.Context, titles []string) ([]*Category, error)
	// CreateBatch inserts one category per title. Titles that already exist are skipped
	// and not part of the result.
	CreateBatch(ctx context.Context, titles []string) ([]*Category, error)
	GetAll(ctx context.Context) ([]*Category, error)
}
