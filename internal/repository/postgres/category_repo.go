package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leandrochavesf/gofinances/ledger-backend/db/sqlc"
	"github.com/leandrochavesf/gofinances/ledger-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool    *pgxpool.Pool
	queries *sqlc.Queries
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		pool:    pool,
		queries: sqlc.New(pool),
	}
}

// FindOrCreate upserts the category so concurrent callers converge on one row
func (r *CategoryRepository) FindOrCreate(ctx context.Context, title string) (*domain.Category, error) {
	category, err := queriesFor(ctx, r.queries).UpsertCategory(ctx, title)
	if err != nil {
		return nil, err
	}
	return sqlcCategoryToDomain(category), nil
}

// GetByTitles retrieves every category whose title is in titles
func (r *CategoryRepository) GetByTitles(ctx context.Context, titles []string) ([]*domain.Category, error) {
	if len(titles) == 0 {
		return []*domain.Category{}, nil
	}
	categories, err := queriesFor(ctx, r.queries).GetCategoriesByTitles(ctx, titles)
	if err != nil {
		return nil, err
	}
	return sqlcCategoriesToDomain(categories), nil
}

// CreateBatch inserts the given titles with a single statement
func (r *CategoryRepository) CreateBatch(ctx context.Context, titles []string) ([]*domain.Category, error) {
	if len(titles) == 0 {
		return []*domain.Category{}, nil
	}
	categories, err := queriesFor(ctx, r.queries).CreateCategories(ctx, titles)
	if err != nil {
		return nil, err
	}
	return sqlcCategoriesToDomain(categories), nil
}

// GetAll retrieves all categories ordered by title
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	categories, err := queriesFor(ctx, r.queries).ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return sqlcCategoriesToDomain(categories), nil
}

// Helper functions

func sqlcCategoryToDomain(c sqlc.Category) *domain.Category {
	return &domain.Category{
		ID:        c.ID,
		Title:     c.Title,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
}

func sqlcCategoriesToDomain(categories []sqlc.Category) []*domain.Category {
	result := make([]*domain.Category, len(categories))
	for i, c := range categories {
		result[i] = sqlcCategoryToDomain(c)
	}
	return result
}
