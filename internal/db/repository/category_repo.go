package repository

import (
	"context"

	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]sqlcgen.Category, error)
}

// CategoryRepository exposes the read-only category catalogue.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns every category ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]sqlcgen.Category, error) {
	rows, err := r.store.ListCategories(ctx)
	return rows, translate(err)
}
