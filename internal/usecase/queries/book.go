package queries

import (
	"context"

	"github.com/google/uuid"
)

type BookFilter struct {
	Search     *string
	CategoryID *uuid.UUID
	Author     *string
	Page       int
	Limit      int
}

type BookReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	Search(ctx context.Context, filter BookFilter) ([]*BookView, int, error)
}

type BookQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*BookView, error)
	List(ctx context.Context, filter BookFilter) ([]*BookView, *Pagination, error)
}

type bookQueriesImpl struct {
	store BookReadStore
}

func NewBookQueries(store BookReadStore) BookQueries {
	return &bookQueriesImpl{store: store}
}

func (q *bookQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*BookView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *bookQueriesImpl) List(ctx context.Context, filter BookFilter) ([]*BookView, *Pagination, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	books, total, err := q.store.Search(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	pagination := &Pagination{
		CurrentPage:  filter.Page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: filter.Limit,
	}
	return books, pagination, nil
}
