package queries

import (
	"context"

	"biblio-api/internal/domain/loan"

	"github.com/google/uuid"
)

type LoanReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*LoanView, error)
	FindByStatus(ctx context.Context, status loan.Status) ([]*LoanView, error)
	FindAll(ctx context.Context, status *loan.Status, limit, offset int32) ([]*LoanView, error)
}

type LoanQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID) ([]*LoanView, error)
	ListPending(ctx context.Context) ([]*LoanView, error)
	ListReturnRequests(ctx context.Context) ([]*LoanView, error)
	ListAll(ctx context.Context, status *loan.Status, page, limit int) ([]*LoanView, error)
}

type loanQueriesImpl struct {
	store LoanReadStore
}

func NewLoanQueries(store LoanReadStore) LoanQueries {
	return &loanQueriesImpl{store: store}
}

func (q *loanQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]*LoanView, error) {
	return q.store.FindByUserID(ctx, userID)
}

func (q *loanQueriesImpl) ListPending(ctx context.Context) ([]*LoanView, error) {
	return q.store.FindByStatus(ctx, loan.StatusPending)
}

func (q *loanQueriesImpl) ListReturnRequests(ctx context.Context) ([]*LoanView, error) {
	return q.store.FindByStatus(ctx, loan.StatusReturnRequested)
}

func (q *loanQueriesImpl) ListAll(ctx context.Context, status *loan.Status, page, limit int) ([]*LoanView, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit
	return q.store.FindAll(ctx, status, int32(limit), int32(offset))
}
