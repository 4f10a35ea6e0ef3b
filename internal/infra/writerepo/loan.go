package writerepo

import (
	"context"
	"time"

	"biblio-api/internal/domain/loan"
	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoanRepository struct{}

func NewLoanRepository() *LoanRepository {
	return &LoanRepository{}
}

var _ shared.LoanRepository = (*LoanRepository)(nil)

const createLoanSQL = `
INSERT INTO loans (id, user_id, book_id, requested_at, due_at, status)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *LoanRepository) Create(ctx context.Context, dbtx db.DBTX, l *loan.Loan) error {
	_, err := dbtx.Exec(ctx, createLoanSQL,
		l.ID(), l.UserID(), l.BookID(), l.RequestedAt(), l.DueAt(), l.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create loan", err, infra.ClassifyPgErr(err))
	}
	return nil
}

const updateLoanStatusIfSQL = `
UPDATE loans
SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2
`

// UpdateStatusIf is the guarded transition: the WHERE clause re-checks the
// source state, so a loan that moved on (or never existed) yields zero rows
// and the two cases are deliberately indistinguishable.
func (r *LoanRepository) UpdateStatusIf(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to loan.Status) error {
	tag, err := dbtx.Exec(ctx, updateLoanStatusIfSQL, id, from.String(), to.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update loan status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan not in expected status", nil, infra.KindNotFound)
	}
	return nil
}

const requestReturnIfOwnedSQL = `
UPDATE loans
SET status = 'return_requested', updated_at = now()
WHERE id = $1 AND user_id = $2 AND status IN ('active', 'overdue')
`

func (r *LoanRepository) RequestReturnIfOwned(ctx context.Context, dbtx db.DBTX, id, userID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, requestReturnIfOwnedSQL, id, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to request return", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan not out for this user", nil, infra.KindNotFound)
	}
	return nil
}

const markReturnedSQL = `
UPDATE loans
SET status = 'returned', returned_at = $2, updated_at = now()
WHERE id = $1 AND status = 'return_requested'
`

func (r *LoanRepository) MarkReturned(ctx context.Context, dbtx db.DBTX, id uuid.UUID, returnedAt time.Time) error {
	tag, err := dbtx.Exec(ctx, markReturnedSQL, id, returnedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark loan returned", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan has no pending return request", nil, infra.KindNotFound)
	}
	return nil
}

const markOverdueIfDueSQL = `
UPDATE loans
SET status = 'overdue', updated_at = now()
WHERE id = $1 AND status = 'active' AND due_at < $2
`

func (r *LoanRepository) MarkOverdueIfDue(ctx context.Context, dbtx db.DBTX, id uuid.UUID, now time.Time) error {
	tag, err := dbtx.Exec(ctx, markOverdueIfDueSQL, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to mark loan overdue", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan not active past its due date", nil, infra.KindNotFound)
	}
	return nil
}

const deleteIfPendingSQL = `
DELETE FROM loans
WHERE id = $1 AND status = 'pending'
`

func (r *LoanRepository) DeleteIfPending(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteIfPendingSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete loan", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loan not pending", nil, infra.KindNotFound)
	}
	return nil
}
