package readstore

import (
	"context"

	"biblio-api/internal/domain/loan"
	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type LoanReadStore struct {
	db db.DBTX
}

func NewLoanReadStore(dbtx db.DBTX) *LoanReadStore {
	return &LoanReadStore{db: dbtx}
}

var _ queries.LoanReadStore = (*LoanReadStore)(nil)

const loanViewSelect = `
SELECT l.id, l.user_id, l.book_id,
       b.title, b.author,
       u.first_name || ' ' || u.last_name, u.email,
       l.requested_at, l.due_at, l.returned_at, l.status,
       l.created_at, l.updated_at
FROM loans l
JOIN books b ON b.id = l.book_id
JOIN users u ON u.id = l.user_id
`

func (s *LoanReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.LoanView, error) {
	rows, err := s.db.Query(ctx, loanViewSelect+`WHERE l.user_id = $1 ORDER BY l.requested_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loans by user", err)
	}
	return scanLoanViews(rows)
}

func (s *LoanReadStore) FindByStatus(ctx context.Context, status loan.Status) ([]*queries.LoanView, error) {
	rows, err := s.db.Query(ctx, loanViewSelect+`WHERE l.status = $1 ORDER BY l.requested_at ASC`, status.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loans by status", err)
	}
	return scanLoanViews(rows)
}

func (s *LoanReadStore) FindAll(ctx context.Context, status *loan.Status, limit, offset int32) ([]*queries.LoanView, error) {
	var statusFilter pgtype.Text
	if status != nil {
		statusFilter = pgconv.StringToPgtype(status.String())
	}

	rows, err := s.db.Query(ctx, loanViewSelect+`
WHERE ($1::text IS NULL OR l.status = $1)
ORDER BY l.requested_at DESC
LIMIT $2 OFFSET $3`, statusFilter, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loans", err)
	}
	return scanLoanViews(rows)
}

func scanLoanViews(rows pgx.Rows) ([]*queries.LoanView, error) {
	defer rows.Close()

	var views []*queries.LoanView
	for rows.Next() {
		var (
			v          queries.LoanView
			returnedAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.BookID,
			&v.BookTitle, &v.BookAuthor,
			&v.UserName, &v.UserEmail,
			&v.RequestedAt, &v.DueAt, &returnedAt, &v.Status,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loan row", err)
		}
		v.ReturnedAt = pgconv.TimePtrFromPgtype(returnedAt)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read loan rows", err)
	}
	return views, nil
}
