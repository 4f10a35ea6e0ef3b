package readstore

import (
	"context"

	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the write side's guard lookups. Bound to a transaction
// it reads the same snapshot the writes will act on.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{db: dbtx}
}

var _ shared.CommandReads = (*CommandReads)(nil)

func (r *CommandReads) BookByID(ctx context.Context, id uuid.UUID) (*shared.BookSnapshot, error) {
	var (
		snap       shared.BookSnapshot
		categoryID pgtype.UUID
	)
	row := r.db.QueryRow(ctx, `
SELECT id, title, category_id, total_copies, available_copies
FROM books WHERE id = $1`, id)
	if err := row.Scan(&snap.ID, &snap.Title, &categoryID, &snap.TotalCopies, &snap.AvailableCopies); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get book snapshot", err)
	}
	snap.CategoryID = pgconv.UUIDPtrFromPgtype(categoryID)
	return &snap, nil
}

func (r *CommandReads) LoanByID(ctx context.Context, id uuid.UUID) (*shared.LoanSnapshot, error) {
	var snap shared.LoanSnapshot
	row := r.db.QueryRow(ctx, `
SELECT id, user_id, book_id, status, due_at
FROM loans WHERE id = $1`, id)
	if err := row.Scan(&snap.ID, &snap.UserID, &snap.BookID, &snap.Status, &snap.DueAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("loan not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get loan snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) HasOpenLoan(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM loans
  WHERE user_id = $1 AND book_id = $2
    AND status IN ('pending', 'active', 'return_requested', 'overdue')
)`, userID, bookID)
	if err := row.Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check open loan", err)
	}
	return exists, nil
}

// CountLoansOut counts copies currently out with the user; pending requests
// do not hold a copy and are not counted.
func (r *CommandReads) CountLoansOut(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	row := r.db.QueryRow(ctx, `
SELECT count(*) FROM loans
WHERE user_id = $1 AND status IN ('active', 'return_requested', 'overdue')`, userID)
	if err := row.Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count loans out", err)
	}
	return count, nil
}

func (r *CommandReads) CountOpenLoansForBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	var count int
	row := r.db.QueryRow(ctx, `
SELECT count(*) FROM loans
WHERE book_id = $1 AND status IN ('pending', 'active', 'return_requested', 'overdue')`, bookID)
	if err := row.Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count open loans for book", err)
	}
	return count, nil
}

func (r *CommandReads) CategoryByID(ctx context.Context, id uuid.UUID) (*shared.CategorySnapshot, error) {
	var snap shared.CategorySnapshot
	row := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id)
	if err := row.Scan(&snap.ID, &snap.Name); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get category snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) CategoryByName(ctx context.Context, name string) (*shared.CategorySnapshot, error) {
	var snap shared.CategorySnapshot
	row := r.db.QueryRow(ctx, `SELECT id, name FROM categories WHERE name = $1`, name)
	if err := row.Scan(&snap.ID, &snap.Name); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("category not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get category snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) CountBooksInCategory(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int
	row := r.db.QueryRow(ctx, `SELECT count(*) FROM books WHERE category_id = $1`, categoryID)
	if err := row.Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count books in category", err)
	}
	return count, nil
}

func (r *CommandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	row := r.db.QueryRow(ctx, `SELECT id, email, role, is_active FROM users WHERE id = $1`, id)
	if err := row.Scan(&snap.ID, &snap.Email, &snap.Role, &snap.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user snapshot", err)
	}
	return &snap, nil
}

func (r *CommandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	row := r.db.QueryRow(ctx, `SELECT id, email, role, is_active FROM users WHERE email = $1`, email)
	if err := row.Scan(&snap.ID, &snap.Email, &snap.Role, &snap.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user snapshot", err)
	}
	return &snap, nil
}
