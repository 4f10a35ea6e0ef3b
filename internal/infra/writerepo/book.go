package writerepo

import (
	"context"

	"biblio-api/internal/domain/book"
	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookRepository struct{}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

var _ shared.BookRepository = (*BookRepository)(nil)

const createBookSQL = `
INSERT INTO books (id, title, author, isbn, category_id, description, publisher, published_at, total_copies, available_copies)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (r *BookRepository) Create(ctx context.Context, dbtx db.DBTX, b *book.Book) error {
	_, err := dbtx.Exec(ctx, createBookSQL,
		b.ID(), b.Title(), b.Author(),
		pgconv.StringPtrToPgtype(b.ISBN()),
		pgconv.UUIDPtrToPgtype(b.CategoryID()),
		pgconv.StringPtrToPgtype(b.Description()),
		pgconv.StringPtrToPgtype(b.Publisher()),
		pgconv.TimePtrToPgtype(b.PublishedAt()),
		b.TotalCopies(), b.AvailableCopies(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create book", err, infra.ClassifyPgErr(err))
	}
	return nil
}

const updateBookSQL = `
UPDATE books
SET title = $2,
    author = $3,
    isbn = $4,
    category_id = $5,
    description = $6,
    publisher = $7,
    published_at = $8,
    total_copies = $9,
    available_copies = GREATEST(0, $9 - (total_copies - available_copies)),
    updated_at = now()
WHERE id = $1
`

// Update rewrites the catalog fields and resizes the inventory. The on-loan
// count is derived from the row inside the statement, never from a value
// read earlier in the transaction, so a decrement or increment that commits
// between a snapshot read and this write cannot be overwritten.
func (r *BookRepository) Update(ctx context.Context, dbtx db.DBTX, b *book.Book) error {
	tag, err := dbtx.Exec(ctx, updateBookSQL,
		b.ID(), b.Title(), b.Author(),
		pgconv.StringPtrToPgtype(b.ISBN()),
		pgconv.UUIDPtrToPgtype(b.CategoryID()),
		pgconv.StringPtrToPgtype(b.Description()),
		pgconv.StringPtrToPgtype(b.Publisher()),
		pgconv.TimePtrToPgtype(b.PublishedAt()),
		b.TotalCopies(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update book", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteBookSQL = `
DELETE FROM books
WHERE id = $1
`

func (r *BookRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteBookSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete book", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

const decrementAvailableSQL = `
UPDATE books
SET available_copies = available_copies - 1, updated_at = now()
WHERE id = $1 AND available_copies > 0
`

// DecrementAvailable commits one copy. The availability check lives in the
// WHERE clause so two concurrent approvals cannot both take the last copy;
// zero rows means out of stock, reported as CONFLICT.
func (r *BookRepository) DecrementAvailable(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, decrementAvailableSQL, bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to decrement available copies", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no available copies left", nil, infra.KindConflict)
	}
	return nil
}

const incrementAvailableSQL = `
UPDATE books
SET available_copies = available_copies + 1, updated_at = now()
WHERE id = $1 AND available_copies < total_copies
`

// IncrementAvailable returns one copy, capped at total_copies so a duplicate
// return validation cannot inflate the ledger.
func (r *BookRepository) IncrementAvailable(ctx context.Context, dbtx db.DBTX, bookID uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, incrementAvailableSQL, bookID)
	if err != nil {
		return infra.WrapRepoErr("failed to increment available copies", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("available copies already at total", nil, infra.KindConflict)
	}
	return nil
}
