package readstore

import (
	"context"

	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

var _ queries.BookReadStore = (*BookReadStore)(nil)

const bookViewSelect = `
SELECT b.id, b.title, b.author, b.isbn, b.category_id, c.name,
       b.description, b.publisher, b.published_at,
       b.total_copies, b.available_copies,
       b.created_at, b.updated_at
FROM books b
LEFT JOIN categories c ON c.id = b.category_id
`

func (s *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	row := s.db.QueryRow(ctx, bookViewSelect+`WHERE b.id = $1`, id)
	v, err := scanBookView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get book", err)
	}
	return v, nil
}

// Search filters on a free-text term over title/author/isbn plus optional
// category and author filters, and returns the page together with the total
// count for pagination.
func (s *BookReadStore) Search(ctx context.Context, filter queries.BookFilter) ([]*queries.BookView, int, error) {
	whereSQL := `
WHERE ($1::text IS NULL OR b.title ILIKE '%' || $1 || '%' OR b.author ILIKE '%' || $1 || '%' OR b.isbn ILIKE '%' || $1 || '%')
  AND ($2::uuid IS NULL OR b.category_id = $2)
  AND ($3::text IS NULL OR b.author ILIKE '%' || $3 || '%')
`
	search := pgconv.StringPtrToPgtype(filter.Search)
	categoryID := pgconv.UUIDPtrToPgtype(filter.CategoryID)
	author := pgconv.StringPtrToPgtype(filter.Author)

	var total int
	countRow := s.db.QueryRow(ctx, `SELECT count(*) FROM books b `+whereSQL, search, categoryID, author)
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to count books", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	rows, err := s.db.Query(ctx, bookViewSelect+whereSQL+`
ORDER BY b.title ASC
LIMIT $4 OFFSET $5`, search, categoryID, author, filter.Limit, offset)
	if err != nil {
		return nil, 0, infra.WrapRepoErr("failed to search books", err)
	}
	defer rows.Close()

	var views []*queries.BookView
	for rows.Next() {
		v, err := scanBookView(rows)
		if err != nil {
			return nil, 0, infra.WrapRepoErr("failed to scan book row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, infra.WrapRepoErr("failed to read book rows", err)
	}
	return views, total, nil
}

func scanBookView(row pgx.Row) (*queries.BookView, error) {
	var (
		v            queries.BookView
		isbn         pgtype.Text
		categoryID   pgtype.UUID
		categoryName pgtype.Text
		description  pgtype.Text
		publisher    pgtype.Text
		publishedAt  pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID, &v.Title, &v.Author, &isbn, &categoryID, &categoryName,
		&description, &publisher, &publishedAt,
		&v.TotalCopies, &v.AvailableCopies,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	v.ISBN = pgconv.StringPtrFromPgtype(isbn)
	v.CategoryID = pgconv.UUIDPtrFromPgtype(categoryID)
	v.CategoryName = pgconv.StringPtrFromPgtype(categoryName)
	v.Description = pgconv.StringPtrFromPgtype(description)
	v.Publisher = pgconv.StringPtrFromPgtype(publisher)
	v.PublishedAt = pgconv.TimePtrFromPgtype(publishedAt)
	return &v, nil
}
