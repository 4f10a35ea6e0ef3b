package readstore

import (
	"context"

	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type CategoryReadStore struct {
	db db.DBTX
}

func NewCategoryReadStore(dbtx db.DBTX) *CategoryReadStore {
	return &CategoryReadStore{db: dbtx}
}

var _ queries.CategoryReadStore = (*CategoryReadStore)(nil)

const categoryViewSelect = `
SELECT c.id, c.name, c.description, count(b.id), c.created_at
FROM categories c
LEFT JOIN books b ON b.category_id = c.id
GROUP BY c.id, c.name, c.description, c.created_at
ORDER BY c.name ASC
`

func (s *CategoryReadStore) FindAll(ctx context.Context) ([]*queries.CategoryView, error) {
	rows, err := s.db.Query(ctx, categoryViewSelect)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list categories", err)
	}
	defer rows.Close()

	var views []*queries.CategoryView
	for rows.Next() {
		var (
			v           queries.CategoryView
			description pgtype.Text
		)
		if err := rows.Scan(&v.ID, &v.Name, &description, &v.BookCount, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan category row", err)
		}
		v.Description = pgconv.StringPtrFromPgtype(description)
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read category rows", err)
	}
	return views, nil
}
