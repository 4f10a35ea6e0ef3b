package writerepo

import (
	"context"

	"biblio-api/internal/domain/category"
	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CategoryRepository struct{}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

var _ shared.CategoryRepository = (*CategoryRepository)(nil)

const createCategorySQL = `
INSERT INTO categories (id, name, description)
VALUES ($1, $2, $3)
`

func (r *CategoryRepository) Create(ctx context.Context, dbtx db.DBTX, c *category.Category) error {
	_, err := dbtx.Exec(ctx, createCategorySQL,
		c.ID(), c.Name(), pgconv.StringPtrToPgtype(c.Description()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create category", err, infra.ClassifyPgErr(err))
	}
	return nil
}

const updateCategorySQL = `
UPDATE categories
SET name = $2, description = $3
WHERE id = $1
`

func (r *CategoryRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, name string, description *string) error {
	tag, err := dbtx.Exec(ctx, updateCategorySQL, id, name, pgconv.StringPtrToPgtype(description))
	if err != nil {
		return infra.WrapRepoErr("failed to update category", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("category not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteCategorySQL = `
DELETE FROM categories
WHERE id = $1
`

func (r *CategoryRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteCategorySQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete category", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("category not found", nil, infra.KindNotFound)
	}
	return nil
}
