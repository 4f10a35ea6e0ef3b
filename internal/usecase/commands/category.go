package commands

import (
	"context"

	"biblio-api/internal/domain/category"
	"biblio-api/internal/infra"
	"biblio-api/internal/pkg/errs"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateCategory   = errs.New("category name already exists")
	ErrCategoryInUse       = errs.New("category still has books")
	ErrInvalidCategoryData = errs.New("invalid category data")
)

type CategoryCommands interface {
	CreateCategory(ctx context.Context, name string, description *string) (uuid.UUID, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string, description *string) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewCategoryCommands(uow shared.UnitOfWork) CategoryCommands {
	return &categoryCommandsImpl{uow: uow}
}

func (c *categoryCommandsImpl) CreateCategory(ctx context.Context, name string, description *string) (uuid.UUID, error) {
	var id uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.checkNameFree(ctx, tx, name, uuid.Nil); err != nil {
			return err
		}

		cat, err := category.NewCategory(name, description)
		if err != nil {
			return errs.Mark(err, ErrInvalidCategoryData)
		}

		if err := tx.Categories().Create(ctx, tx.DB(), cat); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateCategory
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = cat.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *categoryCommandsImpl) UpdateCategory(ctx context.Context, id uuid.UUID, name string, description *string) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().CategoryByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCategoryNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.checkNameFree(ctx, tx, name, id); err != nil {
			return err
		}

		if name == "" {
			return errs.Mark(category.ErrEmptyName, ErrInvalidCategoryData)
		}

		if err := tx.Categories().Update(ctx, tx.DB(), id, name, description); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCategoryNotFound
			}
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateCategory
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *categoryCommandsImpl) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		count, err := tx.Reads().CountBooksInCategory(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if count > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Categories().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCategoryNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// checkNameFree rejects a name already taken by another category. The unique
// index on categories.name is the final arbiter; this gives a friendlier
// error for the common race-free case.
func (c *categoryCommandsImpl) checkNameFree(ctx context.Context, tx shared.Tx, name string, selfID uuid.UUID) error {
	existing, err := tx.Reads().CategoryByName(ctx, name)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing.ID != selfID {
		return ErrDuplicateCategory
	}
	return nil
}
