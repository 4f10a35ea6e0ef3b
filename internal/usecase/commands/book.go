package commands

import (
	"context"
	"strings"
	"time"

	"biblio-api/internal/domain/book"
	"biblio-api/internal/infra"
	"biblio-api/internal/pkg/errs"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCategoryNotFound = errs.New("category not found")
	ErrBookHasOpenLoans = errs.New("book has open loans")
	ErrInvalidBookData  = errs.New("invalid book data")
)

type CreateBookParams struct {
	Title       string
	Author      string
	ISBN        *string
	CategoryID  *uuid.UUID
	Description *string
	Publisher   *string
	PublishedAt *time.Time
	TotalCopies int
}

type UpdateBookParams = CreateBookParams

type BookCommands interface {
	CreateBook(ctx context.Context, params CreateBookParams) (uuid.UUID, error)
	UpdateBook(ctx context.Context, id uuid.UUID, params UpdateBookParams) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type bookCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewBookCommands(uow shared.UnitOfWork) BookCommands {
	return &bookCommandsImpl{uow: uow}
}

func (c *bookCommandsImpl) CreateBook(ctx context.Context, params CreateBookParams) (uuid.UUID, error) {
	var id uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.checkCategory(ctx, tx, params.CategoryID); err != nil {
			return err
		}

		b, err := book.NewBook(
			params.Title, params.Author, params.ISBN, params.CategoryID,
			params.Description, params.Publisher, params.PublishedAt,
			params.TotalCopies,
		)
		if err != nil {
			return errs.Mark(err, ErrInvalidBookData)
		}

		if err := tx.Books().Create(ctx, tx.DB(), b); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = b.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// UpdateBook rewrites the catalog fields and resizes the inventory. The
// available count follows the total so that copies currently on loan are
// preserved. Resize here validates the new total against a snapshot; the
// persisted arithmetic runs inside the update statement itself, relative to
// the row, so concurrent approvals and returns are never overwritten.
func (c *bookCommandsImpl) UpdateBook(ctx context.Context, id uuid.UUID, params UpdateBookParams) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := c.checkCategory(ctx, tx, params.CategoryID); err != nil {
			return err
		}

		snap, err := tx.Reads().BookByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		title := strings.TrimSpace(params.Title)
		author := strings.TrimSpace(params.Author)
		if title == "" {
			return errs.Mark(book.ErrEmptyTitle, ErrInvalidBookData)
		}
		if author == "" {
			return errs.Mark(book.ErrEmptyAuthor, ErrInvalidBookData)
		}

		b := book.ReconstructBook(
			snap.ID, title, author, params.ISBN, params.CategoryID,
			params.Description, params.Publisher, params.PublishedAt,
			snap.TotalCopies, snap.AvailableCopies, time.Time{}, time.Time{},
		)
		if err := b.Resize(params.TotalCopies); err != nil {
			return errs.Mark(err, ErrInvalidBookData)
		}

		if err := tx.Books().Update(ctx, tx.DB(), b); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookCommandsImpl) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		openLoans, err := tx.Reads().CountOpenLoansForBook(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if openLoans > 0 {
			return ErrBookHasOpenLoans
		}

		if err := tx.Books().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookCommandsImpl) checkCategory(ctx context.Context, tx shared.Tx, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	if _, err := tx.Reads().CategoryByID(ctx, *categoryID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrCategoryNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
