//go:build unit

package commands_test

import (
	"context"
	"testing"

	"biblio-api/internal/domain/book"
	"biblio-api/internal/usecase/commands"
	"biblio-api/internal/usecase/shared"
	"biblio-api/tests/common/builder"
	sharedmock "biblio-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type bookCommandsFixture struct {
	uow   *sharedmock.MockUnitOfWork
	tx    *sharedmock.MockTx
	reads *sharedmock.MockCommandReads
	books *sharedmock.MockBookRepository
	cmd   commands.BookCommands
}

func newBookCommandsFixture(t *testing.T) *bookCommandsFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &bookCommandsFixture{
		uow:   sharedmock.NewMockUnitOfWork(ctrl),
		tx:    sharedmock.NewMockTx(ctrl),
		reads: sharedmock.NewMockCommandReads(ctrl),
		books: sharedmock.NewMockBookRepository(ctrl),
	}

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Books().Return(f.books).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()

	f.cmd = commands.NewBookCommands(f.uow)
	return f
}

func TestCreateBook(t *testing.T) {
	t.Run("creates a book with full initial stock", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		params := builder.NewBookBuilder().WithTotalCopies(4).BuildRequestDTO().ToParams()

		f.reads.EXPECT().CategoryByID(gomock.Any(), *params.CategoryID).
			Return(&shared.CategorySnapshot{ID: *params.CategoryID, Name: "Programming"}, nil)

		var created *book.Book
		f.books.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, b *book.Book) error {
				created = b
				return nil
			})

		id, err := f.cmd.CreateBook(context.Background(), params)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, created.ID(), id)
		assert.Equal(t, 4, created.TotalCopies())
		assert.Equal(t, 4, created.AvailableCopies())
	})

	t.Run("skips the category check when none is set", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		params := builder.NewBookBuilder().WithoutCategory().BuildRequestDTO().ToParams()

		f.books.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.cmd.CreateBook(context.Background(), params)
		require.NoError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		params := builder.NewBookBuilder().BuildRequestDTO().ToParams()

		f.reads.EXPECT().CategoryByID(gomock.Any(), *params.CategoryID).Return(nil, notFoundErr())

		_, err := f.cmd.CreateBook(context.Background(), params)
		require.ErrorIs(t, err, commands.ErrCategoryNotFound)
	})

	t.Run("invalid book data", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		params := builder.NewBookBuilder().WithoutCategory().WithTitle("").BuildRequestDTO().ToParams()

		_, err := f.cmd.CreateBook(context.Background(), params)
		require.ErrorIs(t, err, commands.ErrInvalidBookData)
		require.ErrorIs(t, err, book.ErrEmptyTitle)
	})
}

func TestUpdateBook(t *testing.T) {
	t.Run("resize preserves copies on loan", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		// 5 total, 2 available: 3 copies out
		snap := builder.NewBookBuilder().WithTotalCopies(5).WithAvailableCopies(2).BuildSnapshot()
		params := builder.NewBookBuilder().WithID(snap.ID).WithoutCategory().WithTotalCopies(8).BuildRequestDTO().ToParams()

		f.reads.EXPECT().BookByID(gomock.Any(), snap.ID).Return(snap, nil)

		var updated *book.Book
		f.books.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, b *book.Book) error {
				updated = b
				return nil
			})

		require.NoError(t, f.cmd.UpdateBook(context.Background(), snap.ID, params))
		require.NotNil(t, updated)

		assert.Equal(t, 8, updated.TotalCopies())
		assert.Equal(t, 5, updated.AvailableCopies())
		assert.Equal(t, 3, updated.OnLoanCount())
	})

	t.Run("shrink below on-loan count floors available at zero", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		snap := builder.NewBookBuilder().WithTotalCopies(5).WithAvailableCopies(1).BuildSnapshot()
		params := builder.NewBookBuilder().WithID(snap.ID).WithoutCategory().WithTotalCopies(2).BuildRequestDTO().ToParams()

		f.reads.EXPECT().BookByID(gomock.Any(), snap.ID).Return(snap, nil)

		var updated *book.Book
		f.books.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, b *book.Book) error {
				updated = b
				return nil
			})

		require.NoError(t, f.cmd.UpdateBook(context.Background(), snap.ID, params))
		require.NotNil(t, updated)

		assert.Equal(t, 2, updated.TotalCopies())
		assert.Equal(t, 0, updated.AvailableCopies())
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		id := uuid.New()
		params := builder.NewBookBuilder().WithoutCategory().BuildRequestDTO().ToParams()

		f.reads.EXPECT().BookByID(gomock.Any(), id).Return(nil, notFoundErr())

		err := f.cmd.UpdateBook(context.Background(), id, params)
		require.ErrorIs(t, err, commands.ErrBookNotFound)
	})

	t.Run("empty title", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		snap := builder.NewBookBuilder().BuildSnapshot()
		params := builder.NewBookBuilder().WithoutCategory().WithTitle("").BuildRequestDTO().ToParams()

		f.reads.EXPECT().BookByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := f.cmd.UpdateBook(context.Background(), snap.ID, params)
		require.ErrorIs(t, err, commands.ErrInvalidBookData)
	})

	t.Run("whitespace-only title", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		snap := builder.NewBookBuilder().BuildSnapshot()
		params := builder.NewBookBuilder().WithoutCategory().WithTitle("   ").BuildRequestDTO().ToParams()

		f.reads.EXPECT().BookByID(gomock.Any(), snap.ID).Return(snap, nil)

		err := f.cmd.UpdateBook(context.Background(), snap.ID, params)
		require.ErrorIs(t, err, commands.ErrInvalidBookData)
		require.ErrorIs(t, err, book.ErrEmptyTitle)
	})
}

func TestDeleteBook(t *testing.T) {
	t.Run("deletes a book without open loans", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		id := uuid.New()

		f.reads.EXPECT().CountOpenLoansForBook(gomock.Any(), id).Return(0, nil)
		f.books.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(nil)

		require.NoError(t, f.cmd.DeleteBook(context.Background(), id))
	})

	t.Run("refuses while loans are open", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		id := uuid.New()

		f.reads.EXPECT().CountOpenLoansForBook(gomock.Any(), id).Return(2, nil)

		err := f.cmd.DeleteBook(context.Background(), id)
		require.ErrorIs(t, err, commands.ErrBookHasOpenLoans)
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newBookCommandsFixture(t)
		id := uuid.New()

		f.reads.EXPECT().CountOpenLoansForBook(gomock.Any(), id).Return(0, nil)
		f.books.EXPECT().Delete(gomock.Any(), gomock.Any(), id).Return(notFoundErr())

		err := f.cmd.DeleteBook(context.Background(), id)
		require.ErrorIs(t, err, commands.ErrBookNotFound)
	})
}
