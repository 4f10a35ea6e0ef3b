//go:build unit

package book_test

import (
	"testing"

	"biblio-api/internal/domain/book"
	"biblio-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookBuilder)
	errIs  error
}

func TestBook(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "The Go Programming Language", actual.Title())
		assert.Equal(t, 3, actual.TotalCopies())
		assert.Equal(t, 3, actual.AvailableCopies())
		assert.True(t, actual.IsAvailable())
		assert.Equal(t, 0, actual.OnLoanCount())
	})

	t.Run("field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.BookBuilder) { b.WithTitle("   ") },
				errIs:  book.ErrEmptyTitle,
			},
			{
				name:   "empty author",
				mutate: func(b *builder.BookBuilder) { b.WithAuthor("") },
				errIs:  book.ErrEmptyAuthor,
			},
			{
				name:   "zero copies",
				mutate: func(b *builder.BookBuilder) { b.WithTotalCopies(0) },
				errIs:  book.ErrInvalidCopyCount,
			},
			{
				name:   "negative copies",
				mutate: func(b *builder.BookBuilder) { b.WithTotalCopies(-1) },
				errIs:  book.ErrInvalidCopyCount,
			},
			{
				name:   "single copy",
				mutate: func(b *builder.BookBuilder) { b.WithTotalCopies(1) },
			},
			{
				name:   "no optional fields",
				mutate: func(b *builder.BookBuilder) { b.WithISBN(nil).WithoutCategory() },
			},
		})
	})

	t.Run("title trimming", func(t *testing.T) {
		actual, err := builder.NewBookBuilder().WithTitle("  Padded Title  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Padded Title", actual.Title())
	})

	t.Run("decrement available", func(t *testing.T) {
		b := builder.NewBookBuilder().WithTotalCopies(2).WithAvailableCopies(2).BuildReconstructed()

		require.NoError(t, b.DecrementAvailable())
		require.NoError(t, b.DecrementAvailable())
		assert.Equal(t, 0, b.AvailableCopies())
		assert.False(t, b.IsAvailable())
		assert.Equal(t, 2, b.OnLoanCount())

		err := b.DecrementAvailable()
		require.ErrorIs(t, err, book.ErrOutOfStock)
		assert.Equal(t, 0, b.AvailableCopies())
	})

	t.Run("increment available is capped at total", func(t *testing.T) {
		b := builder.NewBookBuilder().WithTotalCopies(2).WithAvailableCopies(1).BuildReconstructed()

		require.NoError(t, b.IncrementAvailable())
		assert.Equal(t, 2, b.AvailableCopies())

		err := b.IncrementAvailable()
		require.ErrorIs(t, err, book.ErrAllCopiesInStock)
		assert.Equal(t, 2, b.AvailableCopies())
	})

	t.Run("resize keeps on-loan count", func(t *testing.T) {
		// 5 total, 2 available: 3 copies out
		b := builder.NewBookBuilder().WithTotalCopies(5).WithAvailableCopies(2).BuildReconstructed()

		require.NoError(t, b.Resize(8))
		assert.Equal(t, 8, b.TotalCopies())
		assert.Equal(t, 5, b.AvailableCopies())
		assert.Equal(t, 3, b.OnLoanCount())

		require.NoError(t, b.Resize(3))
		assert.Equal(t, 3, b.TotalCopies())
		assert.Equal(t, 0, b.AvailableCopies())
	})

	t.Run("resize below on-loan count floors available at zero", func(t *testing.T) {
		b := builder.NewBookBuilder().WithTotalCopies(5).WithAvailableCopies(1).BuildReconstructed()

		require.NoError(t, b.Resize(2))
		assert.Equal(t, 2, b.TotalCopies())
		assert.Equal(t, 0, b.AvailableCopies())
	})

	t.Run("resize rejects negative total", func(t *testing.T) {
		b := builder.NewBookBuilder().BuildReconstructed()
		require.ErrorIs(t, b.Resize(-1), book.ErrNegativeResize)
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b1, err1 := builder.NewBookBuilder().BuildDomain()
		b2, err2 := builder.NewBookBuilder().BuildDomain()
		require.NoError(t, err1)
		require.NoError(t, err2)

		assert.NotEqual(t, b1.ID(), b2.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
