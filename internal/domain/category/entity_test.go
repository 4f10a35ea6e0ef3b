//go:build unit

package category_test

import (
	"testing"

	"biblio-api/internal/domain/category"
	"biblio-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewCategoryBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Programming", actual.Name())
		require.NotNil(t, actual.Description())
	})

	t.Run("empty name", func(t *testing.T) {
		actual, err := builder.NewCategoryBuilder().WithName("").BuildDomain()
		require.Nil(t, actual)
		require.ErrorIs(t, err, category.ErrEmptyName)
	})

	t.Run("whitespace only name", func(t *testing.T) {
		actual, err := builder.NewCategoryBuilder().WithName("   ").BuildDomain()
		require.Nil(t, actual)
		require.ErrorIs(t, err, category.ErrEmptyName)
	})

	t.Run("name trimming", func(t *testing.T) {
		actual, err := builder.NewCategoryBuilder().WithName("  Fiction  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Fiction", actual.Name())
	})

	t.Run("description is optional", func(t *testing.T) {
		actual, err := builder.NewCategoryBuilder().WithDescription(nil).BuildDomain()
		require.NoError(t, err)
		assert.Nil(t, actual.Description())
	})
}
