//go:build unit || e2e

package builder

import (
	"time"

	domcategory "biblio-api/internal/domain/category"
	reqdto "biblio-api/internal/handler/dto/request"
	"biblio-api/internal/usecase/queries"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type CategoryBuilder struct {
	ID          uuid.UUID
	Name        string
	Description *string
	BookCount   int
	CreatedAt   time.Time
}

func NewCategoryBuilder() *CategoryBuilder {
	description := "Books about computing and software"
	return &CategoryBuilder{
		ID:          uuid.New(),
		Name:        "Programming",
		Description: &description,
		CreatedAt:   time.Now(),
	}
}

func (c *CategoryBuilder) With(mutate func(*CategoryBuilder)) *CategoryBuilder {
	mutate(c)
	return c
}

// Build methods
func (c *CategoryBuilder) BuildDomain() (*domcategory.Category, error) {
	return domcategory.NewCategory(c.Name, c.Description)
}

func (c *CategoryBuilder) BuildSnapshot() *shared.CategorySnapshot {
	return &shared.CategorySnapshot{
		ID:   c.ID,
		Name: c.Name,
	}
}

func (c *CategoryBuilder) BuildViewQuery() *queries.CategoryView {
	return &queries.CategoryView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		BookCount:   c.BookCount,
		CreatedAt:   c.CreatedAt,
	}
}

func (c *CategoryBuilder) BuildRequestDTO() reqdto.CategoryRequest {
	return reqdto.CategoryRequest{
		Name:        c.Name,
		Description: c.Description,
	}
}

// Fluent builder methods
func (c *CategoryBuilder) WithID(id uuid.UUID) *CategoryBuilder {
	c.ID = id
	return c
}

func (c *CategoryBuilder) WithName(name string) *CategoryBuilder {
	c.Name = name
	return c
}

func (c *CategoryBuilder) WithDescription(description *string) *CategoryBuilder {
	c.Description = description
	return c
}

func (c *CategoryBuilder) WithBookCount(count int) *CategoryBuilder {
	c.BookCount = count
	return c
}
