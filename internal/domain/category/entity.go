package category

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("category name must not be empty")

type Category struct {
	id          uuid.UUID
	name        string
	description *string
	createdAt   time.Time
}

func NewCategory(name string, description *string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Category{
		id:          uuid.New(),
		name:        name,
		description: description,
	}, nil
}

func ReconstructCategory(id uuid.UUID, name string, description *string, createdAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
	}
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() *string { return c.description }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
