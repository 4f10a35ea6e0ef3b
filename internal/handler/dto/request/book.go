package request

import (
	"time"

	"biblio-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookRequest struct {
	Title       string     `json:"title" binding:"required"`
	Author      string     `json:"author" binding:"required"`
	ISBN        *string    `json:"isbn,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Description *string    `json:"description,omitempty"`
	Publisher   *string    `json:"publisher,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	TotalCopies int        `json:"total_copies" binding:"required,min=1"`
}

func (r *BookRequest) ToParams() commands.CreateBookParams {
	return commands.CreateBookParams{
		Title:       r.Title,
		Author:      r.Author,
		ISBN:        r.ISBN,
		CategoryID:  r.CategoryID,
		Description: r.Description,
		Publisher:   r.Publisher,
		PublishedAt: r.PublishedAt,
		TotalCopies: r.TotalCopies,
	}
}
