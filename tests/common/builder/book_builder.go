//go:build unit || e2e

package builder

import (
	"time"

	dombook "biblio-api/internal/domain/book"
	reqdto "biblio-api/internal/handler/dto/request"
	"biblio-api/internal/usecase/queries"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookBuilder struct {
	ID              uuid.UUID
	Title           string
	Author          string
	ISBN            *string
	CategoryID      *uuid.UUID
	CategoryName    *string
	Description     *string
	Publisher       *string
	PublishedAt     *time.Time
	TotalCopies     int
	AvailableCopies int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewBookBuilder() *BookBuilder {
	now := time.Now()
	isbn := "9780134190440"
	categoryID := uuid.New()
	categoryName := "Programming"
	return &BookBuilder{
		ID:              uuid.New(),
		Title:           "The Go Programming Language",
		Author:          "Alan A. A. Donovan",
		ISBN:            &isbn,
		CategoryID:      &categoryID,
		CategoryName:    &categoryName,
		TotalCopies:     3,
		AvailableCopies: 3,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

func (b *BookBuilder) Clone() *BookBuilder {
	var c BookBuilder
	_ = copier.Copy(&c, b)
	return &c
}

// Build methods
func (b *BookBuilder) BuildDomain() (*dombook.Book, error) {
	return dombook.NewBook(b.Title, b.Author, b.ISBN, b.CategoryID, b.Description, b.Publisher, b.PublishedAt, b.TotalCopies)
}

func (b *BookBuilder) BuildReconstructed() *dombook.Book {
	return dombook.ReconstructBook(
		b.ID, b.Title, b.Author, b.ISBN, b.CategoryID, b.Description, b.Publisher, b.PublishedAt,
		b.TotalCopies, b.AvailableCopies, b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookBuilder) BuildSnapshot() *shared.BookSnapshot {
	return &shared.BookSnapshot{
		ID:              b.ID,
		Title:           b.Title,
		CategoryID:      b.CategoryID,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func (b *BookBuilder) BuildViewQuery() *queries.BookView {
	return &queries.BookView{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		CategoryID:      b.CategoryID,
		CategoryName:    b.CategoryName,
		Description:     b.Description,
		Publisher:       b.Publisher,
		PublishedAt:     b.PublishedAt,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (b *BookBuilder) BuildRequestDTO() *reqdto.BookRequest {
	return &reqdto.BookRequest{
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		CategoryID:  b.CategoryID,
		Description: b.Description,
		Publisher:   b.Publisher,
		PublishedAt: b.PublishedAt,
		TotalCopies: b.TotalCopies,
	}
}

// Fluent builder methods
func (b *BookBuilder) WithID(id uuid.UUID) *BookBuilder {
	b.ID = id
	return b
}

func (b *BookBuilder) WithTitle(title string) *BookBuilder {
	b.Title = title
	return b
}

func (b *BookBuilder) WithAuthor(author string) *BookBuilder {
	b.Author = author
	return b
}

func (b *BookBuilder) WithISBN(isbn *string) *BookBuilder {
	b.ISBN = isbn
	return b
}

func (b *BookBuilder) WithCategoryID(categoryID *uuid.UUID) *BookBuilder {
	b.CategoryID = categoryID
	return b
}

func (b *BookBuilder) WithoutCategory() *BookBuilder {
	b.CategoryID = nil
	b.CategoryName = nil
	return b
}

func (b *BookBuilder) WithTotalCopies(total int) *BookBuilder {
	b.TotalCopies = total
	return b
}

func (b *BookBuilder) WithAvailableCopies(available int) *BookBuilder {
	b.AvailableCopies = available
	return b
}

func (b *BookBuilder) AsOutOfStock() *BookBuilder {
	b.AvailableCopies = 0
	return b
}

func (b *BookBuilder) AsFullStock() *BookBuilder {
	b.AvailableCopies = b.TotalCopies
	return b
}
