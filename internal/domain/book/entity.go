package book

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyAuthor      = errors.New("author must not be empty")
	ErrInvalidCopyCount = errors.New("total copies must be at least 1")
	ErrOutOfStock       = errors.New("no available copies left")
	ErrAllCopiesInStock = errors.New("available copies already at total")
	ErrNegativeResize   = errors.New("total copies cannot be negative")
)

// Book carries the catalog attributes together with the inventory ledger:
// the pair (totalCopies, availableCopies) with 0 <= available <= total.
// availableCopies moves only through DecrementAvailable, IncrementAvailable
// and Resize; everything else on the book is plain data.
type Book struct {
	id              uuid.UUID
	title           string
	author          string
	isbn            *string
	categoryID      *uuid.UUID
	description     *string
	publisher       *string
	publishedAt     *time.Time
	totalCopies     int
	availableCopies int
	createdAt       time.Time
	updatedAt       time.Time
}

func NewBook(
	title, author string,
	isbn *string,
	categoryID *uuid.UUID,
	description, publisher *string,
	publishedAt *time.Time,
	totalCopies int,
) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if totalCopies < 1 {
		return nil, ErrInvalidCopyCount
	}

	return &Book{
		id:              uuid.New(),
		title:           title,
		author:          author,
		isbn:            isbn,
		categoryID:      categoryID,
		description:     description,
		publisher:       publisher,
		publishedAt:     publishedAt,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	title, author string,
	isbn *string,
	categoryID *uuid.UUID,
	description, publisher *string,
	publishedAt *time.Time,
	totalCopies, availableCopies int,
	createdAt, updatedAt time.Time,
) *Book {
	return &Book{
		id:              id,
		title:           title,
		author:          author,
		isbn:            isbn,
		categoryID:      categoryID,
		description:     description,
		publisher:       publisher,
		publishedAt:     publishedAt,
		totalCopies:     totalCopies,
		availableCopies: availableCopies,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// DecrementAvailable commits one copy to a loan.
func (b *Book) DecrementAvailable() error {
	if b.availableCopies <= 0 {
		return ErrOutOfStock
	}
	b.availableCopies--
	return nil
}

// IncrementAvailable returns one copy to the shelf. The count is capped at
// totalCopies so a duplicate return validation cannot inflate the ledger.
func (b *Book) IncrementAvailable() error {
	if b.availableCopies >= b.totalCopies {
		return ErrAllCopiesInStock
	}
	b.availableCopies++
	return nil
}

// Resize changes totalCopies, keeping the number of copies currently on
// loan constant: available = max(0, available + (newTotal - oldTotal)).
func (b *Book) Resize(newTotal int) error {
	if newTotal < 0 {
		return ErrNegativeResize
	}
	diff := newTotal - b.totalCopies
	b.totalCopies = newTotal
	b.availableCopies += diff
	if b.availableCopies < 0 {
		b.availableCopies = 0
	}
	return nil
}

func (b *Book) IsAvailable() bool {
	return b.availableCopies > 0
}

// OnLoanCount is the number of copies currently out with borrowers.
func (b *Book) OnLoanCount() int {
	return b.totalCopies - b.availableCopies
}

func (b *Book) ID() uuid.UUID          { return b.id }
func (b *Book) Title() string          { return b.title }
func (b *Book) Author() string         { return b.author }
func (b *Book) ISBN() *string          { return b.isbn }
func (b *Book) CategoryID() *uuid.UUID { return b.categoryID }
func (b *Book) Description() *string   { return b.description }
func (b *Book) Publisher() *string     { return b.publisher }
func (b *Book) PublishedAt() *time.Time { return b.publishedAt }
func (b *Book) TotalCopies() int       { return b.totalCopies }
func (b *Book) AvailableCopies() int   { return b.availableCopies }
func (b *Book) CreatedAt() time.Time   { return b.createdAt }
func (b *Book) UpdatedAt() time.Time   { return b.updatedAt }
