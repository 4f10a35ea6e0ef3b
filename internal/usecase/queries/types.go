package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type LoanView struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	BookID      uuid.UUID  `json:"book_id"`
	BookTitle   string     `json:"book_title"`
	BookAuthor  string     `json:"book_author"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
	RequestedAt time.Time  `json:"requested_at"`
	DueAt       time.Time  `json:"due_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type BookView struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            *string    `json:"isbn,omitempty"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty"`
	CategoryName    *string    `json:"category_name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Publisher       *string    `json:"publisher,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CategoryView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	BookCount   int       `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	StudentNumber *string   `json:"student_number,omitempty"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
}

type UserView struct {
	ID            uuid.UUID  `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	StudentNumber *string    `json:"student_number,omitempty"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_active"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PopularBookView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	LoanCount int       `json:"loan_count"`
}

type MonthlyLoanCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type DashboardView struct {
	TotalBooks       int                 `json:"total_books"`
	TotalUsers       int                 `json:"total_users"`
	ActiveLoans      int                 `json:"active_loans"`
	ReturnsThisMonth int                 `json:"returns_this_month"`
	ActiveBorrowers  int                 `json:"active_borrowers"`
	OverdueLoans     int                 `json:"overdue_loans"`
	PopularBooks     []*PopularBookView  `json:"popular_books"`
	LoansPerMonth    []*MonthlyLoanCount `json:"loans_per_month"`
}

type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
}
