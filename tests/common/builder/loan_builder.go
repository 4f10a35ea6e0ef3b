//go:build unit || e2e

package builder

import (
	"time"

	domloan "biblio-api/internal/domain/loan"
	reqdto "biblio-api/internal/handler/dto/request"
	"biblio-api/internal/usecase/queries"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LoanBuilder struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	BookID      uuid.UUID
	BookTitle   string
	BookAuthor  string
	UserName    string
	UserEmail   string
	Status      domloan.Status
	RequestedAt time.Time
	DueAt       time.Time
	ReturnedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewLoanBuilder() *LoanBuilder {
	now := time.Now()
	return &LoanBuilder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		BookID:      uuid.New(),
		BookTitle:   "The Go Programming Language",
		BookAuthor:  "Alan A. A. Donovan",
		UserName:    "Taro Yamada",
		UserEmail:   "student@example.com",
		Status:      domloan.StatusPending,
		RequestedAt: now,
		DueAt:       now.Add(domloan.LoanPeriod),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (l *LoanBuilder) With(mutate func(*LoanBuilder)) *LoanBuilder {
	mutate(l)
	return l
}

func (l *LoanBuilder) Clone() *LoanBuilder {
	var c LoanBuilder
	_ = copier.Copy(&c, l)
	return &c
}

// Build methods
func (l *LoanBuilder) BuildDomain() *domloan.Loan {
	return domloan.NewLoan(l.UserID, l.BookID, l.RequestedAt)
}

func (l *LoanBuilder) BuildReconstructed() *domloan.Loan {
	return domloan.ReconstructLoan(
		l.ID, l.UserID, l.BookID,
		l.RequestedAt, l.DueAt, l.ReturnedAt,
		l.Status, l.CreatedAt, l.UpdatedAt,
	)
}

func (l *LoanBuilder) BuildSnapshot() *shared.LoanSnapshot {
	return &shared.LoanSnapshot{
		ID:     l.ID,
		UserID: l.UserID,
		BookID: l.BookID,
		Status: l.Status.String(),
		DueAt:  l.DueAt,
	}
}

func (l *LoanBuilder) BuildViewQuery() *queries.LoanView {
	return &queries.LoanView{
		ID:          l.ID,
		UserID:      l.UserID,
		BookID:      l.BookID,
		BookTitle:   l.BookTitle,
		BookAuthor:  l.BookAuthor,
		UserName:    l.UserName,
		UserEmail:   l.UserEmail,
		RequestedAt: l.RequestedAt,
		DueAt:       l.DueAt,
		ReturnedAt:  l.ReturnedAt,
		Status:      l.Status.String(),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (l *LoanBuilder) BuildCreateRequestDTO() reqdto.CreateLoanRequest {
	return reqdto.CreateLoanRequest{BookID: l.BookID}
}

// Fluent builder methods
func (l *LoanBuilder) WithID(id uuid.UUID) *LoanBuilder {
	l.ID = id
	return l
}

func (l *LoanBuilder) WithUserID(userID uuid.UUID) *LoanBuilder {
	l.UserID = userID
	return l
}

func (l *LoanBuilder) WithBookID(bookID uuid.UUID) *LoanBuilder {
	l.BookID = bookID
	return l
}

func (l *LoanBuilder) WithStatus(status domloan.Status) *LoanBuilder {
	l.Status = status
	return l
}

func (l *LoanBuilder) WithRequestedAt(requestedAt time.Time) *LoanBuilder {
	l.RequestedAt = requestedAt
	l.DueAt = requestedAt.Add(domloan.LoanPeriod)
	return l
}

func (l *LoanBuilder) WithDueAt(dueAt time.Time) *LoanBuilder {
	l.DueAt = dueAt
	return l
}

func (l *LoanBuilder) AsActive() *LoanBuilder {
	l.Status = domloan.StatusActive
	return l
}

func (l *LoanBuilder) AsReturnRequested() *LoanBuilder {
	l.Status = domloan.StatusReturnRequested
	return l
}

func (l *LoanBuilder) AsReturned(returnedAt time.Time) *LoanBuilder {
	l.Status = domloan.StatusReturned
	l.ReturnedAt = &returnedAt
	return l
}

func (l *LoanBuilder) AsOverdue() *LoanBuilder {
	l.Status = domloan.StatusOverdue
	l.DueAt = time.Now().Add(-24 * time.Hour)
	return l
}
