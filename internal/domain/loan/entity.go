package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// LoanPeriod is the fixed borrowing window granted at request time.
	LoanPeriod = 14 * 24 * time.Hour
	// MaxActiveLoans is the per-user ceiling on loans that are out at once.
	// Pending requests do not count against it.
	MaxActiveLoans = 5
)

var (
	ErrInvalidStatus     = errors.New("invalid loan status")
	ErrInvalidTransition = errors.New("loan is not in the required state for this transition")
	ErrNotYetDue         = errors.New("loan due date has not passed")
)

// Loan is a single borrow record for one book by one user. Its status only
// moves through the transition methods below; inventory side effects belong
// to the command layer, which couples them with the status change in one
// transaction.
type Loan struct {
	id          uuid.UUID
	userID      uuid.UUID
	bookID      uuid.UUID
	requestedAt time.Time
	dueAt       time.Time
	returnedAt  *time.Time
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewLoan creates a pending loan request. No copy is committed yet; that
// happens on approval.
func NewLoan(userID, bookID uuid.UUID, now time.Time) *Loan {
	return &Loan{
		id:          uuid.New(),
		userID:      userID,
		bookID:      bookID,
		requestedAt: now,
		dueAt:       now.Add(LoanPeriod),
		status:      StatusPending,
	}
}

func ReconstructLoan(
	id, userID, bookID uuid.UUID,
	requestedAt, dueAt time.Time,
	returnedAt *time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Loan {
	return &Loan{
		id:          id,
		userID:      userID,
		bookID:      bookID,
		requestedAt: requestedAt,
		dueAt:       dueAt,
		returnedAt:  returnedAt,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Approve moves a pending request to active. The caller must decrement the
// book's available copies in the same transaction.
func (l *Loan) Approve() error {
	if l.status != StatusPending {
		return ErrInvalidTransition
	}
	l.status = StatusActive
	return nil
}

// RequestReturn marks an outstanding loan as awaiting return validation.
// An overdue loan can still be handed back.
func (l *Loan) RequestReturn() error {
	if l.status != StatusActive && l.status != StatusOverdue {
		return ErrInvalidTransition
	}
	l.status = StatusReturnRequested
	return nil
}

// ValidateReturn closes the loan. The caller must increment the book's
// available copies in the same transaction.
func (l *Loan) ValidateReturn(now time.Time) error {
	if l.status != StatusReturnRequested {
		return ErrInvalidTransition
	}
	l.status = StatusReturned
	l.returnedAt = &now
	return nil
}

// RejectReturn sends a return request back to active; the copy stays out.
func (l *Loan) RejectReturn() error {
	if l.status != StatusReturnRequested {
		return ErrInvalidTransition
	}
	l.status = StatusActive
	return nil
}

// MarkOverdue flags an active loan whose due date has passed. The flag is
// administrative; the loan behaves like an active one otherwise.
func (l *Loan) MarkOverdue(now time.Time) error {
	if l.status != StatusActive {
		return ErrInvalidTransition
	}
	if !now.After(l.dueAt) {
		return ErrNotYetDue
	}
	l.status = StatusOverdue
	return nil
}

func (l *Loan) IsOwnedBy(userID uuid.UUID) bool {
	return l.userID == userID
}

func (l *Loan) IsOverdue(now time.Time) bool {
	return l.status.IsOut() && now.After(l.dueAt)
}

func (l *Loan) ID() uuid.UUID          { return l.id }
func (l *Loan) UserID() uuid.UUID      { return l.userID }
func (l *Loan) BookID() uuid.UUID      { return l.bookID }
func (l *Loan) RequestedAt() time.Time { return l.requestedAt }
func (l *Loan) DueAt() time.Time       { return l.dueAt }
func (l *Loan) ReturnedAt() *time.Time { return l.returnedAt }
func (l *Loan) Status() Status         { return l.status }
func (l *Loan) CreatedAt() time.Time   { return l.createdAt }
func (l *Loan) UpdatedAt() time.Time   { return l.updatedAt }
