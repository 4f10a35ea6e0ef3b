package commands

import (
	"context"
	"time"

	"biblio-api/internal/domain/loan"
	"biblio-api/internal/infra"
	"biblio-api/internal/pkg/clock"
	"biblio-api/internal/pkg/errs"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound      = errs.New("book not found")
	ErrLoanNotFound      = errs.New("loan not found or not in the required state")
	ErrBookUnavailable   = errs.New("book has no available copies")
	ErrDuplicateLoan     = errs.New("user already has an open loan for this book")
	ErrLoanLimitExceeded = errs.New("active loan limit reached")
	ErrBookOutOfStock    = errs.New("no copies left at approval time")
	ErrBookFullStock     = errs.New("all copies already in stock")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type RequestLoanResult struct {
	LoanID uuid.UUID
	Status loan.Status
	DueAt  time.Time
}

type LoanCommands interface {
	RequestLoan(ctx context.Context, userID, bookID uuid.UUID) (*RequestLoanResult, error)
	ApproveLoan(ctx context.Context, loanID uuid.UUID) error
	RejectLoan(ctx context.Context, loanID uuid.UUID) error
	RequestReturn(ctx context.Context, loanID, userID uuid.UUID) error
	ValidateReturn(ctx context.Context, loanID uuid.UUID) error
	RejectReturn(ctx context.Context, loanID uuid.UUID) error
	MarkOverdue(ctx context.Context, loanID uuid.UUID) error
}

type loanCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewLoanCommands(uow shared.UnitOfWork, clock clock.Clock) LoanCommands {
	return &loanCommandsImpl{uow: uow, clock: clock}
}

// RequestLoan creates a pending loan. Inventory is untouched here; a copy
// is only committed when an admin approves. The availability check is a
// soft one and is re-validated at approval time.
func (c *loanCommandsImpl) RequestLoan(ctx context.Context, userID, bookID uuid.UUID) (*RequestLoanResult, error) {
	var result *RequestLoanResult

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bookSnap, err := tx.Reads().BookByID(ctx, bookID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if bookSnap.AvailableCopies <= 0 {
			return ErrBookUnavailable
		}

		hasOpen, err := tx.Reads().HasOpenLoan(ctx, userID, bookID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if hasOpen {
			return ErrDuplicateLoan
		}

		outCount, err := tx.Reads().CountLoansOut(ctx, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if outCount >= loan.MaxActiveLoans {
			return ErrLoanLimitExceeded
		}

		l := loan.NewLoan(userID, bookID, c.clock.Now())
		if err := tx.Loans().Create(ctx, tx.DB(), l); err != nil {
			// Two requests racing past HasOpenLoan resolve on the partial
			// unique index over open loans; the loser is a duplicate, not
			// a storage failure.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateLoan
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &RequestLoanResult{
			LoanID: l.ID(),
			Status: l.Status(),
			DueAt:  l.DueAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveLoan flips pending to active and decrements the book's available
// copies in one transaction. The availability guard is the conditional
// decrement itself, so two concurrent approvals cannot both succeed on the
// last copy.
func (c *loanCommandsImpl) ApproveLoan(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LoanByID(ctx, loanID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Loans().UpdateStatusIf(ctx, tx.DB(), loanID, loan.StatusPending, loan.StatusActive); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Books().DecrementAvailable(ctx, tx.DB(), snap.BookID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookOutOfStock
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// RejectLoan removes a pending request. No copy was committed, so the
// inventory stays untouched.
func (c *loanCommandsImpl) RejectLoan(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Loans().DeleteIfPending(ctx, tx.DB(), loanID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// RequestReturn is the borrower-side half of the return handshake. The
// update is scoped by owner and status, so a foreign or closed loan reads
// as absent.
func (c *loanCommandsImpl) RequestReturn(ctx context.Context, loanID, userID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Loans().RequestReturnIfOwned(ctx, tx.DB(), loanID, userID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// ValidateReturn closes the loan and puts the copy back on the shelf in
// one transaction. The increment is capped at total_copies, so a replayed
// validation cannot inflate the ledger.
func (c *loanCommandsImpl) ValidateReturn(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().LoanByID(ctx, loanID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Loans().MarkReturned(ctx, tx.DB(), loanID, c.clock.Now()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Books().IncrementAvailable(ctx, tx.DB(), snap.BookID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrBookFullStock
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *loanCommandsImpl) RejectReturn(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Loans().UpdateStatusIf(ctx, tx.DB(), loanID, loan.StatusReturnRequested, loan.StatusActive); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// MarkOverdue is an administrative flag on active loans past their due
// date. Inventory is untouched.
func (c *loanCommandsImpl) MarkOverdue(ctx context.Context, loanID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Loans().MarkOverdueIfDue(ctx, tx.DB(), loanID, c.clock.Now()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLoanNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
