//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"biblio-api/internal/domain/loan"
	"biblio-api/internal/infra"
	"biblio-api/internal/pkg/clock"
	"biblio-api/internal/pkg/errs"
	"biblio-api/internal/usecase/commands"
	"biblio-api/internal/usecase/shared"
	"biblio-api/tests/common/builder"
	sharedmock "biblio-api/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type loanCommandsFixture struct {
	uow   *sharedmock.MockUnitOfWork
	tx    *sharedmock.MockTx
	reads *sharedmock.MockCommandReads
	loans *sharedmock.MockLoanRepository
	books *sharedmock.MockBookRepository
	clock *clock.MockClock
	cmd   commands.LoanCommands
}

func newLoanCommandsFixture(t *testing.T, now time.Time) *loanCommandsFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &loanCommandsFixture{
		uow:   sharedmock.NewMockUnitOfWork(ctrl),
		tx:    sharedmock.NewMockTx(ctrl),
		reads: sharedmock.NewMockCommandReads(ctrl),
		loans: sharedmock.NewMockLoanRepository(ctrl),
		books: sharedmock.NewMockBookRepository(ctrl),
		clock: clock.NewMockClock(now),
	}

	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).AnyTimes()
	f.tx.EXPECT().Reads().Return(f.reads).AnyTimes()
	f.tx.EXPECT().Loans().Return(f.loans).AnyTimes()
	f.tx.EXPECT().Books().Return(f.books).AnyTimes()
	f.tx.EXPECT().DB().Return(nil).AnyTimes()

	f.cmd = commands.NewLoanCommands(f.uow, f.clock)
	return f
}

func notFoundErr() error {
	return infra.WrapRepoErr("no rows", errs.New("no rows"), infra.KindNotFound)
}

func conflictErr() error {
	return infra.WrapRepoErr("zero rows", errs.New("zero rows"), infra.KindConflict)
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("unique violation", errs.New("duplicate key value violates unique constraint"), infra.KindDuplicateKey)
}

func TestRequestLoan(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	userID := uuid.New()

	t.Run("creates a pending loan due in two weeks", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		book := builder.NewBookBuilder().BuildSnapshot()

		f.reads.EXPECT().BookByID(gomock.Any(), book.ID).Return(book, nil)
		f.reads.EXPECT().HasOpenLoan(gomock.Any(), userID, book.ID).Return(false, nil)
		f.reads.EXPECT().CountLoansOut(gomock.Any(), userID).Return(0, nil)

		var created *loan.Loan
		f.loans.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ any, l *loan.Loan) error {
				created = l
				return nil
			})

		result, err := f.cmd.RequestLoan(context.Background(), userID, book.ID)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, loan.StatusPending, result.Status)
		assert.Equal(t, now.Add(loan.LoanPeriod), result.DueAt)
		require.NotNil(t, created)
		assert.Equal(t, result.LoanID, created.ID())
		assert.Equal(t, userID, created.UserID())
		assert.Equal(t, book.ID, created.BookID())
	})

	t.Run("unknown book", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		bookID := uuid.New()

		f.reads.EXPECT().BookByID(gomock.Any(), bookID).Return(nil, notFoundErr())

		result, err := f.cmd.RequestLoan(context.Background(), userID, bookID)
		require.Nil(t, result)
		require.ErrorIs(t, err, commands.ErrBookNotFound)
	})

	t.Run("no available copies", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		book := builder.NewBookBuilder().AsOutOfStock().BuildSnapshot()

		f.reads.EXPECT().BookByID(gomock.Any(), book.ID).Return(book, nil)

		result, err := f.cmd.RequestLoan(context.Background(), userID, book.ID)
		require.Nil(t, result)
		require.ErrorIs(t, err, commands.ErrBookUnavailable)
	})

	t.Run("duplicate open loan for the same book", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		book := builder.NewBookBuilder().BuildSnapshot()

		f.reads.EXPECT().BookByID(gomock.Any(), book.ID).Return(book, nil)
		f.reads.EXPECT().HasOpenLoan(gomock.Any(), userID, book.ID).Return(true, nil)

		result, err := f.cmd.RequestLoan(context.Background(), userID, book.ID)
		require.Nil(t, result)
		require.ErrorIs(t, err, commands.ErrDuplicateLoan)
	})

	t.Run("concurrent request loses the open-loan unique index race", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		book := builder.NewBookBuilder().BuildSnapshot()

		f.reads.EXPECT().BookByID(gomock.Any(), book.ID).Return(book, nil)
		f.reads.EXPECT().HasOpenLoan(gomock.Any(), userID, book.ID).Return(false, nil)
		f.reads.EXPECT().CountLoansOut(gomock.Any(), userID).Return(0, nil)
		f.loans.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(duplicateKeyErr())

		result, err := f.cmd.RequestLoan(context.Background(), userID, book.ID)
		require.Nil(t, result)
		require.ErrorIs(t, err, commands.ErrDuplicateLoan)
		require.NotErrorIs(t, err, commands.ErrDatabaseOperationFailed)
	})

	t.Run("loan limit reached", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		book := builder.NewBookBuilder().BuildSnapshot()

		f.reads.EXPECT().BookByID(gomock.Any(), book.ID).Return(book, nil)
		f.reads.EXPECT().HasOpenLoan(gomock.Any(), userID, book.ID).Return(false, nil)
		f.reads.EXPECT().CountLoansOut(gomock.Any(), userID).Return(loan.MaxActiveLoans, nil)

		result, err := f.cmd.RequestLoan(context.Background(), userID, book.ID)
		require.Nil(t, result)
		require.ErrorIs(t, err, commands.ErrLoanLimitExceeded)
	})

	t.Run("one slot left under the limit", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		book := builder.NewBookBuilder().BuildSnapshot()

		f.reads.EXPECT().BookByID(gomock.Any(), book.ID).Return(book, nil)
		f.reads.EXPECT().HasOpenLoan(gomock.Any(), userID, book.ID).Return(false, nil)
		f.reads.EXPECT().CountLoansOut(gomock.Any(), userID).Return(loan.MaxActiveLoans-1, nil)
		f.loans.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		result, err := f.cmd.RequestLoan(context.Background(), userID, book.ID)
		require.NoError(t, err)
		require.NotNil(t, result)
	})
}

func TestApproveLoan(t *testing.T) {
	now := time.Now()

	t.Run("activates the loan and decrements stock", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		snap := builder.NewLoanBuilder().BuildSnapshot()

		f.reads.EXPECT().LoanByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.loans.EXPECT().UpdateStatusIf(gomock.Any(), gomock.Any(), snap.ID, loan.StatusPending, loan.StatusActive).Return(nil)
		f.books.EXPECT().DecrementAvailable(gomock.Any(), gomock.Any(), snap.BookID).Return(nil)

		require.NoError(t, f.cmd.ApproveLoan(context.Background(), snap.ID))
	})

	t.Run("loan no longer pending", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		snap := builder.NewLoanBuilder().AsActive().BuildSnapshot()

		f.reads.EXPECT().LoanByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.loans.EXPECT().UpdateStatusIf(gomock.Any(), gomock.Any(), snap.ID, loan.StatusPending, loan.StatusActive).Return(notFoundErr())

		err := f.cmd.ApproveLoan(context.Background(), snap.ID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})

	t.Run("last copy taken concurrently", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		snap := builder.NewLoanBuilder().BuildSnapshot()

		f.reads.EXPECT().LoanByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.loans.EXPECT().UpdateStatusIf(gomock.Any(), gomock.Any(), snap.ID, loan.StatusPending, loan.StatusActive).Return(nil)
		f.books.EXPECT().DecrementAvailable(gomock.Any(), gomock.Any(), snap.BookID).Return(conflictErr())

		err := f.cmd.ApproveLoan(context.Background(), snap.ID)
		require.ErrorIs(t, err, commands.ErrBookOutOfStock)
	})

	t.Run("unknown loan", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.reads.EXPECT().LoanByID(gomock.Any(), loanID).Return(nil, notFoundErr())

		err := f.cmd.ApproveLoan(context.Background(), loanID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})
}

func TestRejectLoan(t *testing.T) {
	now := time.Now()

	t.Run("deletes a pending request", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().DeleteIfPending(gomock.Any(), gomock.Any(), loanID).Return(nil)

		require.NoError(t, f.cmd.RejectLoan(context.Background(), loanID))
	})

	t.Run("loan not pending", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().DeleteIfPending(gomock.Any(), gomock.Any(), loanID).Return(notFoundErr())

		err := f.cmd.RejectLoan(context.Background(), loanID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})
}

func TestRequestReturn(t *testing.T) {
	now := time.Now()
	userID := uuid.New()

	t.Run("marks an owned loan as return requested", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().RequestReturnIfOwned(gomock.Any(), gomock.Any(), loanID, userID).Return(nil)

		require.NoError(t, f.cmd.RequestReturn(context.Background(), loanID, userID))
	})

	t.Run("foreign or closed loan reads as absent", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().RequestReturnIfOwned(gomock.Any(), gomock.Any(), loanID, userID).Return(notFoundErr())

		err := f.cmd.RequestReturn(context.Background(), loanID, userID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})
}

func TestValidateReturn(t *testing.T) {
	now := time.Now()

	t.Run("closes the loan and restores stock", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		snap := builder.NewLoanBuilder().AsReturnRequested().BuildSnapshot()

		f.reads.EXPECT().LoanByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.loans.EXPECT().MarkReturned(gomock.Any(), gomock.Any(), snap.ID, now).Return(nil)
		f.books.EXPECT().IncrementAvailable(gomock.Any(), gomock.Any(), snap.BookID).Return(nil)

		require.NoError(t, f.cmd.ValidateReturn(context.Background(), snap.ID))
	})

	t.Run("replayed validation hits the stock cap", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		snap := builder.NewLoanBuilder().AsReturnRequested().BuildSnapshot()

		f.reads.EXPECT().LoanByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.loans.EXPECT().MarkReturned(gomock.Any(), gomock.Any(), snap.ID, now).Return(nil)
		f.books.EXPECT().IncrementAvailable(gomock.Any(), gomock.Any(), snap.BookID).Return(conflictErr())

		err := f.cmd.ValidateReturn(context.Background(), snap.ID)
		require.ErrorIs(t, err, commands.ErrBookFullStock)
	})

	t.Run("loan not awaiting validation", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		snap := builder.NewLoanBuilder().AsActive().BuildSnapshot()

		f.reads.EXPECT().LoanByID(gomock.Any(), snap.ID).Return(snap, nil)
		f.loans.EXPECT().MarkReturned(gomock.Any(), gomock.Any(), snap.ID, now).Return(notFoundErr())

		err := f.cmd.ValidateReturn(context.Background(), snap.ID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})
}

func TestRejectReturn(t *testing.T) {
	now := time.Now()

	t.Run("sends the loan back to active", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().UpdateStatusIf(gomock.Any(), gomock.Any(), loanID, loan.StatusReturnRequested, loan.StatusActive).Return(nil)

		require.NoError(t, f.cmd.RejectReturn(context.Background(), loanID))
	})

	t.Run("loan not awaiting validation", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().UpdateStatusIf(gomock.Any(), gomock.Any(), loanID, loan.StatusReturnRequested, loan.StatusActive).Return(notFoundErr())

		err := f.cmd.RejectReturn(context.Background(), loanID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})
}

func TestMarkOverdue(t *testing.T) {
	now := time.Now()

	t.Run("flags an active loan past due", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().MarkOverdueIfDue(gomock.Any(), gomock.Any(), loanID, now).Return(nil)

		require.NoError(t, f.cmd.MarkOverdue(context.Background(), loanID))
	})

	t.Run("loan not yet due or not active", func(t *testing.T) {
		f := newLoanCommandsFixture(t, now)
		loanID := uuid.New()

		f.loans.EXPECT().MarkOverdueIfDue(gomock.Any(), gomock.Any(), loanID, now).Return(notFoundErr())

		err := f.cmd.MarkOverdue(context.Background(), loanID)
		require.ErrorIs(t, err, commands.ErrLoanNotFound)
	})
}
