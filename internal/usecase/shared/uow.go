package shared

import (
	"context"
	"time"

	"biblio-api/internal/domain/book"
	"biblio-api/internal/domain/category"
	"biblio-api/internal/domain/loan"
	"biblio-api/internal/domain/user"
	"biblio-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Loans() LoanRepository
	Books() BookRepository
	Categories() CategoryRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the minimal lookups the write side needs for its guards.
// Obtained from a Tx they run inside that transaction.
type CommandReads interface {
	BookByID(ctx context.Context, id uuid.UUID) (*BookSnapshot, error)
	LoanByID(ctx context.Context, id uuid.UUID) (*LoanSnapshot, error)
	HasOpenLoan(ctx context.Context, userID, bookID uuid.UUID) (bool, error)
	CountLoansOut(ctx context.Context, userID uuid.UUID) (int, error)
	CountOpenLoansForBook(ctx context.Context, bookID uuid.UUID) (int, error)
	CategoryByID(ctx context.Context, id uuid.UUID) (*CategorySnapshot, error)
	CategoryByName(ctx context.Context, name string) (*CategorySnapshot, error)
	CountBooksInCategory(ctx context.Context, categoryID uuid.UUID) (int, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

type LoanRepository interface {
	Create(ctx context.Context, db db.DBTX, l *loan.Loan) error
	// UpdateStatusIf flips the status only when the loan is still in the
	// expected source state; a zero-row update surfaces as NOT_FOUND.
	UpdateStatusIf(ctx context.Context, db db.DBTX, id uuid.UUID, from, to loan.Status) error
	RequestReturnIfOwned(ctx context.Context, db db.DBTX, id, userID uuid.UUID) error
	MarkReturned(ctx context.Context, db db.DBTX, id uuid.UUID, returnedAt time.Time) error
	MarkOverdueIfDue(ctx context.Context, db db.DBTX, id uuid.UUID, now time.Time) error
	DeleteIfPending(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type BookRepository interface {
	Create(ctx context.Context, db db.DBTX, b *book.Book) error
	Update(ctx context.Context, db db.DBTX, b *book.Book) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
	// DecrementAvailable is the conditional "decrement where available > 0";
	// a zero-row update surfaces as CONFLICT (out of stock).
	DecrementAvailable(ctx context.Context, db db.DBTX, bookID uuid.UUID) error
	// IncrementAvailable is capped at total_copies the same way.
	IncrementAvailable(ctx context.Context, db db.DBTX, bookID uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, db db.DBTX, c *category.Category) error
	Update(ctx context.Context, db db.DBTX, id uuid.UUID, name string, description *string) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, db db.DBTX, u *user.User) error
	Update(ctx context.Context, db db.DBTX, id uuid.UUID, params UpdateUserParams) error
	Delete(ctx context.Context, db db.DBTX, id uuid.UUID) error
	UpdateLastLogin(ctx context.Context, db db.DBTX, id uuid.UUID) error
}

type UpdateUserParams struct {
	FirstName     string
	LastName      string
	Email         string
	StudentNumber *string
	Role          string
	PasswordHash  *string
}
