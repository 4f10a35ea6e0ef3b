package readstore

import (
	"context"

	"biblio-api/internal/domain/user"
	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase"
	"biblio-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// AuthUserReadStore resolves accounts for login and token refresh. It is the
// only read path that touches password_hash.
type AuthUserReadStore struct {
	db db.DBTX
}

func NewAuthUserReadStore(dbtx db.DBTX) *AuthUserReadStore {
	return &AuthUserReadStore{db: dbtx}
}

var _ usecase.AuthReadStore = (*AuthUserReadStore)(nil)

const authorizedUserSelect = `
SELECT id, first_name, last_name, email, password_hash, student_number, role, is_active
FROM users
`

func (s *AuthUserReadStore) FindByEmail(ctx context.Context, email user.Email) (*queries.AuthorizedUserView, string, error) {
	v, hash, err := s.scanAuthorized(s.db.QueryRow(ctx, authorizedUserSelect+`WHERE email = $1`, email.Value()))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to get user by email", err)
	}
	return v, hash, nil
}

func (s *AuthUserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	v, _, err := s.scanAuthorized(s.db.QueryRow(ctx, authorizedUserSelect+`WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user", err)
	}
	return v, nil
}

func (s *AuthUserReadStore) scanAuthorized(row pgx.Row) (*queries.AuthorizedUserView, string, error) {
	var (
		v             queries.AuthorizedUserView
		passwordHash  string
		studentNumber pgtype.Text
	)
	if err := row.Scan(
		&v.ID, &v.FirstName, &v.LastName, &v.Email, &passwordHash,
		&studentNumber, &v.Role, &v.IsActive,
	); err != nil {
		return nil, "", err
	}
	v.StudentNumber = pgconv.StringPtrFromPgtype(studentNumber)
	return &v, passwordHash, nil
}
