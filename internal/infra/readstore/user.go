package readstore

import (
	"context"

	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

var _ queries.UserReadStore = (*UserReadStore)(nil)

const userViewSelect = `
SELECT id, first_name, last_name, email, student_number, role, is_active,
       last_login, created_at, updated_at
FROM users
`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row := s.db.QueryRow(ctx, userViewSelect+`WHERE id = $1`, id)
	v, err := scanUserView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user", err)
	}
	return v, nil
}

func (s *UserReadStore) FindAll(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := s.db.Query(ctx, userViewSelect+`ORDER BY created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}
	defer rows.Close()

	var views []*queries.UserView
	for rows.Next() {
		v, err := scanUserView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan user row", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read user rows", err)
	}
	return views, nil
}

func scanUserView(row pgx.Row) (*queries.UserView, error) {
	var (
		v             queries.UserView
		studentNumber pgtype.Text
		lastLogin     pgtype.Timestamptz
	)
	if err := row.Scan(
		&v.ID, &v.FirstName, &v.LastName, &v.Email, &studentNumber,
		&v.Role, &v.IsActive, &lastLogin, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	v.StudentNumber = pgconv.StringPtrFromPgtype(studentNumber)
	v.LastLogin = pgconv.TimePtrFromPgtype(lastLogin)
	return &v, nil
}
