package writerepo

import (
	"context"

	"biblio-api/internal/domain/user"
	"biblio-api/internal/infra"
	"biblio-api/internal/infra/db"
	"biblio-api/internal/pkg/pgconv"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

var _ shared.UserRepository = (*UserRepository)(nil)

const createUserSQL = `
INSERT INTO users (id, first_name, last_name, email, password_hash, student_number, role, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *UserRepository) Create(ctx context.Context, dbtx db.DBTX, u *user.User) error {
	_, err := dbtx.Exec(ctx, createUserSQL,
		u.ID(), u.FirstName().Value(), u.LastName().Value(), u.Email().Value(),
		u.PasswordHash(), pgconv.StringPtrToPgtype(u.StudentNumber()),
		u.Role().String(), u.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create user", err, infra.ClassifyPgErr(err))
	}
	return nil
}

const updateUserSQL = `
UPDATE users
SET first_name = $2,
    last_name = $3,
    email = $4,
    student_number = $5,
    role = $6,
    password_hash = COALESCE($7, password_hash),
    updated_at = now()
WHERE id = $1
`

func (r *UserRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params shared.UpdateUserParams) error {
	tag, err := dbtx.Exec(ctx, updateUserSQL,
		id, params.FirstName, params.LastName, params.Email,
		pgconv.StringPtrToPgtype(params.StudentNumber), params.Role,
		pgconv.StringPtrToPgtype(params.PasswordHash),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update user", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteUserSQL = `
DELETE FROM users
WHERE id = $1
`

func (r *UserRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete user", err, infra.ClassifyPgErr(err))
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

const updateLastLoginSQL = `
UPDATE users
SET last_login = now(), updated_at = now()
WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, updateLastLoginSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
