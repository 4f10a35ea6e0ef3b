package commands

import (
	"context"

	"biblio-api/internal/domain/user"
	"biblio-api/internal/infra"
	"biblio-api/internal/pkg/errs"
	"biblio-api/internal/pkg/password"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errs.New("user not found")
	ErrDuplicateEmail  = errs.New("email already registered")
	ErrInvalidUserData = errs.New("invalid user data")
	ErrUserHasLoansOut = errs.New("user still has copies out")
)

type CreateUserParams struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	StudentNumber *string
	Role          string
}

type UpdateUserParams struct {
	FirstName     string
	LastName      string
	Email         string
	Password      *string
	StudentNumber *string
	Role          string
}

type UserCommands interface {
	CreateUser(ctx context.Context, params CreateUserParams) (uuid.UUID, error)
	UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (c *userCommandsImpl) CreateUser(ctx context.Context, params CreateUserParams) (uuid.UUID, error) {
	firstName, lastName, email, role, err := parseUserFields(params.FirstName, params.LastName, params.Email, params.Role)
	if err != nil {
		return uuid.Nil, err
	}
	pw, err := user.NewPassword(params.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidUserData)
	}
	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := checkEmailFree(ctx, tx, email.Value(), uuid.Nil); err != nil {
			return err
		}

		u := user.NewUser(firstName, lastName, email, hash, params.StudentNumber, role)
		if err := tx.Users().Create(ctx, tx.DB(), u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateEmail
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		id = u.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *userCommandsImpl) UpdateUser(ctx context.Context, id uuid.UUID, params UpdateUserParams) error {
	firstName, lastName, email, role, err := parseUserFields(params.FirstName, params.LastName, params.Email, params.Role)
	if err != nil {
		return err
	}

	var hash *string
	if params.Password != nil {
		pw, err := user.NewPassword(*params.Password)
		if err != nil {
			return errs.Mark(err, ErrInvalidUserData)
		}
		h, err := password.HashPassword(pw.Value())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		hash = &h
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().UserByID(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := checkEmailFree(ctx, tx, email.Value(), id); err != nil {
			return err
		}

		repoParams := shared.UpdateUserParams{
			FirstName:     firstName.Value(),
			LastName:      lastName.Value(),
			Email:         email.Value(),
			StudentNumber: params.StudentNumber,
			Role:          role.String(),
			PasswordHash:  hash,
		}
		if err := tx.Users().Update(ctx, tx.DB(), id, repoParams); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateEmail
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *userCommandsImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		out, err := tx.Reads().CountLoansOut(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if out > 0 {
			return ErrUserHasLoansOut
		}

		if err := tx.Users().Delete(ctx, tx.DB(), id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func parseUserFields(firstName, lastName, email, role string) (user.Name, user.Name, user.Email, user.Role, error) {
	fn, err := user.NewName(firstName)
	if err != nil {
		return user.Name{}, user.Name{}, user.Email{}, "", errs.Mark(err, ErrInvalidUserData)
	}
	ln, err := user.NewName(lastName)
	if err != nil {
		return user.Name{}, user.Name{}, user.Email{}, "", errs.Mark(err, ErrInvalidUserData)
	}
	em, err := user.NewEmail(email)
	if err != nil {
		return user.Name{}, user.Name{}, user.Email{}, "", errs.Mark(err, ErrInvalidUserData)
	}
	r, err := user.NewRole(role)
	if err != nil {
		return user.Name{}, user.Name{}, user.Email{}, "", errs.Mark(err, ErrInvalidUserData)
	}
	return fn, ln, em, r, nil
}

func checkEmailFree(ctx context.Context, tx shared.Tx, email string, selfID uuid.UUID) error {
	existing, err := tx.Reads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing.ID != selfID {
		return ErrDuplicateEmail
	}
	return nil
}
