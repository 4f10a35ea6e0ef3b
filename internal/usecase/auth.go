package usecase

import (
	"context"
	"errors"

	"biblio-api/internal/domain/user"
	"biblio-api/internal/infra"
	"biblio-api/internal/pkg/jwt"
	"biblio-api/internal/pkg/password"
	"biblio-api/internal/usecase/queries"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserInactive         = errors.New("user account is inactive")
	ErrEmailTaken           = errors.New("email already registered")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenGeneration      = errors.New("token generation failed")
	ErrTokenValidation      = errors.New("token validation failed")
)

// AuthReadStore resolves users for authentication. FindByEmail also returns
// the stored bcrypt hash so the usecase can compare without exposing it in
// a view.
type AuthReadStore interface {
	FindByEmail(ctx context.Context, email user.Email) (*queries.AuthorizedUserView, string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

type RegisterParams struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	StudentNumber *string
}

type AuthUseCase interface {
	Register(ctx context.Context, params RegisterParams) (string, *queries.AuthorizedUserView, error)
	Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type authUseCaseImpl struct {
	users      AuthReadStore
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthUseCase(users AuthReadStore, uow shared.UnitOfWork, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		users:      users,
		uow:        uow,
		jwtService: jwtService,
	}
}

// Register creates a student account and logs it in. Admin accounts are only
// created through the admin user management commands.
func (a *authUseCaseImpl) Register(ctx context.Context, params RegisterParams) (string, *queries.AuthorizedUserView, error) {
	firstName, err := user.NewName(params.FirstName)
	if err != nil {
		return "", nil, err
	}
	lastName, err := user.NewName(params.LastName)
	if err != nil {
		return "", nil, err
	}
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return "", nil, err
	}
	pw, err := user.NewPassword(params.Password)
	if err != nil {
		return "", nil, err
	}
	hash, err := password.HashPassword(pw.Value())
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	u := user.NewUser(firstName, lastName, email, hash, params.StudentNumber, user.RoleStudent)

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, lookupErr := tx.Reads().UserByEmail(ctx, email.Value()); lookupErr == nil {
			return ErrEmailTaken
		} else if !infra.IsKind(lookupErr, infra.KindNotFound) {
			return lookupErr
		}
		if createErr := tx.Users().Create(ctx, tx.DB(), u); createErr != nil {
			if infra.IsKind(createErr, infra.KindDuplicateKey) {
				return ErrEmailTaken
			}
			return createErr
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	view := &queries.AuthorizedUserView{
		ID:            u.ID(),
		FirstName:     firstName.Value(),
		LastName:      lastName.Value(),
		Email:         email.Value(),
		StudentNumber: params.StudentNumber,
		Role:          u.Role().String(),
		IsActive:      true,
	}
	return token, view, nil
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error) {
	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		return "", nil, err
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, tx.DB(), view.ID)
	})
	if err != nil {
		return "", nil, err
	}

	return token, view, nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.users.FindByEmail(ctx, credentials.Email())
	if err != nil || view == nil {
		return nil, ErrUserNotFound
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return view, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, err := a.users.FindByID(ctx, userID)
	if err != nil || view == nil {
		return nil, ErrUserNotFound
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	return view, nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", ErrTokenValidation
	}

	return claims.UserID, role, nil
}
