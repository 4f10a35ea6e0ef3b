//go:build unit || e2e

package builder

import (
	"time"

	"biblio-api/internal/domain/user"
	reqdto "biblio-api/internal/handler/dto/request"
	"biblio-api/internal/usecase/queries"
	"biblio-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Email         string
	Password      string
	PasswordHash  string
	StudentNumber *string
	Role          string
	IsActive      bool
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewUserBuilder() *UserBuilder {
	now := time.Now()
	studentNumber := "S2024001"
	return &UserBuilder{
		ID:            uuid.New(),
		FirstName:     "Taro",
		LastName:      "Yamada",
		Email:         "student@example.com",
		Password:      "password123",
		PasswordHash:  "$2a$10$N9qo8uLOickgx2ZMRZoMye9hashedhashedhashedhashedhash",
		StudentNumber: &studentNumber,
		Role:          "student",
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	firstName, err := user.NewName(u.FirstName)
	if err != nil {
		return nil, err
	}
	lastName, err := user.NewName(u.LastName)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return user.NewUser(firstName, lastName, email, u.PasswordHash, u.StudentNumber, role), nil
}

func (u *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:       u.ID,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (u *UserBuilder) BuildAuthorizedView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		StudentNumber: u.StudentNumber,
		Role:          u.Role,
		IsActive:      u.IsActive,
	}
}

func (u *UserBuilder) BuildViewQuery() *queries.UserView {
	return &queries.UserView{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		StudentNumber: u.StudentNumber,
		Role:          u.Role,
		IsActive:      u.IsActive,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (u *UserBuilder) BuildRegisterRequestDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Password:      u.Password,
		StudentNumber: u.StudentNumber,
	}
}

func (u *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Password:      u.Password,
		StudentNumber: u.StudentNumber,
		Role:          u.Role,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithID(id uuid.UUID) *UserBuilder {
	u.ID = id
	return u
}

func (u *UserBuilder) WithFirstName(firstName string) *UserBuilder {
	u.FirstName = firstName
	return u
}

func (u *UserBuilder) WithLastName(lastName string) *UserBuilder {
	u.LastName = lastName
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	u.PasswordHash = hash
	return u
}

func (u *UserBuilder) WithoutStudentNumber() *UserBuilder {
	u.StudentNumber = nil
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Role = "admin"
	u.StudentNumber = nil
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
