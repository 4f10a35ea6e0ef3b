package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id            uuid.UUID
	firstName     Name
	lastName      Name
	email         Email
	passwordHash  string
	studentNumber *string
	role          Role
	lastLogin     *time.Time
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

func NewUser(firstName, lastName Name, email Email, passwordHash string, studentNumber *string, role Role) *User {
	return &User{
		id:            uuid.New(),
		firstName:     firstName,
		lastName:      lastName,
		email:         email,
		passwordHash:  passwordHash,
		studentNumber: studentNumber,
		role:          role,
		isActive:      true,
	}
}

func (u *User) ID() uuid.UUID          { return u.id }
func (u *User) FirstName() Name        { return u.firstName }
func (u *User) LastName() Name         { return u.lastName }
func (u *User) Email() Email           { return u.email }
func (u *User) PasswordHash() string   { return u.passwordHash }
func (u *User) StudentNumber() *string { return u.studentNumber }
func (u *User) Role() Role             { return u.role }
func (u *User) LastLogin() *time.Time  { return u.lastLogin }
func (u *User) IsActive() bool         { return u.isActive }
func (u *User) CreatedAt() time.Time   { return u.createdAt }
func (u *User) UpdatedAt() time.Time   { return u.updatedAt }
