package request

import (
	"biblio-api/internal/usecase/commands"
)

type CreateUserRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Password      string  `json:"password" binding:"required,min=8"`
	StudentNumber *string `json:"student_number,omitempty"`
	Role          string  `json:"role" binding:"required,oneof=student admin"`
}

func (r *CreateUserRequest) ToParams() commands.CreateUserParams {
	return commands.CreateUserParams{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Password:      r.Password,
		StudentNumber: r.StudentNumber,
		Role:          r.Role,
	}
}

type UpdateUserRequest struct {
	FirstName     string  `json:"first_name" binding:"required"`
	LastName      string  `json:"last_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Password      *string `json:"password,omitempty"`
	StudentNumber *string `json:"student_number,omitempty"`
	Role          string  `json:"role" binding:"required,oneof=student admin"`
}

func (r *UpdateUserRequest) ToParams() commands.UpdateUserParams {
	return commands.UpdateUserParams{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Password:      r.Password,
		StudentNumber: r.StudentNumber,
		Role:          r.Role,
	}
}
