package request

import (
	"github.com/google/uuid"
)

type CreateLoanRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}
