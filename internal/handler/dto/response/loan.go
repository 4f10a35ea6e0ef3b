package response

import (
	"time"

	"biblio-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoanRequestedResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
	DueAt  time.Time `json:"due_at"`
}

func FromLoanRequestResult(r *commands.RequestLoanResult) *LoanRequestedResponse {
	return &LoanRequestedResponse{
		ID:     r.LoanID,
		Status: r.Status.String(),
		DueAt:  r.DueAt,
	}
}
