package response

import (
	"biblio-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type BookListResponse struct {
	Books      []*queries.BookView `json:"books"`
	Pagination *queries.Pagination `json:"pagination"`
}
