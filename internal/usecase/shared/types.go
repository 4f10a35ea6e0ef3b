package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command read operations

type BookSnapshot struct {
	ID              uuid.UUID
	Title           string
	CategoryID      *uuid.UUID
	TotalCopies     int
	AvailableCopies int
}

type LoanSnapshot struct {
	ID     uuid.UUID
	UserID uuid.UUID
	BookID uuid.UUID
	Status string
	DueAt  time.Time
}

type CategorySnapshot struct {
	ID   uuid.UUID
	Name string
}

type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}
