package loan

type Status string

const (
	StatusPending         Status = "pending"
	StatusActive          Status = "active"
	StatusReturnRequested Status = "return_requested"
	StatusReturned        Status = "returned"
	StatusOverdue         Status = "overdue"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusReturnRequested, StatusReturned, StatusOverdue:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the loan still ties up a copy or a request slot.
// Overdue is an administrative marking of active, so it stays open.
func (s Status) IsOpen() bool {
	switch s {
	case StatusPending, StatusActive, StatusReturnRequested, StatusOverdue:
		return true
	default:
		return false
	}
}

// IsOut reports whether a physical copy is with the borrower.
func (s Status) IsOut() bool {
	switch s {
	case StatusActive, StatusReturnRequested, StatusOverdue:
		return true
	default:
		return false
	}
}

// OpenStatuses are the states blocking a second request for the same
// (user, book) pair.
func OpenStatuses() []Status {
	return []Status{StatusPending, StatusActive, StatusReturnRequested, StatusOverdue}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
