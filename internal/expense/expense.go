package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("expense not found")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// Status represents the payment state of an expense.
type Status string

const (
	StatusPending    Status = "pendente"
	StatusPaid       Status = "pago"
	StatusReimbursed Status = "reembolsado"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusReimbursed:
		return true
	}

	return false
}

// Expense is a child-related expense entered by a parent.
// Amount is an exact decimal value, never a binary float.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ChildID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        Date
	Category    string
	Status      Status
	Receipts    []Receipt
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
}

// Receipt is an uploaded proof document attached to an expense.
// StoragePath is opaque: it does not imply the file exists or is
// readable at report time.
type Receipt struct {
	ID          uuid.UUID
	ExpenseID   uuid.UUID
	StoragePath string
	FileName    string
	MIMEType    string
	UploadedAt  time.Time
}
