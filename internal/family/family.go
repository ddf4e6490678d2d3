package family

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"custodia/internal/expense"
)

var ErrNotFound = errors.New("record not found")

// Child is a child whose expenses are tracked.
type Child struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	BirthDate  expense.Date
	SchoolYear string
	CreatedAt  time.Time
}

// Parent is a parent or guardian involved in the case.
type Parent struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Role      string // mãe, pai, guardião
	Document  string // CPF
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Lawyer represents legal counsel on file.
type Lawyer struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	OABNumber string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// LegalCase is a custody or support proceeding the expenses relate to.
type LegalCase struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CaseNumber string
	Court      string
	Judge      string
	Status     string
	LawyerID   *uuid.UUID
	Notes      string
	CreatedAt  time.Time
}
