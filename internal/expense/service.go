package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, userID, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error

	ListExpenses(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Expense, error)

	AttachReceipt(ctx context.Context, r *Receipt) error
	DeleteReceipt(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	ChildID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        Date
	Category    string
	Status      Status
}

// ListFilter narrows a listing. Nil or empty fields impose no restriction.
type ListFilter struct {
	StartDate  *Date
	EndDate    *Date
	Categories []string
	ChildIDs   []uuid.UUID
	Statuses   []Status
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, params CreateParams) (*Expense, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if !params.Status.Valid() {
		return nil, fmt.Errorf("invalid status %q", params.Status)
	}

	e := &Expense{
		UserID:      userID,
		ChildID:     params.ChildID,
		Description: params.Description,
		Amount:      params.Amount,
		Date:        params.Date,
		Category:    params.Category,
		Status:      params.Status,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, userID, filter)
}

func (s *Service) Update(ctx context.Context, e *Expense) error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	return s.repo.UpdateExpense(ctx, e)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, userID, id)
}

type ReceiptParams struct {
	ExpenseID   uuid.UUID
	StoragePath string
	FileName    string
	MIMEType    string
}

func (s *Service) AttachReceipt(ctx context.Context, userID uuid.UUID, params ReceiptParams) (*Receipt, error) {
	// The expense must exist and belong to the user before a receipt is linked.
	if _, err := s.repo.GetExpense(ctx, userID, params.ExpenseID); err != nil {
		return nil, err
	}

	r := &Receipt{
		ExpenseID:   params.ExpenseID,
		StoragePath: params.StoragePath,
		FileName:    params.FileName,
		MIMEType:    params.MIMEType,
	}
	if err := s.repo.AttachReceipt(ctx, r); err != nil {
		return nil, fmt.Errorf("attaching receipt: %w", err)
	}

	return r, nil
}

func (s *Service) DeleteReceipt(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteReceipt(ctx, userID, id)
}

// CreateBatch inserts imported expenses, skipping params that violate
// the amount invariant. It returns the created expenses and how many
// were skipped.
func (s *Service) CreateBatch(ctx context.Context, userID uuid.UUID, params []CreateParams) ([]*Expense, int, error) {
	var (
		created []*Expense
		skipped int
	)

	for _, p := range params {
		if !p.Amount.IsPositive() || p.Date.IsZero() {
			skipped++
			continue
		}

		e, err := s.Create(ctx, userID, p)
		if err != nil {
			return nil, skipped, fmt.Errorf("creating imported expense: %w", err)
		}

		created = append(created, e)
	}

	return created, skipped, nil
}
