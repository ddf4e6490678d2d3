package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"custodia/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectExpenseColumns = `
	e.id, e.user_id, e.child_id, e.description, e.amount, e.expense_date,
	e.category, e.status, e.created_at, e.updated_at, e.deleted_at
`

// scanExpense reads an expense row in selectExpenseColumns order.
func scanExpense(s scanner) (*expense.Expense, error) {
	var (
		e         expense.Expense
		amountStr string
		statusStr string
	)

	if err := s.Scan(
		&e.ID, &e.UserID, &e.ChildID, &e.Description, &amountStr, &e.Date,
		&e.Category, &statusStr, &e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parsing stored amount: %w", err)
	}

	e.Amount = amount
	e.Status = expense.Status(statusStr)

	return &e, nil
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (user_id, child_id, description, amount, expense_date, category, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.ChildID,
		e.Description,
		e.Amount.String(),
		e.Date,
		e.Category,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, userID, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		WHERE e.id = $1 AND e.user_id = $2 AND e.deleted_at IS NULL`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	if err := s.loadReceipts(ctx, []*expense.Expense{e}); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, userID uuid.UUID, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		WHERE e.user_id = $1 AND e.deleted_at IS NULL`

	args := []any{userID}
	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.expense_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.expense_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if len(filter.Categories) > 0 {
		query += fmt.Sprintf(" AND e.category = ANY($%d)", argIdx)

		args = append(args, filter.Categories)
		argIdx++
	}

	if len(filter.ChildIDs) > 0 {
		childIDs := make([]string, len(filter.ChildIDs))
		for i, id := range filter.ChildIDs {
			childIDs[i] = id.String()
		}

		query += fmt.Sprintf(" AND e.child_id = ANY($%d)", argIdx)

		args = append(args, childIDs)
		argIdx++
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}

		query += fmt.Sprintf(" AND e.status = ANY($%d)", argIdx)

		args = append(args, statuses)
		argIdx++
	}

	query += " ORDER BY e.expense_date ASC, e.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	if err := s.loadReceipts(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// loadReceipts attaches receipts to the given expenses in one query.
func (s *Store) loadReceipts(ctx context.Context, expenses []*expense.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*expense.Expense, len(expenses))
	ids := make([]string, 0, len(expenses))

	for _, e := range expenses {
		byID[e.ID] = e
		ids = append(ids, e.ID.String())
	}

	query := `
		SELECT id, expense_id, storage_path, file_name, mime_type, uploaded_at
		FROM receipts
		WHERE expense_id = ANY($1)
		ORDER BY uploaded_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("loading receipts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r expense.Receipt
		if err := rows.Scan(&r.ID, &r.ExpenseID, &r.StoragePath, &r.FileName, &r.MIMEType, &r.UploadedAt); err != nil {
			return fmt.Errorf("scanning receipt: %w", err)
		}

		if e, ok := byID[r.ExpenseID]; ok {
			e.Receipts = append(e.Receipts, r)
		}
	}

	return rows.Err()
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET child_id = $1, description = $2, amount = $3, expense_date = $4,
		    category = $5, status = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ChildID,
		e.Description,
		e.Amount.String(),
		e.Date,
		e.Category,
		e.Status,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		UPDATE expenses
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	return nil
}

func (s *Store) AttachReceipt(ctx context.Context, r *expense.Receipt) error {
	query := `
		INSERT INTO receipts (expense_id, storage_path, file_name, mime_type, uploaded_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, uploaded_at
	`

	err := s.db.QueryRowContext(ctx, query,
		r.ExpenseID,
		r.StoragePath,
		r.FileName,
		r.MIMEType,
	).Scan(&r.ID, &r.UploadedAt)
	if err != nil {
		return fmt.Errorf("attaching receipt: %w", err)
	}

	return nil
}

func (s *Store) DeleteReceipt(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM receipts r
		USING expenses e
		WHERE r.id = $1 AND r.expense_id = e.id AND e.user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting receipt: %w", err)
	}

	return nil
}
