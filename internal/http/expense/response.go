package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"custodia/internal/expense"
)

type expenseResponse struct {
	ID          uuid.UUID         `json:"id"`
	ChildID     uuid.UUID         `json:"child_id"`
	Description string            `json:"description"`
	Amount      decimal.Decimal   `json:"amount"`
	Date        expense.Date      `json:"date"`
	Category    string            `json:"category"`
	Status      expense.Status    `json:"status"`
	Receipts    []receiptResponse `json:"receipts,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   *time.Time        `json:"updated_at,omitempty"`
}

type receiptResponse struct {
	ID         uuid.UUID `json:"id"`
	ExpenseID  uuid.UUID `json:"expense_id"`
	FileName   string    `json:"file_name"`
	MIMEType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		ChildID:     e.ChildID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date,
		Category:    e.Category,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	for _, r := range e.Receipts {
		resp.Receipts = append(resp.Receipts, toReceiptResponse(r))
	}

	return resp
}

func toReceiptResponse(r expense.Receipt) receiptResponse {
	return receiptResponse{
		ID:         r.ID,
		ExpenseID:  r.ExpenseID,
		FileName:   r.FileName,
		MIMEType:   r.MIMEType,
		UploadedAt: r.UploadedAt,
	}
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}
