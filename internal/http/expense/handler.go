package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"custodia/internal/expense"
	"custodia/internal/http/auth"
	"custodia/internal/objstore"
)

const maxReceiptSize = 10 << 20

type Handler struct {
	svc   *expense.Service
	store objstore.Store
}

func NewHandler(svc *expense.Service, store objstore.Store) *Handler {
	return &Handler{svc: svc, store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/receipts", h.attachReceipt)
	r.Delete("/{id}/receipts/{receiptID}", h.deleteReceipt)
}

type createExpenseRequest struct {
	ChildID     uuid.UUID       `json:"child_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        expense.Date    `json:"date"`
	Category    string          `json:"category"`
	Status      expense.Status  `json:"status"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Create(r.Context(), userID, expense.CreateParams{
		ChildID:     req.ChildID,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Category:    req.Category,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, expense.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	filter := expense.ListFilter{}
	query := r.URL.Query()

	if s := query.Get("start_date"); s != "" {
		if d, err := expense.ParseDate(s); err == nil {
			filter.StartDate = &d
		}
	}

	if s := query.Get("end_date"); s != "" {
		if d, err := expense.ParseDate(s); err == nil {
			filter.EndDate = &d
		}
	}

	for _, c := range query["category"] {
		filter.Categories = append(filter.Categories, c)
	}

	for _, s := range query["child_id"] {
		if id, err := uuid.Parse(s); err == nil {
			filter.ChildIDs = append(filter.ChildIDs, id)
		}
	}

	for _, s := range query["status"] {
		filter.Statuses = append(filter.Statuses, expense.Status(s))
	}

	expenses, err := h.svc.List(r.Context(), userID, filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(expenses)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateExpenseRequest struct {
	ChildID     *uuid.UUID       `json:"child_id,omitempty"`
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *expense.Date    `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Status      *expense.Status  `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.ChildID != nil {
		e.ChildID = *req.ChildID
	}

	if req.Description != nil {
		e.Description = *req.Description
	}

	if req.Amount != nil {
		e.Amount = *req.Amount
	}

	if req.Date != nil {
		e.Date = *req.Date
	}

	if req.Category != nil {
		e.Category = *req.Category
	}

	if req.Status != nil {
		e.Status = *req.Status
	}

	if err := h.svc.Update(r.Context(), e); err != nil {
		if errors.Is(err, expense.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(e)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) attachReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	expenseID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		http.Error(w, "failed to read file", http.StatusBadRequest)
		return
	}

	// The client's content type is advisory; sniff the bytes so the
	// stored metadata is trustworthy.
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}

	path := fmt.Sprintf("users/%s/receipts/%s%s",
		userID, uuid.New(), filepath.Ext(header.Filename))

	if err := h.store.Put(r.Context(), path, data, contentType); err != nil {
		http.Error(w, "failed to store file", http.StatusInternalServerError)
		return
	}

	receipt, err := h.svc.AttachReceipt(r.Context(), userID, expense.ReceiptParams{
		ExpenseID:   expenseID,
		StoragePath: path,
		FileName:    header.Filename,
		MIMEType:    contentType,
	})
	if err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toReceiptResponse(*receipt)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	receiptID, err := uuid.Parse(chi.URLParam(r, "receiptID"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteReceipt(r.Context(), userID, receiptID); err != nil {
		if errors.Is(err, expense.ErrNotFound) {
			http.Error(w, "receipt not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
