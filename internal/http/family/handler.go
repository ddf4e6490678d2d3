package family

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"custodia/internal/expense"
	"custodia/internal/family"
	"custodia/internal/http/auth"
)

type Handler struct {
	svc *family.Service
}

func NewHandler(svc *family.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/children", h.children)
	r.Get("/children/{id}", h.child)
	r.Get("/parents", h.parents)
	r.Get("/parents/{id}", h.parent)
	r.Get("/lawyers", h.lawyers)
	r.Get("/lawyers/{id}", h.lawyer)
	r.Get("/cases", h.legalCases)
	r.Get("/cases/{id}", h.legalCase)
}

type childResponse struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	BirthDate  expense.Date `json:"birth_date"`
	SchoolYear string       `json:"school_year,omitempty"`
}

type parentResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	Document string    `json:"document,omitempty"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
}

type lawyerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OABNumber string    `json:"oab_number,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
}

type legalCaseResponse struct {
	ID         uuid.UUID  `json:"id"`
	CaseNumber string     `json:"case_number"`
	Court      string     `json:"court,omitempty"`
	Judge      string     `json:"judge,omitempty"`
	Status     string     `json:"status,omitempty"`
	LawyerID   *uuid.UUID `json:"lawyer_id,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (h *Handler) children(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	children, err := h.svc.Children(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]childResponse, len(children))
	for i, c := range children {
		resp[i] = toChildResponse(c)
	}

	writeJSON(w, resp)
}

func (h *Handler) child(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.svc.Child(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toChildResponse(c))
}

func (h *Handler) parents(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	parents, err := h.svc.Parents(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]parentResponse, len(parents))
	for i, p := range parents {
		resp[i] = toParentResponse(p)
	}

	writeJSON(w, resp)
}

func (h *Handler) parent(w http.ResponseWriter, r *http.Request) {
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

	p, err := h.svc.Parent(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toParentResponse(p))
}

func (h *Handler) lawyers(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	lawyers, err := h.svc.Lawyers(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]lawyerResponse, len(lawyers))
	for i, l := range lawyers {
		resp[i] = toLawyerResponse(l)
	}

	writeJSON(w, resp)
}

func (h *Handler) lawyer(w http.ResponseWriter, r *http.Request) {
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

	l, err := h.svc.Lawyer(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toLawyerResponse(l))
}

func (h *Handler) legalCases(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	cases, err := h.svc.LegalCases(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]legalCaseResponse, len(cases))
	for i, c := range cases {
		resp[i] = toLegalCaseResponse(c)
	}

	writeJSON(w, resp)
}

func (h *Handler) legalCase(w http.ResponseWriter, r *http.Request) {
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

	c, err := h.svc.LegalCase(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, family.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toLegalCaseResponse(c))
}

func toChildResponse(c *family.Child) childResponse {
	return childResponse{
		ID:         c.ID,
		Name:       c.Name,
		BirthDate:  c.BirthDate,
		SchoolYear: c.SchoolYear,
	}
}

func toParentResponse(p *family.Parent) parentResponse {
	return parentResponse{
		ID:       p.ID,
		Name:     p.Name,
		Role:     p.Role,
		Document: p.Document,
		Email:    p.Email,
		Phone:    p.Phone,
	}
}

func toLawyerResponse(l *family.Lawyer) lawyerResponse {
	return lawyerResponse{
		ID:        l.ID,
		Name:      l.Name,
		OABNumber: l.OABNumber,
		Email:     l.Email,
		Phone:     l.Phone,
	}
}

func toLegalCaseResponse(c *family.LegalCase) legalCaseResponse {
	return legalCaseResponse{
		ID:         c.ID,
		CaseNumber: c.CaseNumber,
		Court:      c.Court,
		Judge:      c.Judge,
		Status:     c.Status,
		LawyerID:   c.LawyerID,
		Notes:      c.Notes,
		CreatedAt:  c.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
