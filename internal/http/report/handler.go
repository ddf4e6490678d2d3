package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"custodia/internal/expense"
	"custodia/internal/http/auth"
	"custodia/internal/objstore"
	"custodia/internal/report"
)

type Handler struct {
	generator *report.Generator
	store     objstore.Store
}

func NewHandler(generator *report.Generator, store objstore.Store) *Handler {
	return &Handler{generator: generator, store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
	r.Get("/{name}", h.download)
}

type generateRequest struct {
	StartDate  expense.Date     `json:"start_date"`
	EndDate    expense.Date     `json:"end_date"`
	Categories []string         `json:"categories,omitempty"`
	ChildIDs   []uuid.UUID      `json:"child_ids,omitempty"`
	Statuses   []expense.Status `json:"statuses,omitempty"`
}

type generateResponse struct {
	Path    string         `json:"path"`
	Summary report.Summary `json:"summary"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter := report.Filter{
		Start:      req.StartDate,
		End:        req.EndDate,
		Categories: req.Categories,
		ChildIDs:   req.ChildIDs,
		Statuses:   req.Statuses,
	}

	out, err := h.generator.Generate(r.Context(), userID, filter, nil)
	if err != nil {
		if errors.Is(err, report.ErrInvalidPeriod) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(generateResponse{
		Path:    out.Path,
		Summary: out.Summary,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	name := chi.URLParam(r, "name")

	// The name is a bare file name inside the user's own report prefix.
	// Anything that could escape it, or point at another user's prefix,
	// behaves as if the report does not exist.
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	obj, err := h.store.Get(r.Context(), path.Join("users", userID.String(), "reports", name))
	if err != nil {
		if errors.Is(err, objstore.ErrNotFound) {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)

	if _, err := w.Write(obj.Bytes); err != nil {
		slog.Error("failed to write report body", "error", err)
	}
}
