package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custodia/internal/http/auth"
	reportHandler "custodia/internal/http/report"
	"custodia/internal/objstore"
)

const secret = "test-secret"

type memStore struct {
	objects map[string]*objstore.Object
}

func (m *memStore) Get(_ context.Context, path string) (*objstore.Object, error) {
	obj, ok := m.objects[path]
	if !ok {
		return nil, objstore.ErrNotFound
	}

	return obj, nil
}

func (m *memStore) Put(_ context.Context, path string, data []byte, contentType string) error {
	m.objects[path] = &objstore.Object{Bytes: data, ContentType: contentType}
	return nil
}

func newServer(store objstore.Store) http.Handler {
	h := reportHandler.NewHandler(nil, store)

	router := chi.NewRouter()
	router.Route("/reports", func(r chi.Router) {
		r.Use(auth.Middleware(secret))
		h.Routes(r)
	})

	return router
}

func get(t *testing.T, handler http.Handler, path string, userID uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	token, err := auth.NewToken(secret, userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec
}

func TestDownload_OwnReport(t *testing.T) {
	owner := uuid.New()
	store := &memStore{objects: map[string]*objstore.Object{
		"users/" + owner.String() + "/reports/relatorio.pdf": {
			Bytes:       []byte("%PDF-fake"),
			ContentType: "application/pdf",
		},
	}}

	rec := get(t, newServer(store), "/reports/relatorio.pdf", owner)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, []byte("%PDF-fake"), rec.Body.Bytes())
}

func TestDownload_OtherUsersReportIsInvisible(t *testing.T) {
	owner := uuid.New()
	intruder := uuid.New()

	store := &memStore{objects: map[string]*objstore.Object{
		"users/" + owner.String() + "/reports/relatorio.pdf": {
			Bytes: []byte("%PDF-fake"),
		},
	}}
	server := newServer(store)

	// Same name, different authenticated user: indistinguishable from
	// a report that does not exist.
	rec := get(t, server, "/reports/relatorio.pdf", intruder)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownload_PathEscapeRejected(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	store := &memStore{objects: map[string]*objstore.Object{
		"users/" + other.String() + "/reports/alvo.pdf": {
			Bytes: []byte("%PDF-secret"),
		},
	}}
	server := newServer(store)

	paths := []string{
		"/reports/..%2F..%2F" + other.String() + "%2Freports%2Falvo.pdf",
		"/reports/..",
		"/reports/a%5Cb.pdf",
	}

	for _, path := range paths {
		rec := get(t, server, path, owner)
		assert.Equal(t, http.StatusNotFound, rec.Code, "path %q", path)
		assert.NotContains(t, rec.Body.String(), "PDF-secret")
	}
}

func TestDownload_Unauthenticated(t *testing.T) {
	server := newServer(&memStore{objects: map[string]*objstore.Object{}})

	req := httptest.NewRequest(http.MethodGet, "/reports/relatorio.pdf", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
