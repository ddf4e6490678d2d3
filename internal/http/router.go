package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"custodia/internal/http/auth"
	"custodia/internal/http/expense"
	"custodia/internal/http/family"
	"custodia/internal/http/importcsv"
	"custodia/internal/http/report"
)

func New(
	jwtSecret string,
	expensesV1 *expense.Handler,
	familyV1 *family.Handler,
	importV1 *importcsv.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/expenses", func(r chi.Router) {
			expensesV1.Routes(r)
		})

		familyV1.Routes(r)

		r.Route("/import", importV1.Routes)

		r.Route("/reports", func(r chi.Router) {
			reportsV1.Routes(r)
		})
	})

	return router
}
