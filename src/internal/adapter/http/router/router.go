package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/middleware"
)

type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// New mounts health outside authentication and every other registrar behind
// it. Nil registrars are skipped.
func New(
	health RouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
	registrars ...RouteRegistrar,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)

	if health != nil {
		health.RegisterRoutes(r)
	}

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Use(middleware.Actor)
		for _, registrar := range registrars {
			if registrar != nil {
				registrar.RegisterRoutes(r)
			}
		}
	})

	return r
}
