package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterDependencies struct {
	FormHandlers   *FormHandlers
	AllowedOrigins []string
}

// NewRouter mounts the form pages at the root and the JSON API under /api/v1.
func NewRouter(deps RouterDependencies) *chi.Mux {
	if deps.FormHandlers == nil {
		panic("FormHandlers dependency is nil in router setup")
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Default(), NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", deps.FormHandlers.HandleIndex)
	r.Post("/submit", deps.FormHandlers.HandleSubmit)
	r.Post("/reset", deps.FormHandlers.HandleReset)

	r.Route("/api/v1", func(r chi.Router) {
		if len(deps.AllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: deps.AllowedOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Get("/models", deps.FormHandlers.HandleListModels)
		r.Post("/answer", deps.FormHandlers.HandleAnswer)
	})

	return r
}
