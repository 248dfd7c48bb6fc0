package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/slices", func(r chi.Router) {
			r.Post("/", h.createSlice)
			r.Put("/", h.updateSlice)
			r.Get("/", h.listSlices)
			r.Delete("/{clientSideID}", h.deleteSlice)
			r.Post("/search", h.searchSlices)
		})

		r.Route("/api/keys", func(r chi.Router) {
			r.Post("/sample", h.contentSample)
			r.With(h.rotationHashing).Post("/rotate", h.rotateKey)
		})
	})

	return router
}
