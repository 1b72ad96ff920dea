package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/auth/status", h.status)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes behind session authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/pin", h.setPIN)
		r.Post("/api/auth/logout", h.logout)

		r.Post("/api/records", h.addRecord)
		r.Get("/api/records", h.listRecords)
		r.Get("/api/records/export", h.exportRecords)
		r.Delete("/api/records", h.wipeRecords)
	})

	return router
}
