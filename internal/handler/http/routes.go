package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version", h.getVersion)

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/status", h.getStatus)

		r.Route("/api/sync", func(r chi.Router) {
			r.Post("/pull", h.pull)
			r.Post("/push", h.push)
			r.Post("/cancel", h.cancel)
			r.Post("/force/{kind}/{id}", h.forceSync)
			r.Get("/pending", h.pending)
			r.Get("/history", h.history)
		})

		r.Route("/api/records/{kind}", func(r chi.Router) {
			r.Get("/", h.listRecords)
			r.Post("/", h.createRecord)
			r.Put("/{id}", h.saveRecord)
			r.Post("/{id}/file", h.attachFile)
			r.Delete("/{id}/draft", h.discardDraft)
		})

		r.Get("/api/related/{relation}/{parentID}", h.listRelated)
	})

	return router
}
