package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wm-ferretero/go_backend/internal/app/config"
	"wm-ferretero/go_backend/internal/app/http/handlers"
	"wm-ferretero/go_backend/internal/app/http/middleware"
	"wm-ferretero/go_backend/internal/store"
)

func NewRouter(cfg config.Config, st store.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)

	h := handlers.New(st, cfg)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Post("/drafts", h.CreateDraft)
		r.Get("/drafts/{draftID}", h.GetDraft)
		r.Patch("/drafts/{draftID}", h.UpdateDraft)
		r.Post("/drafts/{draftID}/items", h.AddDraftItem)
		r.Delete("/drafts/{draftID}/items/{itemID}", h.RemoveDraftItem)
		r.Post("/drafts/{draftID}/preview", h.PreviewDraft)
		r.Post("/drafts/{draftID}/submit", h.SubmitDraft)

		r.Get("/quotations", h.ListQuotations)
		r.Get("/quotations/{quotationID}/document", h.QuotationDocument)

		r.Get("/masterdata/clients", h.SearchClients)
		r.Get("/masterdata/products", h.SearchProducts)
	})

	return r
}
