package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"wm-ferretero/go_backend/internal/store"
)

// ListQuotations returns the history, most recent first.
func (h *Handlers) ListQuotations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.ListQuotations(r.Context())
	if err != nil {
		log.Printf("cotizaciones: list failed: %v", err)
		writeError(w, http.StatusBadGateway, "no se pudo cargar el historial")
		return
	}
	if rows == nil {
		rows = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// QuotationDocument re-renders a persisted quotation. The store reads either
// shape back into canonical form, so the reprint is identical to the
// original; deleted master records come back as placeholders, never as a
// failure. The id arrives explicitly in the request, there is no
// process-wide "selected" quotation.
func (h *Handlers) QuotationDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "quotationID")
	q, err := h.Store.GetQuotation(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, store.ErrNotFound.Error())
		return
	}
	if err != nil {
		log.Printf("cotizacion %s: read failed: %v", id, err)
		writeError(w, http.StatusBadGateway, "no se pudo leer la cotización")
		return
	}
	h.serveDocument(w, r, q)
}
