package handlers

import (
	"log"
	"net/http"

	"wm-ferretero/go_backend/internal/domain/masterdata"
)

// ensureLookup loads the session caches on first use. Load is a no-op once a
// fetch has succeeded, so a store outage at startup just retries here.
func (h *Handlers) ensureLookup(r *http.Request) error {
	if err := h.Lookup.Load(r.Context()); err != nil {
		log.Printf("masterdata: load failed: %v", err)
		return err
	}
	return nil
}

func (h *Handlers) SearchClients(w http.ResponseWriter, r *http.Request) {
	if err := h.ensureLookup(r); err != nil {
		writeError(w, http.StatusBadGateway, "no se pudo cargar los datos maestros")
		return
	}
	results := h.Lookup.SearchClients(r.URL.Query().Get("q"))
	if results == nil {
		results = []masterdata.Client{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *Handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	if err := h.ensureLookup(r); err != nil {
		writeError(w, http.StatusBadGateway, "no se pudo cargar los datos maestros")
		return
	}
	results := h.Lookup.SearchProducts(r.URL.Query().Get("q"))
	if results == nil {
		results = []masterdata.Product{}
	}
	writeJSON(w, http.StatusOK, results)
}
