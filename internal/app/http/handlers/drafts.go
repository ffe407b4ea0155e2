package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"wm-ferretero/go_backend/internal/domain/masterdata"
	"wm-ferretero/go_backend/internal/domain/quotation"
	"wm-ferretero/go_backend/internal/domain/quotation/deliver"
	"wm-ferretero/go_backend/internal/store"
)

const suggestDebounce = 250 * time.Millisecond

// draft is one in-progress quotation: the builder owns the aggregate, the
// in-flight flag guards against duplicate submits, and the debouncer keeps
// product suggestions from recomputing on every keystroke-level edit.
type draft struct {
	mu       sync.Mutex
	builder  *quotation.Builder
	inFlight bool

	suggest     *masterdata.Debouncer
	suggestFor  int
	suggestions []masterdata.Product
}

func (h *Handlers) getDraft(id string) *draft {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drafts[id]
}

type draftResponse struct {
	ID          string               `json:"id"`
	Quotation   quotation.Quotation  `json:"quotation"`
	SuggestFor  int                  `json:"suggest_for,omitempty"`
	Suggestions []masterdata.Product `json:"suggestions,omitempty"`
}

func (d *draft) response(id string) draftResponse {
	return draftResponse{
		ID:          id,
		Quotation:   d.builder.Quotation(),
		SuggestFor:  d.suggestFor,
		Suggestions: d.suggestions,
	}
}

// CreateDraft opens a new editing session with one blank line item.
func (h *Handlers) CreateDraft(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	d := &draft{
		builder: quotation.NewBuilder(),
		suggest: masterdata.NewDebouncer(suggestDebounce),
	}
	h.mu.Lock()
	h.drafts[id] = d
	h.mu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	writeJSON(w, http.StatusCreated, d.response(id))
}

func (h *Handlers) GetDraft(w http.ResponseWriter, r *http.Request) {
	d := h.getDraft(chi.URLParam(r, "draftID"))
	if d == nil {
		writeError(w, http.StatusNotFound, "borrador no encontrado")
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	writeJSON(w, http.StatusOK, d.response(chi.URLParam(r, "draftID")))
}

// AddDraftItem appends a blank row. After removing the last row this is what
// makes the list usable again.
func (h *Handlers) AddDraftItem(w http.ResponseWriter, r *http.Request) {
	d := h.getDraft(chi.URLParam(r, "draftID"))
	if d == nil {
		writeError(w, http.StatusNotFound, "borrador no encontrado")
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.builder.AddItem()
	writeJSON(w, http.StatusOK, d.response(chi.URLParam(r, "draftID")))
}

func (h *Handlers) RemoveDraftItem(w http.ResponseWriter, r *http.Request) {
	d := h.getDraft(chi.URLParam(r, "draftID"))
	if d == nil {
		writeError(w, http.StatusNotFound, "borrador no encontrado")
		return
	}
	localID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "item inválido")
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.builder.RemoveItem(localID) {
		writeError(w, http.StatusNotFound, "item no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, d.response(chi.URLParam(r, "draftID")))
}

type clientPatch struct {
	Name string  `json:"name" validate:"omitempty,max=200"`
	Ref  *string `json:"ref" validate:"omitempty,uuid"`
}

type itemPatch struct {
	LocalID     int              `json:"local_id" validate:"required,gt=0"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	Quantity    *decimal.Decimal `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	ProductRef  *string          `json:"product_ref" validate:"omitempty,uuid"`
}

type updateDraftRequest struct {
	Client         *clientPatch `json:"client"`
	TaxIncluded    *bool        `json:"tax_included"`
	DeliveryAtSite *bool        `json:"delivery_at_site"`
	Items          []itemPatch  `json:"items" validate:"dive"`
}

// UpdateDraft applies field edits, lookup selections and toggle changes.
// Totals are recomputed synchronously inside the builder on every mutation.
func (h *Handlers) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	d := h.getDraft(chi.URLParam(r, "draftID"))
	if d == nil {
		writeError(w, http.StatusNotFound, "borrador no encontrado")
		return
	}
	var req updateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if req.Client != nil {
		if req.Client.Ref != nil {
			if c, ok := h.Lookup.ClientByID(*req.Client.Ref); ok {
				d.builder.ApplyClient(c)
			} else {
				writeError(w, http.StatusBadRequest, "cliente no encontrado")
				return
			}
		} else {
			d.builder.SetClient(req.Client.Name)
		}
	}

	if req.TaxIncluded != nil || req.DeliveryAtSite != nil {
		cur := d.builder.Quotation()
		ti, ds := cur.TaxIncluded, cur.DeliveryAtSite
		if req.TaxIncluded != nil {
			ti = *req.TaxIncluded
		}
		if req.DeliveryAtSite != nil {
			ds = *req.DeliveryAtSite
		}
		d.builder.SetToggles(ti, ds)
	}

	for _, p := range req.Items {
		if p.ProductRef != nil {
			prod, ok := h.Lookup.ProductByID(*p.ProductRef)
			if !ok {
				writeError(w, http.StatusBadRequest, "producto no encontrado")
				return
			}
			if err := d.builder.ApplyProduct(p.LocalID, prod); err != nil {
				writeError(w, http.StatusNotFound, err.Error())
				return
			}
		}
		if err := d.builder.UpdateItem(p.LocalID, quotation.ItemPatch{
			Description: p.Description,
			Unit:        p.Unit,
			Quantity:    p.Quantity,
			UnitPrice:   p.UnitPrice,
		}); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		if p.Description != nil && p.ProductRef == nil {
			h.scheduleSuggestions(d, p.LocalID, *p.Description)
		}
	}

	writeJSON(w, http.StatusOK, d.response(chi.URLParam(r, "draftID")))
}

// scheduleSuggestions recomputes product suggestions for a row after the
// debounce window; only the last edit in a burst runs.
func (h *Handlers) scheduleSuggestions(d *draft, localID int, text string) {
	d.suggest.Do(func() {
		results := h.Lookup.SearchProducts(text)
		d.mu.Lock()
		d.suggestFor = localID
		d.suggestions = results
		d.mu.Unlock()
	})
}

// PreviewDraft renders the document without numbering or persistence; the
// filename carries the draft placeholder instead of a number.
func (h *Handlers) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	d := h.getDraft(chi.URLParam(r, "draftID"))
	if d == nil {
		writeError(w, http.StatusNotFound, "borrador no encontrado")
		return
	}
	d.mu.Lock()
	q := d.builder.Quotation()
	d.mu.Unlock()

	h.serveDocument(w, r, q)
}

// SubmitDraft is the submission gate: validate, number, persist, render,
// deliver. Validation failure makes no remote call. A numbering or
// persistence failure aborts with the draft intact so the user can retry
// without re-entering anything.
func (h *Handlers) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")
	d := h.getDraft(draftID)
	if d == nil {
		writeError(w, http.StatusNotFound, "borrador no encontrado")
		return
	}

	d.mu.Lock()
	if d.inFlight {
		d.mu.Unlock()
		writeError(w, http.StatusConflict, "envío en curso")
		return
	}
	if err := d.builder.Validate(); err != nil {
		d.mu.Unlock()
		var verr *quotation.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":    "cotización inválida",
				"problems": verr.Problems,
			})
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	d.inFlight = true
	q := d.builder.Quotation()
	d.mu.Unlock()

	release := func() {
		d.mu.Lock()
		d.inFlight = false
		d.mu.Unlock()
	}

	number, err := h.Store.NextNumber(r.Context())
	if err != nil {
		release()
		log.Printf("cotizacion: numeración falló: %v", err)
		writeError(w, http.StatusBadGateway, store.ErrNumbering.Error())
		return
	}
	q.Number = number

	storedID, err := h.Store.SaveQuotation(r.Context(), q)
	if err != nil {
		release()
		log.Printf("cotizacion %s: persistencia falló: %v", number, err)
		writeError(w, http.StatusBadGateway, "no se pudo guardar la cotización: "+err.Error())
		return
	}

	h.mu.Lock()
	delete(h.drafts, draftID)
	h.mu.Unlock()
	d.suggest.Stop()

	w.Header().Set("X-Quotation-Id", storedID)
	h.serveDocument(w, r, q)
}

// serveDocument renders and hands off the artifact with the distribution
// headers chosen by the platform capability hint.
func (h *Handlers) serveDocument(w http.ResponseWriter, r *http.Request, q quotation.Quotation) {
	doc, err := h.Gen.Generate(q)
	if err != nil {
		log.Printf("cotizacion pdf: %v", err)
		writeError(w, http.StatusInternalServerError, "no se pudo generar el documento")
		return
	}

	del := deliver.For(q, doc, shareCapable(r))
	w.Header().Set("Content-Type", del.MIME)
	w.Header().Set("Content-Disposition", del.Disposition)
	if del.ShareTitle != "" {
		w.Header().Set("X-Share-Title", del.ShareTitle)
		w.Header().Set("X-Share-Text", del.ShareText)
	}
	if q.Number != "" {
		w.Header().Set("X-Quotation-Number", q.Number)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Bytes)
}

// shareCapable reads the platform capability hint: native share sheet
// available or not. The detector itself lives client-side.
func shareCapable(r *http.Request) bool {
	if r.Header.Get("X-Share-Capability") == "native" {
		return true
	}
	return r.URL.Query().Get("share") == "1"
}
