package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/GME-dev/QUOTATION-GEN/internal/infra/cache"
)

const listCacheTTL = 30 * time.Second

// ListQuotations returns all stored records, newest first.
func (h *Handlers) ListQuotations(w http.ResponseWriter, r *http.Request) {
	if data, ok := h.Cache.Get(r.Context(), cache.QuotationListKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	list, err := h.Svc.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	data, err := json.Marshal(list)
	if err != nil {
		h.serverError(w, "Failed to fetch quotations", err)
		return
	}
	h.Cache.Set(r.Context(), cache.QuotationListKey, data, listCacheTTL)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handlers) GetQuotation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Invalid quotation id"})
		return
	}

	q, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}
