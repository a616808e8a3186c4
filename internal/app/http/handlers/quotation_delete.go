package handlers

import (
	"net/http"

	"github.com/GME-dev/QUOTATION-GEN/internal/infra/cache"
)

// DeleteQuotations is the administrative reset: every record is removed.
func (h *Handlers) DeleteQuotations(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.DeleteAll(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Cache.Invalidate(r.Context(), cache.QuotationListKey)

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "All quotations deleted",
		"deleted": n,
	})
}
