package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// DownloadQuotation streams the stored PDF for a quotation number. A missing
// file is regenerated from the stored record before streaming.
func (h *Handlers) DownloadQuotation(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "quotationNo")

	path, err := h.Svc.Download(r.Context(), number)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Quotation-%s.pdf", number))
	http.ServeFile(w, r, path)
}
