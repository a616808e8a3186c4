package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/GME-dev/QUOTATION-GEN/internal/app/config"
	"github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"
	"github.com/GME-dev/QUOTATION-GEN/internal/infra/cache"
)

func (h *Handlers) CreateQuotation(w http.ResponseWriter, r *http.Request) {
	var in quotation.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	res, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.Cache.Invalidate(r.Context(), cache.QuotationListKey)

	q := res.Quotation
	if res.RenderErr != nil {
		// Saved but not rendered: the record stands, the PDF can be fetched
		// from the download endpoint once rendering recovers.
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":     "Quotation saved but the PDF could not be generated. Retry the download later.",
			"quotationId": q.ID,
			"quotationNo": q.QuotationNo,
		})
		return
	}

	if h.Cfg.PDFResponseMode == config.PDFResponseLink {
		writeJSON(w, http.StatusCreated, map[string]any{
			"message":     "Quotation created",
			"quotationId": q.ID,
			"quotationNo": q.QuotationNo,
			"pdfUrl":      "/downloads/" + q.QuotationNo + ".pdf",
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Quotation-%s.pdf", q.QuotationNo))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	w.Write(res.PDF)
}
