package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GME-dev/QUOTATION-GEN/internal/domain/quotation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the domain taxonomy to HTTP statuses: validation 400,
// allocation exhaustion 409, missing records 404, everything else 500.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	var verr *quotation.ValidationError
	var rerr *quotation.RenderError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "Validation failed",
			"details": verr.Error(),
		})
	case errors.Is(err, quotation.ErrNumberExhausted):
		writeJSON(w, http.StatusConflict, map[string]any{
			"message": "Could not allocate a unique quotation number, please retry",
		})
	case errors.Is(err, quotation.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"message": "Quotation not found",
		})
	case errors.As(err, &rerr):
		h.serverError(w, "Failed to generate quotation PDF", err)
	default:
		h.serverError(w, "Internal server error", err)
	}
}

func (h *Handlers) serverError(w http.ResponseWriter, msg string, err error) {
	h.Log.Error().Err(err).Msg(msg)
	body := map[string]any{"message": msg}
	if !h.Cfg.IsProd() {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
