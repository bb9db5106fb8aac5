package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/ml"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
)

const defaultHistoryLimit = 20

// MLHandler handles equipment identification endpoints.
type MLHandler struct {
	svc ml.Service
}

func NewMLHandler(svc ml.Service) *MLHandler { return &MLHandler{svc: svc} }

func (h *MLHandler) Identify(w http.ResponseWriter, r *http.Request) {
	var req ml.IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Identify(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *MLHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultHistoryLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			limit = n
		}
	}
	items, err := h.svc.History(r.Context(), chi.URLParam(r, "userID"), int32(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}
