package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/dashboard"
)

// DashboardHandler handles the aggregated activity summary.
type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	out, err := h.svc.Summary(r.Context(), chi.URLParam(r, "userID"), period)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
