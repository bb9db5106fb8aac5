package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/calendar"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
)

// CalendarHandler handles calendar-event endpoints.
type CalendarHandler struct {
	svc calendar.Service
}

func NewCalendarHandler(svc calendar.Service) *CalendarHandler { return &CalendarHandler{svc: svc} }

func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Create(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	items, err := h.svc.List(r.Context(), chi.URLParam(r, "userID"), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}

func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "eventID")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "event deleted"})
}
