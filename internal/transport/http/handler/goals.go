package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/goal"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
)

// GoalHandler handles fitness-goal endpoints.
type GoalHandler struct {
	svc goal.Service
}

func NewGoalHandler(svc goal.Service) *GoalHandler { return &GoalHandler{svc: svc} }

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGoalRequest
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

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	items, err := h.svc.List(r.Context(), chi.URLParam(r, "userID"), status)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "goalID"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "goalID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "goalID")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "goal deleted"})
}
