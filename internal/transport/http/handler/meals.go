package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/meal"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
)

// MealHandler handles nutrition-log endpoints.
type MealHandler struct {
	svc meal.Service
}

func NewMealHandler(svc meal.Service) *MealHandler { return &MealHandler{svc: svc} }

func (h *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMealRequest
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

func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	items, err := h.svc.List(r.Context(), chi.URLParam(r, "userID"), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}

func (h *MealHandler) Summary(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Summary(r.Context(), chi.URLParam(r, "userID"), r.URL.Query().Get("date"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "mealID"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "mealID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "mealID")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "meal deleted"})
}

func (h *MealHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateMealItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.AddItem(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "mealID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *MealHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.RemoveItem(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "mealID"), chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
