package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/exercise"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
)

// ExerciseHandler handles the shared exercise catalog.
type ExerciseHandler struct {
	svc exercise.Service
}

func NewExerciseHandler(svc exercise.Service) *ExerciseHandler { return &ExerciseHandler{svc: svc} }

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	muscleGroup := r.URL.Query().Get("muscle_group")
	difficulty := r.URL.Query().Get("difficulty")
	items, err := h.svc.List(r.Context(), muscleGroup, difficulty)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}

func (h *ExerciseHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), chi.URLParam(r, "exerciseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
