package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/fittrack/fittrack-api/internal/application/workout"
	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/validate"
)

// WorkoutHandler handles workout session endpoints.
type WorkoutHandler struct {
	svc workout.Service
}

func NewWorkoutHandler(svc workout.Service) *WorkoutHandler { return &WorkoutHandler{svc: svc} }

func (h *WorkoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateWorkoutRequest
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

func (h *WorkoutHandler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	items, err := h.svc.List(r.Context(), chi.URLParam(r, "userID"), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}

func (h *WorkoutHandler) Recent(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil && n > 0 {
			limit = n
		}
	}
	items, err := h.svc.Recent(r.Context(), chi.URLParam(r, "userID"), int32(limit))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DataEnvelope{Data: items, Count: len(items)})
}

func (h *WorkoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Get(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *WorkoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Update(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *WorkoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "workout deleted"})
}

func (h *WorkoutHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	var req domain.AddWorkoutExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.AddExercise(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *WorkoutHandler) UpdateExercise(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateWorkoutExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.UpdateExercise(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID"), chi.URLParam(r, "entryID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *WorkoutHandler) RemoveExercise(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.RemoveExercise(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID"), chi.URLParam(r, "entryID"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *WorkoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req domain.CompleteWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Complete(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "workoutID"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
