package workout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/calories"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

const defaultRecentLimit = 5

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateWorkoutRequest) (*domain.Workout, error)
	Get(ctx context.Context, userID, workoutID string) (*domain.Workout, error)
	List(ctx context.Context, userID, from, to string) ([]domain.Workout, error)
	Recent(ctx context.Context, userID string, limit int32) ([]domain.Workout, error)
	Update(ctx context.Context, userID, workoutID string, req domain.UpdateWorkoutRequest) (*domain.Workout, error)
	Delete(ctx context.Context, userID, workoutID string) error
	AddExercise(ctx context.Context, userID, workoutID string, req domain.AddWorkoutExerciseRequest) (*domain.Workout, error)
	UpdateExercise(ctx context.Context, userID, workoutID, entryID string, req domain.UpdateWorkoutExerciseRequest) (*domain.Workout, error)
	RemoveExercise(ctx context.Context, userID, workoutID, entryID string) (*domain.Workout, error)
	Complete(ctx context.Context, userID, workoutID string, req domain.CompleteWorkoutRequest) (*domain.Workout, error)
}

type workoutStore interface {
	Put(ctx context.Context, w *domain.Workout) error
	Get(ctx context.Context, workoutID string) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID, from, to string) ([]domain.Workout, error)
	ListRecent(ctx context.Context, userID string, limit int32) ([]domain.Workout, error)
	Update(ctx context.Context, workoutID string, updates map[string]interface{}) error
	Delete(ctx context.Context, workoutID string) error
}

type exerciseStore interface {
	Get(ctx context.Context, exerciseID string) (*domain.Exercise, error)
}

type eventStore interface {
	Put(ctx context.Context, e *domain.CalendarEvent) error
}

type service struct {
	repo      workoutStore
	exercises exerciseStore
	events    eventStore
}

type ServiceDeps struct {
	WorkoutRepo  workoutStore
	ExerciseRepo exerciseStore
	EventRepo    eventStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.WorkoutRepo, exercises: deps.ExerciseRepo, events: deps.EventRepo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateWorkoutRequest) (*domain.Workout, error) {
	date := req.WorkoutDate
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	w := &domain.Workout{
		WorkoutID:   id.New(),
		UserID:      userID,
		WorkoutDate: date,
		WorkoutType: req.WorkoutType,
		Status:      domain.WorkoutInProgress,
		Notes:       req.Notes,
		Exercises:   []domain.WorkoutExercise{},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) Get(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	return s.getOwned(ctx, userID, workoutID)
}

func (s *service) List(ctx context.Context, userID, from, to string) ([]domain.Workout, error) {
	return s.repo.ListByUser(ctx, userID, from, to)
}

// Recent returns the user's latest workouts, newest first.
func (s *service) Recent(ctx context.Context, userID string, limit int32) ([]domain.Workout, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *service) Update(ctx context.Context, userID, workoutID string, req domain.UpdateWorkoutRequest) (*domain.Workout, error) {
	w, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == domain.WorkoutCompleted {
		return nil, fmt.Errorf("completed workout cannot be edited: %w", domain.ErrConflict)
	}

	updates := map[string]interface{}{}
	if req.WorkoutDate != nil {
		updates["workout_date"] = *req.WorkoutDate
	}
	if req.WorkoutType != nil {
		updates["workout_type"] = *req.WorkoutType
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, workoutID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, workoutID)
}

func (s *service) Delete(ctx context.Context, userID, workoutID string) error {
	if _, err := s.getOwned(ctx, userID, workoutID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, workoutID)
}

// AddExercise appends an entry to the workout. The catalog entry's muscle group
// is copied onto the entry and calories are estimated from either the catalog's
// per-minute figure or the type/difficulty tables.
func (s *service) AddExercise(ctx context.Context, userID, workoutID string, req domain.AddWorkoutExerciseRequest) (*domain.Workout, error) {
	w, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == domain.WorkoutCompleted {
		return nil, fmt.Errorf("completed workout cannot be edited: %w", domain.ErrConflict)
	}

	ex, err := s.exercises.Get(ctx, req.ExerciseID)
	if err != nil {
		return nil, fmt.Errorf("exercise not in catalog: %w", domain.ErrBadRequest)
	}

	entry := domain.WorkoutExercise{
		EntryID:      id.New(),
		ExerciseID:   ex.ExerciseID,
		ExerciseName: ex.Name,
		MuscleGroup:  ex.PrimaryMuscleGroup,
		Sets:         req.Sets,
		Reps:         req.Reps,
		WeightUsed:   req.WeightUsed,
		WeightUnit:   req.WeightUnit,
		DurationSec:  req.DurationSec,
		Order:        len(w.Exercises) + 1,
	}
	entry.CaloriesBurned = estimateCalories(w.WorkoutType, ex, entry.DurationSec)

	w.Exercises = append(w.Exercises, entry)
	if err := s.saveExercises(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) UpdateExercise(ctx context.Context, userID, workoutID, entryID string, req domain.UpdateWorkoutExerciseRequest) (*domain.Workout, error) {
	w, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == domain.WorkoutCompleted {
		return nil, fmt.Errorf("completed workout cannot be edited: %w", domain.ErrConflict)
	}

	idx := -1
	for i := range w.Exercises {
		if w.Exercises[i].EntryID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("exercise entry not in workout: %w", domain.ErrNotFound)
	}

	entry := &w.Exercises[idx]
	if req.Sets != nil {
		entry.Sets = *req.Sets
	}
	if req.Reps != nil {
		entry.Reps = *req.Reps
	}
	if req.WeightUsed != nil {
		entry.WeightUsed = *req.WeightUsed
	}
	if req.DurationSec != nil {
		entry.DurationSec = *req.DurationSec
		if ex, exErr := s.exercises.Get(ctx, entry.ExerciseID); exErr == nil {
			entry.CaloriesBurned = estimateCalories(w.WorkoutType, ex, entry.DurationSec)
		}
	}

	if err := s.saveExercises(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) RemoveExercise(ctx context.Context, userID, workoutID, entryID string) (*domain.Workout, error) {
	w, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == domain.WorkoutCompleted {
		return nil, fmt.Errorf("completed workout cannot be edited: %w", domain.ErrConflict)
	}

	kept := w.Exercises[:0]
	found := false
	for _, e := range w.Exercises {
		if e.EntryID == entryID {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return nil, fmt.Errorf("exercise entry not in workout: %w", domain.ErrNotFound)
	}
	for i := range kept {
		kept[i].Order = i + 1
	}
	w.Exercises = kept

	if err := s.saveExercises(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Complete closes a workout, freezing its duration and calorie total.
func (s *service) Complete(ctx context.Context, userID, workoutID string, req domain.CompleteWorkoutRequest) (*domain.Workout, error) {
	w, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	if w.Status == domain.WorkoutCompleted {
		return nil, fmt.Errorf("workout already completed: %w", domain.ErrConflict)
	}

	now := time.Now().UTC()
	w.Status = domain.WorkoutCompleted
	w.DurationMin = req.DurationMin
	w.CaloriesBurned = totalCalories(w.Exercises)
	w.CompletedAt = &now

	updates := map[string]interface{}{
		"status":                 w.Status,
		"total_duration_minutes": w.DurationMin,
		"total_calories_burned":  w.CaloriesBurned,
		"completed_at":           now,
	}
	if err := s.repo.Update(ctx, workoutID, updates); err != nil {
		return nil, err
	}

	// Pin the completed workout to the calendar. Losing the event is not worth
	// failing the completion.
	if s.events != nil {
		ev := &domain.CalendarEvent{
			EventID:    id.New(),
			UserID:     userID,
			EventDate:  w.WorkoutDate,
			EventType:  "workout",
			EventTitle: fmt.Sprintf("Completed %s workout", w.WorkoutType),
			RelatedID:  w.WorkoutID,
			CreatedAt:  now,
		}
		if err := s.events.Put(ctx, ev); err != nil {
			slog.Warn("failed to record workout calendar event", "workout_id", w.WorkoutID, "error", err)
		}
	}
	return w, nil
}

func (s *service) getOwned(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	w, err := s.repo.Get(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if w.UserID != userID {
		return nil, fmt.Errorf("workout belongs to another user: %w", domain.ErrForbidden)
	}
	return w, nil
}

func (s *service) saveExercises(ctx context.Context, w *domain.Workout) error {
	return s.repo.Update(ctx, w.WorkoutID, map[string]interface{}{"exercises": w.Exercises})
}

func estimateCalories(workoutType string, ex *domain.Exercise, durationSec int) float64 {
	if durationSec <= 0 {
		return 0
	}
	if ex.CaloriesPerMinute > 0 {
		return ex.CaloriesPerMinute * float64(durationSec) / 60
	}
	return calories.ForDuration(workoutType, ex.DifficultyLevel, ex.PrimaryMuscleGroup, durationSec)
}

func totalCalories(entries []domain.WorkoutExercise) float64 {
	var total float64
	for _, e := range entries {
		total += e.CaloriesBurned
	}
	return total
}
