package workout

import (
	"context"
	"errors"
	"testing"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWorkoutStore struct{ mock.Mock }

func (m *mockWorkoutStore) Put(ctx context.Context, w *domain.Workout) error {
	return m.Called(ctx, w).Error(0)
}
func (m *mockWorkoutStore) Get(ctx context.Context, workoutID string) (*domain.Workout, error) {
	args := m.Called(ctx, workoutID)
	if w, _ := args.Get(0).(*domain.Workout); w != nil {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockWorkoutStore) ListByUser(ctx context.Context, userID, from, to string) ([]domain.Workout, error) {
	args := m.Called(ctx, userID, from, to)
	if ws, _ := args.Get(0).([]domain.Workout); ws != nil {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockWorkoutStore) ListRecent(ctx context.Context, userID string, limit int32) ([]domain.Workout, error) {
	args := m.Called(ctx, userID, limit)
	if ws, _ := args.Get(0).([]domain.Workout); ws != nil {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockWorkoutStore) Update(ctx context.Context, workoutID string, updates map[string]interface{}) error {
	return m.Called(ctx, workoutID, updates).Error(0)
}
func (m *mockWorkoutStore) Delete(ctx context.Context, workoutID string) error {
	return m.Called(ctx, workoutID).Error(0)
}

type mockExerciseStore struct{ mock.Mock }

func (m *mockExerciseStore) Get(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	args := m.Called(ctx, exerciseID)
	if e, _ := args.Get(0).(*domain.Exercise); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEventStore struct{ mock.Mock }

func (m *mockEventStore) Put(ctx context.Context, e *domain.CalendarEvent) error {
	return m.Called(ctx, e).Error(0)
}

func newService(ws *mockWorkoutStore, es *mockExerciseStore) Service {
	return NewService(ServiceDeps{WorkoutRepo: ws, ExerciseRepo: es})
}

func TestCreate_DefaultsDateAndStatus(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("Put", mock.Anything, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.Status == domain.WorkoutInProgress && w.WorkoutDate != "" && w.UserID == "u1"
	})).Return(nil)

	svc := newService(ws, nil)
	w, err := svc.Create(context.Background(), "u1", domain.CreateWorkoutRequest{WorkoutType: "strength"})

	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutInProgress, w.Status)
	assert.Empty(t, w.Exercises)
	ws.AssertExpectations(t)
}

func TestGet_OtherUsersWorkout_Forbidden(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{WorkoutID: "w1", UserID: "owner"}, nil)

	svc := newService(ws, nil)
	_, err := svc.Get(context.Background(), "intruder", "w1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestAddExercise_DenormalizesMuscleGroupAndEstimatesCalories(t *testing.T) {
	ws := &mockWorkoutStore{}
	es := &mockExerciseStore{}

	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID:   "w1",
		UserID:      "u1",
		WorkoutType: "strength",
		Status:      domain.WorkoutInProgress,
	}, nil)
	es.On("Get", mock.Anything, "ex1").Return(&domain.Exercise{
		ExerciseID:         "ex1",
		Name:               "Bench Press",
		PrimaryMuscleGroup: "chest",
		DifficultyLevel:    "intermediate",
		CaloriesPerMinute:  8,
	}, nil)
	ws.On("Update", mock.Anything, "w1", mock.Anything).Return(nil)

	svc := newService(ws, es)
	w, err := svc.AddExercise(context.Background(), "u1", "w1", domain.AddWorkoutExerciseRequest{
		ExerciseID:  "ex1",
		Sets:        3,
		Reps:        10,
		DurationSec: 120,
	})

	require.NoError(t, err)
	require.Len(t, w.Exercises, 1)
	entry := w.Exercises[0]
	assert.Equal(t, "chest", entry.MuscleGroup)
	assert.Equal(t, "Bench Press", entry.ExerciseName)
	assert.Equal(t, 1, entry.Order)
	assert.InDelta(t, 16.0, entry.CaloriesBurned, 0.01)
}

func TestAddExercise_UnknownCatalogEntry(t *testing.T) {
	ws := &mockWorkoutStore{}
	es := &mockExerciseStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", Status: domain.WorkoutInProgress,
	}, nil)
	es.On("Get", mock.Anything, "nope").Return(nil, domain.ErrNotFound)

	svc := newService(ws, es)
	_, err := svc.AddExercise(context.Background(), "u1", "w1", domain.AddWorkoutExerciseRequest{ExerciseID: "nope"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestAddExercise_CompletedWorkout_Conflict(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", Status: domain.WorkoutCompleted,
	}, nil)

	svc := newService(ws, nil)
	_, err := svc.AddExercise(context.Background(), "u1", "w1", domain.AddWorkoutExerciseRequest{ExerciseID: "ex1"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestRemoveExercise_ReordersRemaining(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", Status: domain.WorkoutInProgress,
		Exercises: []domain.WorkoutExercise{
			{EntryID: "e1", Order: 1},
			{EntryID: "e2", Order: 2},
			{EntryID: "e3", Order: 3},
		},
	}, nil)
	ws.On("Update", mock.Anything, "w1", mock.Anything).Return(nil)

	svc := newService(ws, nil)
	w, err := svc.RemoveExercise(context.Background(), "u1", "w1", "e2")

	require.NoError(t, err)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, "e1", w.Exercises[0].EntryID)
	assert.Equal(t, 1, w.Exercises[0].Order)
	assert.Equal(t, "e3", w.Exercises[1].EntryID)
	assert.Equal(t, 2, w.Exercises[1].Order)
}

func TestRecent_DefaultsLimit(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("ListRecent", mock.Anything, "u1", int32(5)).Return([]domain.Workout{
		{WorkoutID: "w2", WorkoutDate: "2026-08-30"},
		{WorkoutID: "w1", WorkoutDate: "2026-08-28"},
	}, nil)

	svc := newService(ws, nil)
	got, err := svc.Recent(context.Background(), "u1", 0)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "w2", got[0].WorkoutID)
	ws.AssertExpectations(t)
}

func TestRecent_PassesExplicitLimit(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("ListRecent", mock.Anything, "u1", int32(10)).Return([]domain.Workout{}, nil)

	svc := newService(ws, nil)
	_, err := svc.Recent(context.Background(), "u1", 10)

	require.NoError(t, err)
	ws.AssertExpectations(t)
}

func TestComplete_SumsCaloriesAndFreezesStatus(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", Status: domain.WorkoutInProgress,
		Exercises: []domain.WorkoutExercise{
			{EntryID: "e1", CaloriesBurned: 50},
			{EntryID: "e2", CaloriesBurned: 75.5},
		},
	}, nil)
	ws.On("Update", mock.Anything, "w1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["status"] == domain.WorkoutCompleted && updates["total_calories_burned"] == 125.5
	})).Return(nil)

	svc := newService(ws, nil)
	w, err := svc.Complete(context.Background(), "u1", "w1", domain.CompleteWorkoutRequest{DurationMin: 45})

	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutCompleted, w.Status)
	assert.Equal(t, 45, w.DurationMin)
	assert.InDelta(t, 125.5, w.CaloriesBurned, 0.001)
	assert.NotNil(t, w.CompletedAt)
	ws.AssertExpectations(t)
}

func TestComplete_RecordsCalendarEvent(t *testing.T) {
	ws := &mockWorkoutStore{}
	evs := &mockEventStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", WorkoutDate: "2026-09-01",
		WorkoutType: "cardio", Status: domain.WorkoutInProgress,
	}, nil)
	ws.On("Update", mock.Anything, "w1", mock.Anything).Return(nil)
	evs.On("Put", mock.Anything, mock.MatchedBy(func(e *domain.CalendarEvent) bool {
		return e.UserID == "u1" && e.EventType == "workout" &&
			e.EventDate == "2026-09-01" && e.RelatedID == "w1"
	})).Return(nil)

	svc := NewService(ServiceDeps{WorkoutRepo: ws, EventRepo: evs})
	_, err := svc.Complete(context.Background(), "u1", "w1", domain.CompleteWorkoutRequest{DurationMin: 30})

	require.NoError(t, err)
	evs.AssertExpectations(t)
}

func TestComplete_EventWriteFailureDoesNotFailCompletion(t *testing.T) {
	ws := &mockWorkoutStore{}
	evs := &mockEventStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", Status: domain.WorkoutInProgress,
	}, nil)
	ws.On("Update", mock.Anything, "w1", mock.Anything).Return(nil)
	evs.On("Put", mock.Anything, mock.Anything).Return(errors.New("dynamo down"))

	svc := NewService(ServiceDeps{WorkoutRepo: ws, EventRepo: evs})
	w, err := svc.Complete(context.Background(), "u1", "w1", domain.CompleteWorkoutRequest{DurationMin: 30})

	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutCompleted, w.Status)
}

func TestComplete_AlreadyCompleted_Conflict(t *testing.T) {
	ws := &mockWorkoutStore{}
	ws.On("Get", mock.Anything, "w1").Return(&domain.Workout{
		WorkoutID: "w1", UserID: "u1", Status: domain.WorkoutCompleted,
	}, nil)

	svc := newService(ws, nil)
	_, err := svc.Complete(context.Background(), "u1", "w1", domain.CompleteWorkoutRequest{DurationMin: 30})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
