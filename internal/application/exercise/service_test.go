package exercise

import (
	"context"
	"testing"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExerciseStore struct{ mock.Mock }

func (m *mockExerciseStore) Put(ctx context.Context, e *domain.Exercise) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockExerciseStore) Get(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	args := m.Called(ctx, exerciseID)
	if e, _ := args.Get(0).(*domain.Exercise); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockExerciseStore) List(ctx context.Context) ([]domain.Exercise, error) {
	args := m.Called(ctx)
	if es, _ := args.Get(0).([]domain.Exercise); es != nil {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockExerciseStore) ListByMuscleGroup(ctx context.Context, muscleGroup string, limit int32) ([]domain.Exercise, error) {
	args := m.Called(ctx, muscleGroup, limit)
	if es, _ := args.Get(0).([]domain.Exercise); es != nil {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockExerciseStore) ListByDifficulty(ctx context.Context, difficulty string) ([]domain.Exercise, error) {
	args := m.Called(ctx, difficulty)
	if es, _ := args.Get(0).([]domain.Exercise); es != nil {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	es := &mockExerciseStore{}
	es.On("Put", mock.Anything, mock.MatchedBy(func(e *domain.Exercise) bool {
		return e.ExerciseID != "" && e.Name == "Bench Press" && e.CaloriesPerMinute == 8
	})).Return(nil)

	svc := NewService(es)
	e, err := svc.Create(context.Background(), domain.CreateExerciseRequest{
		Name:               "Bench Press",
		PrimaryMuscleGroup: "chest",
		DifficultyLevel:    "intermediate",
		CaloriesPerMinute:  8,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, e.ExerciseID)
	assert.False(t, e.CreatedAt.IsZero())
	es.AssertExpectations(t)
}

func TestList_NoFilters_ReturnsWholeCatalog(t *testing.T) {
	es := &mockExerciseStore{}
	es.On("List", mock.Anything).Return([]domain.Exercise{{Name: "Squat"}, {Name: "Deadlift"}}, nil)

	svc := NewService(es)
	got, err := svc.List(context.Background(), "", "")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestList_MuscleGroupWinsAndDifficultyFiltersInMemory(t *testing.T) {
	es := &mockExerciseStore{}
	es.On("ListByMuscleGroup", mock.Anything, "legs", int32(0)).Return([]domain.Exercise{
		{Name: "Squat", DifficultyLevel: "advanced"},
		{Name: "Lunge", DifficultyLevel: "beginner"},
		{Name: "Leg Press", DifficultyLevel: "beginner"},
	}, nil)

	svc := NewService(es)
	got, err := svc.List(context.Background(), "legs", "beginner")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Lunge", got[0].Name)
	es.AssertNotCalled(t, "ListByDifficulty", mock.Anything, mock.Anything)
}

func TestList_DifficultyOnly_QueriesIndex(t *testing.T) {
	es := &mockExerciseStore{}
	es.On("ListByDifficulty", mock.Anything, "beginner").Return([]domain.Exercise{{Name: "Plank"}}, nil)

	svc := NewService(es)
	got, err := svc.List(context.Background(), "", "beginner")

	require.NoError(t, err)
	assert.Len(t, got, 1)
	es.AssertExpectations(t)
}
