package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) UploadBase64(ctx context.Context, key, b64Data string) (string, error) {
	args := m.Called(ctx, key, b64Data)
	return args.String(0), args.Error(1)
}

type mockWorkoutLister struct{ mock.Mock }

func (m *mockWorkoutLister) ListByUser(ctx context.Context, userID, from, to string) ([]domain.Workout, error) {
	args := m.Called(ctx, userID, from, to)
	if ws, _ := args.Get(0).([]domain.Workout); ws != nil {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMealLister struct{ mock.Mock }

func (m *mockMealLister) ListByUser(ctx context.Context, userID, from, to string) ([]domain.Meal, error) {
	args := m.Called(ctx, userID, from, to)
	if ms, _ := args.Get(0).([]domain.Meal); ms != nil {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGoalLister struct{ mock.Mock }

func (m *mockGoalLister) ListByUser(ctx context.Context, userID, status string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID, status)
	if gs, _ := args.Get(0).([]domain.Goal); gs != nil {
		return gs, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestUpdate_RejectsUsernameChange(t *testing.T) {
	svc := NewService(ServiceDeps{UserRepo: &mockUserStore{}})
	name := "newname"
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Username: &name})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_SparseProfileFields(t *testing.T) {
	us := &mockUserStore{}
	age := 30.0
	height := 182.0
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		"age":       30.0,
		"height_cm": 182.0,
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Age: &age}, nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Age: &age, HeightCM: &height})

	require.NoError(t, err)
	require.NotNil(t, u.Age)
	assert.InDelta(t, 30.0, *u.Age, 0.001)
	us.AssertExpectations(t)
}

func TestSetProfileImage_UploadsAndStoresURL(t *testing.T) {
	us := &mockUserStore{}
	is := &mockImageStore{}
	is.On("UploadBase64", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("profiles/u1/") && key[:12] == "profiles/u1/"
	}), "aGVsbG8=").Return("https://bucket/profiles/u1/1.jpg", nil)
	us.On("Update", mock.Anything, "u1", map[string]interface{}{
		"profile_image_url": "https://bucket/profiles/u1/1.jpg",
	}).Return(nil)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)

	svc := NewService(ServiceDeps{UserRepo: us, ImageStore: is})
	_, err := svc.SetProfileImage(context.Background(), "u1", "aGVsbG8=")

	require.NoError(t, err)
	is.AssertExpectations(t)
	us.AssertExpectations(t)
}

func TestStats_AggregatesCompletedWorkoutsAndGoals(t *testing.T) {
	us := &mockUserStore{}
	wl := &mockWorkoutLister{}
	ml := &mockMealLister{}
	gl := &mockGoalLister{}

	created := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	us.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", CreatedAt: created}, nil)
	wl.On("ListByUser", mock.Anything, "u1", "", "").Return([]domain.Workout{
		{Status: domain.WorkoutCompleted, CaloriesBurned: 300},
		{Status: domain.WorkoutCompleted, CaloriesBurned: 450},
		{Status: domain.WorkoutInProgress},
	}, nil)
	ml.On("ListByUser", mock.Anything, "u1", "", "").Return([]domain.Meal{{}, {}}, nil)
	gl.On("ListByUser", mock.Anything, "u1", "").Return([]domain.Goal{
		{Status: domain.GoalActive},
		{Status: domain.GoalCompleted},
		{Status: domain.GoalAbandoned},
	}, nil)

	svc := NewService(ServiceDeps{UserRepo: us, WorkoutRepo: wl, MealRepo: ml, GoalRepo: gl})
	st, err := svc.Stats(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalWorkouts)
	assert.Equal(t, 2, st.CompletedWorkouts)
	assert.InDelta(t, 750.0, st.TotalCaloriesBurned, 0.001)
	assert.Equal(t, 2, st.TotalMeals)
	assert.Equal(t, 3, st.TotalGoals)
	assert.Equal(t, 1, st.ActiveGoals)
	assert.Equal(t, 1, st.CompletedGoals)
	assert.Equal(t, "2025-03-15", st.MemberSince)
}

func TestStats_UnknownUser(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(ServiceDeps{UserRepo: us})
	_, err := svc.Stats(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
