package goal

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

type mockGoalStore struct{ mock.Mock }

func (m *mockGoalStore) Put(ctx context.Context, g *domain.Goal) error {
	return m.Called(ctx, g).Error(0)
}
func (m *mockGoalStore) Get(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if g, _ := args.Get(0).(*domain.Goal); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGoalStore) ListByUser(ctx context.Context, userID, status string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID, status)
	if gs, _ := args.Get(0).([]domain.Goal); gs != nil {
		return gs, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockGoalStore) Update(ctx context.Context, goalID string, updates map[string]interface{}) error {
	return m.Called(ctx, goalID, updates).Error(0)
}
func (m *mockGoalStore) Delete(ctx context.Context, goalID string) error {
	return m.Called(ctx, goalID).Error(0)
}

func TestCreate_PastTargetDate_BadRequest(t *testing.T) {
	svc := NewService(&mockGoalStore{})
	_, err := svc.Create(context.Background(), "u1", domain.CreateGoalRequest{
		GoalType:    "weight_loss",
		TargetValue: 5,
		TargetUnit:  "kg",
		TargetDate:  "2020-01-01",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_StartsActive(t *testing.T) {
	gs := &mockGoalStore{}
	gs.On("Put", mock.Anything, mock.MatchedBy(func(g *domain.Goal) bool {
		return g.Status == domain.GoalActive && g.UserID == "u1"
	})).Return(nil)

	future := time.Now().AddDate(0, 3, 0).Format("2006-01-02")
	svc := NewService(gs)
	g, err := svc.Create(context.Background(), "u1", domain.CreateGoalRequest{
		GoalType:    "muscle_gain",
		TargetValue: 3,
		TargetUnit:  "kg",
		TargetDate:  future,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.GoalActive, g.Status)
	gs.AssertExpectations(t)
}

func TestUpdate_ProgressReachesTarget_AutoCompletes(t *testing.T) {
	gs := &mockGoalStore{}
	gs.On("Get", mock.Anything, "g1").Return(&domain.Goal{
		GoalID: "g1", UserID: "u1", Status: domain.GoalActive,
		TargetValue: 5, CurrentProgress: 4,
	}, nil)
	gs.On("Update", mock.Anything, "g1", mock.MatchedBy(func(updates map[string]interface{}) bool {
		return updates["status"] == domain.GoalCompleted && updates["current_progress"] == 5.0
	})).Return(nil)

	svc := NewService(gs)
	progress := 5.0
	_, err := svc.Update(context.Background(), "u1", "g1", domain.UpdateGoalRequest{
		CurrentProgress: &progress,
	})

	require.NoError(t, err)
	gs.AssertExpectations(t)
}

func TestUpdate_OtherUsersGoal_Forbidden(t *testing.T) {
	gs := &mockGoalStore{}
	gs.On("Get", mock.Anything, "g1").Return(&domain.Goal{GoalID: "g1", UserID: "owner"}, nil)

	svc := NewService(gs)
	progress := 1.0
	_, err := svc.Update(context.Background(), "intruder", "g1", domain.UpdateGoalRequest{
		CurrentProgress: &progress,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
