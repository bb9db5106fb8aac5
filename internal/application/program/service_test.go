package program

import (
	"context"
	"errors"
	"testing"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProgramStore struct{ mock.Mock }

func (m *mockProgramStore) Put(ctx context.Context, p *domain.FitnessProgram) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProgramStore) Get(ctx context.Context, programID string) (*domain.FitnessProgram, error) {
	args := m.Called(ctx, programID)
	if p, _ := args.Get(0).(*domain.FitnessProgram); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProgramStore) ListByUser(ctx context.Context, userID string) ([]domain.FitnessProgram, error) {
	args := m.Called(ctx, userID)
	if ps, _ := args.Get(0).([]domain.FitnessProgram); ps != nil {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProgramStore) Delete(ctx context.Context, programID string) error {
	return m.Called(ctx, programID).Error(0)
}

type mockGoalStore struct{ mock.Mock }

func (m *mockGoalStore) Get(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if g, _ := args.Get(0).(*domain.Goal); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func newService(ps *mockProgramStore, gs *mockGoalStore) Service {
	return NewService(ServiceDeps{ProgramRepo: ps, GoalRepo: gs})
}

func validRequest() domain.CreateProgramRequest {
	return domain.CreateProgramRequest{
		ProgramName:     "Push Pull Legs",
		DurationWeeks:   8,
		DifficultyLevel: "intermediate",
		Schedule: []domain.ProgramDayInput{
			{DayOfWeek: 0, SuggestedExercises: []string{"ex1"}},
			{DayOfWeek: 1, RestDay: true},
		},
	}
}

func TestCreate_HappyPath(t *testing.T) {
	ps := &mockProgramStore{}
	ps.On("Put", mock.Anything, mock.MatchedBy(func(p *domain.FitnessProgram) bool {
		return p.UserID == "u1" && len(p.Schedule) == 2 && p.ProgramID != ""
	})).Return(nil)

	svc := newService(ps, nil)
	p, err := svc.Create(context.Background(), "u1", validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Push Pull Legs", p.ProgramName)
	ps.AssertExpectations(t)
}

func TestCreate_DuplicateScheduleDay(t *testing.T) {
	req := validRequest()
	req.Schedule = []domain.ProgramDayInput{
		{DayOfWeek: 2}, {DayOfWeek: 2},
	}

	svc := newService(&mockProgramStore{}, nil)
	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_RestDayWithExercises(t *testing.T) {
	req := validRequest()
	req.Schedule = []domain.ProgramDayInput{
		{DayOfWeek: 3, RestDay: true, SuggestedExercises: []string{"ex1"}},
	}

	svc := newService(&mockProgramStore{}, nil)
	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestCreate_LinkedGoalMustBelongToUser(t *testing.T) {
	gs := &mockGoalStore{}
	gs.On("Get", mock.Anything, "g1").Return(&domain.Goal{GoalID: "g1", UserID: "someone_else"}, nil)

	req := validRequest()
	req.GoalID = "g1"

	svc := newService(&mockProgramStore{}, gs)
	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestCreate_UnknownGoal_BadRequest(t *testing.T) {
	gs := &mockGoalStore{}
	gs.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	req := validRequest()
	req.GoalID = "missing"

	svc := newService(&mockProgramStore{}, gs)
	_, err := svc.Create(context.Background(), "u1", req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDelete_OtherUsersProgram_Forbidden(t *testing.T) {
	ps := &mockProgramStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.FitnessProgram{ProgramID: "p1", UserID: "owner"}, nil)

	svc := newService(ps, nil)
	err := svc.Delete(context.Background(), "intruder", "p1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
