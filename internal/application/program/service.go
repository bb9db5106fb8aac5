package program

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateProgramRequest) (*domain.FitnessProgram, error)
	Get(ctx context.Context, userID, programID string) (*domain.FitnessProgram, error)
	List(ctx context.Context, userID string) ([]domain.FitnessProgram, error)
	Delete(ctx context.Context, userID, programID string) error
}

type programStore interface {
	Put(ctx context.Context, p *domain.FitnessProgram) error
	Get(ctx context.Context, programID string) (*domain.FitnessProgram, error)
	ListByUser(ctx context.Context, userID string) ([]domain.FitnessProgram, error)
	Delete(ctx context.Context, programID string) error
}

type goalStore interface {
	Get(ctx context.Context, goalID string) (*domain.Goal, error)
}

type service struct {
	repo  programStore
	goals goalStore
}

type ServiceDeps struct {
	ProgramRepo programStore
	GoalRepo    goalStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.ProgramRepo, goals: deps.GoalRepo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateProgramRequest) (*domain.FitnessProgram, error) {
	if err := validateSchedule(req.Schedule); err != nil {
		return nil, err
	}
	if req.GoalID != "" {
		g, err := s.goals.Get(ctx, req.GoalID)
		if err != nil {
			return nil, fmt.Errorf("goal not found: %w", domain.ErrBadRequest)
		}
		if g.UserID != userID {
			return nil, fmt.Errorf("goal belongs to another user: %w", domain.ErrForbidden)
		}
	}

	p := &domain.FitnessProgram{
		ProgramID:         id.New(),
		UserID:            userID,
		GoalID:            req.GoalID,
		ProgramName:       req.ProgramName,
		DurationWeeks:     req.DurationWeeks,
		FocusMuscleGroups: req.FocusMuscleGroups,
		DifficultyLevel:   req.DifficultyLevel,
		Schedule:          make([]domain.ProgramDay, 0, len(req.Schedule)),
		CreatedAt:         time.Now().UTC(),
	}
	for _, day := range req.Schedule {
		p.Schedule = append(p.Schedule, domain.ProgramDay{
			DayOfWeek:          day.DayOfWeek,
			RestDay:            day.RestDay,
			SuggestedExercises: day.SuggestedExercises,
		})
	}

	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, userID, programID string) (*domain.FitnessProgram, error) {
	return s.getOwned(ctx, userID, programID)
}

func (s *service) List(ctx context.Context, userID string) ([]domain.FitnessProgram, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, programID string) error {
	if _, err := s.getOwned(ctx, userID, programID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, programID)
}

func (s *service) getOwned(ctx context.Context, userID, programID string) (*domain.FitnessProgram, error) {
	p, err := s.repo.Get(ctx, programID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("program belongs to another user: %w", domain.ErrForbidden)
	}
	return p, nil
}

func validateSchedule(days []domain.ProgramDayInput) error {
	seen := map[int]bool{}
	for _, d := range days {
		if seen[d.DayOfWeek] {
			return fmt.Errorf("day %d appears twice in the schedule: %w", d.DayOfWeek, domain.ErrBadRequest)
		}
		seen[d.DayOfWeek] = true
		if d.RestDay && len(d.SuggestedExercises) > 0 {
			return fmt.Errorf("rest day cannot list exercises: %w", domain.ErrBadRequest)
		}
	}
	return nil
}
