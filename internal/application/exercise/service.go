package exercise

import (
	"context"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateExerciseRequest) (*domain.Exercise, error)
	Get(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	List(ctx context.Context, muscleGroup, difficulty string) ([]domain.Exercise, error)
}

type exerciseStore interface {
	Put(ctx context.Context, e *domain.Exercise) error
	Get(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	ListByMuscleGroup(ctx context.Context, muscleGroup string, limit int32) ([]domain.Exercise, error)
	ListByDifficulty(ctx context.Context, difficulty string) ([]domain.Exercise, error)
}

type service struct {
	repo exerciseStore
}

func NewService(repo exerciseStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateExerciseRequest) (*domain.Exercise, error) {
	e := &domain.Exercise{
		ExerciseID:            id.New(),
		Name:                  req.Name,
		Description:           req.Description,
		PrimaryMuscleGroup:    req.PrimaryMuscleGroup,
		SecondaryMuscleGroups: req.SecondaryMuscleGroups,
		DifficultyLevel:       req.DifficultyLevel,
		CaloriesPerMinute:     req.CaloriesPerMinute,
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Get(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	return s.repo.Get(ctx, exerciseID)
}

// List filters the catalog. Muscle group wins when both filters are given; the
// difficulty filter is then applied in memory.
func (s *service) List(ctx context.Context, muscleGroup, difficulty string) ([]domain.Exercise, error) {
	switch {
	case muscleGroup != "":
		items, err := s.repo.ListByMuscleGroup(ctx, muscleGroup, 0)
		if err != nil {
			return nil, err
		}
		if difficulty == "" {
			return items, nil
		}
		filtered := items[:0]
		for _, e := range items {
			if e.DifficultyLevel == difficulty {
				filtered = append(filtered, e)
			}
		}
		return filtered, nil
	case difficulty != "":
		return s.repo.ListByDifficulty(ctx, difficulty)
	default:
		return s.repo.List(ctx)
	}
}
