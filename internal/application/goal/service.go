package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateGoalRequest) (*domain.Goal, error)
	Get(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	List(ctx context.Context, userID, status string) ([]domain.Goal, error)
	Update(ctx context.Context, userID, goalID string, req domain.UpdateGoalRequest) (*domain.Goal, error)
	Delete(ctx context.Context, userID, goalID string) error
}

type goalStore interface {
	Put(ctx context.Context, g *domain.Goal) error
	Get(ctx context.Context, goalID string) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID, status string) ([]domain.Goal, error)
	Update(ctx context.Context, goalID string, updates map[string]interface{}) error
	Delete(ctx context.Context, goalID string) error
}

type service struct {
	repo goalStore
}

func NewService(repo goalStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateGoalRequest) (*domain.Goal, error) {
	if req.TargetDate < time.Now().UTC().Format("2006-01-02") {
		return nil, fmt.Errorf("target date is in the past: %w", domain.ErrBadRequest)
	}
	now := time.Now().UTC()
	g := &domain.Goal{
		GoalID:      id.New(),
		UserID:      userID,
		GoalType:    req.GoalType,
		TargetValue: req.TargetValue,
		TargetUnit:  req.TargetUnit,
		TargetDate:  req.TargetDate,
		Status:      domain.GoalActive,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Get(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	return s.getOwned(ctx, userID, goalID)
}

func (s *service) List(ctx context.Context, userID, status string) ([]domain.Goal, error) {
	return s.repo.ListByUser(ctx, userID, status)
}

// Update applies a sparse edit. When the reported progress reaches the target
// value the goal flips to completed on its own.
func (s *service) Update(ctx context.Context, userID, goalID string, req domain.UpdateGoalRequest) (*domain.Goal, error) {
	g, err := s.getOwned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.TargetValue != nil {
		g.TargetValue = *req.TargetValue
		updates["target_value"] = *req.TargetValue
	}
	if req.TargetUnit != nil {
		updates["target_unit"] = *req.TargetUnit
	}
	if req.CurrentProgress != nil {
		g.CurrentProgress = *req.CurrentProgress
		updates["current_progress"] = *req.CurrentProgress
	}
	if req.TargetDate != nil {
		updates["target_date"] = *req.TargetDate
	}
	if req.Status != nil {
		g.Status = *req.Status
		updates["status"] = *req.Status
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if g.Status == domain.GoalActive && g.CurrentProgress >= g.TargetValue {
		updates["status"] = domain.GoalCompleted
	}

	if err := s.repo.Update(ctx, goalID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, goalID)
}

func (s *service) Delete(ctx context.Context, userID, goalID string) error {
	if _, err := s.getOwned(ctx, userID, goalID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, goalID)
}

func (s *service) getOwned(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	g, err := s.repo.Get(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, fmt.Errorf("goal belongs to another user: %w", domain.ErrForbidden)
	}
	return g, nil
}
