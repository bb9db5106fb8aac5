package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateEventRequest) (*domain.CalendarEvent, error)
	List(ctx context.Context, userID, from, to string) ([]domain.CalendarEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
}

type eventStore interface {
	Put(ctx context.Context, e *domain.CalendarEvent) error
	Get(ctx context.Context, eventID string) (*domain.CalendarEvent, error)
	ListByUser(ctx context.Context, userID, from, to string) ([]domain.CalendarEvent, error)
	Delete(ctx context.Context, eventID string) error
}

type service struct {
	repo eventStore
}

func NewService(repo eventStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateEventRequest) (*domain.CalendarEvent, error) {
	e := &domain.CalendarEvent{
		EventID:    id.New(),
		UserID:     userID,
		EventDate:  req.EventDate,
		EventType:  req.EventType,
		EventTitle: req.EventTitle,
		RelatedID:  req.RelatedID,
		Details:    req.Details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns the user's events in a date window. An empty window defaults to
// the current month.
func (s *service) List(ctx context.Context, userID, from, to string) ([]domain.CalendarEvent, error) {
	if from == "" || to == "" {
		now := time.Now().UTC()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		from = first.Format("2006-01-02")
		to = first.AddDate(0, 1, -1).Format("2006-01-02")
	}
	return s.repo.ListByUser(ctx, userID, from, to)
}

func (s *service) Delete(ctx context.Context, userID, eventID string) error {
	e, err := s.repo.Get(ctx, eventID)
	if err != nil {
		return err
	}
	if e.UserID != userID {
		return fmt.Errorf("event belongs to another user: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, eventID)
}
