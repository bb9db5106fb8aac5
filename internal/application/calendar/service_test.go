package calendar

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

type mockEventStore struct{ mock.Mock }

func (m *mockEventStore) Put(ctx context.Context, e *domain.CalendarEvent) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockEventStore) Get(ctx context.Context, eventID string) (*domain.CalendarEvent, error) {
	args := m.Called(ctx, eventID)
	if e, _ := args.Get(0).(*domain.CalendarEvent); e != nil {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEventStore) ListByUser(ctx context.Context, userID, from, to string) ([]domain.CalendarEvent, error) {
	args := m.Called(ctx, userID, from, to)
	if es, _ := args.Get(0).([]domain.CalendarEvent); es != nil {
		return es, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEventStore) Delete(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

func TestCreate_HappyPath(t *testing.T) {
	es := &mockEventStore{}
	es.On("Put", mock.Anything, mock.MatchedBy(func(e *domain.CalendarEvent) bool {
		return e.UserID == "u1" && e.EventID != "" && e.EventType == "workout"
	})).Return(nil)

	svc := NewService(es)
	e, err := svc.Create(context.Background(), "u1", domain.CreateEventRequest{
		EventDate:  "2026-09-15",
		EventType:  "workout",
		EventTitle: "Leg day",
	})

	require.NoError(t, err)
	assert.Equal(t, "Leg day", e.EventTitle)
	es.AssertExpectations(t)
}

func TestList_EmptyWindowDefaultsToCurrentMonth(t *testing.T) {
	es := &mockEventStore{}
	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := first.Format("2006-01-02")
	to := first.AddDate(0, 1, -1).Format("2006-01-02")
	es.On("ListByUser", mock.Anything, "u1", from, to).Return([]domain.CalendarEvent{}, nil)

	svc := NewService(es)
	_, err := svc.List(context.Background(), "u1", "", "")

	require.NoError(t, err)
	es.AssertExpectations(t)
}

func TestDelete_OtherUsersEvent_Forbidden(t *testing.T) {
	es := &mockEventStore{}
	es.On("Get", mock.Anything, "e1").Return(&domain.CalendarEvent{EventID: "e1", UserID: "owner"}, nil)

	svc := NewService(es)
	err := svc.Delete(context.Background(), "intruder", "e1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}
