package domain

import "time"

// CalendarEvent pins a workout, meal or goal deadline to a date.
type CalendarEvent struct {
	EventID    string    `json:"id" dynamodbav:"event_id"`
	UserID     string    `json:"user_id" dynamodbav:"user_id"`
	EventDate  string    `json:"event_date" dynamodbav:"event_date"` // YYYY-MM-DD
	EventType  string    `json:"event_type" dynamodbav:"event_type"` // workout | meal | goal_deadline | custom
	EventTitle string    `json:"event_title" dynamodbav:"event_title"`
	RelatedID  string    `json:"related_id,omitempty" dynamodbav:"related_id"`
	Details    string    `json:"event_details,omitempty" dynamodbav:"event_details"`
	CreatedAt  time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateEventRequest struct {
	EventDate  string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventType  string `json:"event_type" validate:"required,oneof=workout meal goal_deadline custom"`
	EventTitle string `json:"event_title" validate:"required,max=120"`
	RelatedID  string `json:"related_id"`
	Details    string `json:"event_details"`
}
