package domain

import "time"

// Goal statuses.
const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalAbandoned = "abandoned"
)

type Goal struct {
	GoalID          string    `json:"id" dynamodbav:"goal_id"`
	UserID          string    `json:"user_id" dynamodbav:"user_id"`
	GoalType        string    `json:"goal_type" dynamodbav:"goal_type"` // weight_loss | muscle_gain | endurance
	TargetValue     float64   `json:"target_value" dynamodbav:"target_value"`
	TargetUnit      string    `json:"target_unit" dynamodbav:"target_unit"`
	CurrentProgress float64   `json:"current_progress" dynamodbav:"current_progress"`
	TargetDate      string    `json:"target_date" dynamodbav:"target_date"` // YYYY-MM-DD
	Status          string    `json:"status" dynamodbav:"status"`
	Description     string    `json:"description,omitempty" dynamodbav:"description"`
	CreatedAt       time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateGoalRequest struct {
	GoalType    string  `json:"goal_type" validate:"required,oneof=weight_loss muscle_gain endurance"`
	TargetValue float64 `json:"target_value" validate:"required,gt=0"`
	TargetUnit  string  `json:"target_unit" validate:"required"`
	TargetDate  string  `json:"target_date" validate:"required,datetime=2006-01-02"`
	Description string  `json:"description"`
}

type UpdateGoalRequest struct {
	TargetValue     *float64 `json:"target_value" validate:"omitempty,gt=0"`
	TargetUnit      *string  `json:"target_unit"`
	CurrentProgress *float64 `json:"current_progress" validate:"omitempty,gte=0"`
	TargetDate      *string  `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
	Status          *string  `json:"status" validate:"omitempty,oneof=active completed abandoned"`
	Description     *string  `json:"description"`
}
