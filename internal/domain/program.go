package domain

import "time"

// FitnessProgram is a user-authored weekly training plan, optionally tied to a goal.
type FitnessProgram struct {
	ProgramID         string       `json:"id" dynamodbav:"program_id"`
	UserID            string       `json:"user_id" dynamodbav:"user_id"`
	GoalID            string       `json:"goal_id,omitempty" dynamodbav:"goal_id"`
	ProgramName       string       `json:"program_name" dynamodbav:"program_name"`
	DurationWeeks     int          `json:"duration_weeks" dynamodbav:"duration_weeks"`
	FocusMuscleGroups []string     `json:"focus_muscle_groups,omitempty" dynamodbav:"focus_muscle_groups"`
	DifficultyLevel   string       `json:"difficulty_level" dynamodbav:"difficulty_level"`
	Schedule          []ProgramDay `json:"schedule" dynamodbav:"schedule"`
	CreatedAt         time.Time    `json:"created_at" dynamodbav:"created_at"`
}

// ProgramDay describes one day of the weekly schedule. DayOfWeek runs 0 (Monday)
// through 6 (Sunday).
type ProgramDay struct {
	DayOfWeek          int      `json:"day_of_week" dynamodbav:"day_of_week"`
	RestDay            bool     `json:"rest_day" dynamodbav:"rest_day"`
	SuggestedExercises []string `json:"suggested_exercises,omitempty" dynamodbav:"suggested_exercises"`
}

type CreateProgramRequest struct {
	GoalID            string            `json:"goal_id"`
	ProgramName       string            `json:"program_name" validate:"required,max=120"`
	DurationWeeks     int               `json:"duration_weeks" validate:"required,gt=0,lte=52"`
	FocusMuscleGroups []string          `json:"focus_muscle_groups"`
	DifficultyLevel   string            `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	Schedule          []ProgramDayInput `json:"schedule" validate:"required,min=1,max=7,dive"`
}

type ProgramDayInput struct {
	DayOfWeek          int      `json:"day_of_week" validate:"gte=0,lte=6"`
	RestDay            bool     `json:"rest_day"`
	SuggestedExercises []string `json:"suggested_exercises"`
}
