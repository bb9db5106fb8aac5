package domain

import "time"

// Workout statuses.
const (
	WorkoutInProgress = "in_progress"
	WorkoutCompleted  = "completed"
	WorkoutCancelled  = "cancelled"
)

type Workout struct {
	WorkoutID      string            `json:"id" dynamodbav:"workout_id"`
	UserID         string            `json:"user_id" dynamodbav:"user_id"`
	WorkoutDate    string            `json:"workout_date" dynamodbav:"workout_date"` // YYYY-MM-DD
	WorkoutType    string            `json:"workout_type" dynamodbav:"workout_type"` // strength | cardio | flexibility | hiit | mixed
	Status         string            `json:"status" dynamodbav:"status"`
	DurationMin    int               `json:"total_duration_minutes" dynamodbav:"total_duration_minutes"`
	CaloriesBurned float64           `json:"total_calories_burned" dynamodbav:"total_calories_burned"`
	Notes          string            `json:"notes,omitempty" dynamodbav:"notes"`
	Exercises      []WorkoutExercise `json:"exercises" dynamodbav:"exercises"`
	CreatedAt      time.Time         `json:"created_at" dynamodbav:"created_at"`
	CompletedAt    *time.Time        `json:"completed_at,omitempty" dynamodbav:"completed_at"`
}

// WorkoutExercise is one performed exercise inside a workout. MuscleGroup is
// denormalized from the catalog at insert time so dashboard rollups never fan
// out into per-entry catalog reads.
type WorkoutExercise struct {
	EntryID        string  `json:"id" dynamodbav:"entry_id"`
	ExerciseID     string  `json:"exercise_id" dynamodbav:"exercise_id"`
	ExerciseName   string  `json:"exercise_name" dynamodbav:"exercise_name"`
	MuscleGroup    string  `json:"muscle_group" dynamodbav:"muscle_group"`
	Sets           int     `json:"sets,omitempty" dynamodbav:"sets"`
	Reps           int     `json:"reps,omitempty" dynamodbav:"reps"`
	WeightUsed     float64 `json:"weight_used,omitempty" dynamodbav:"weight_used"`
	WeightUnit     string  `json:"weight_unit,omitempty" dynamodbav:"weight_unit"` // kg | lbs
	DurationSec    int     `json:"duration_seconds,omitempty" dynamodbav:"duration_seconds"`
	CaloriesBurned float64 `json:"calories_burned" dynamodbav:"calories_burned"`
	Order          int     `json:"order_in_workout" dynamodbav:"order_in_workout"`
}

type CreateWorkoutRequest struct {
	WorkoutDate string `json:"workout_date" validate:"omitempty,datetime=2006-01-02"`
	WorkoutType string `json:"workout_type" validate:"required,oneof=strength cardio flexibility hiit mixed"`
	Notes       string `json:"notes"`
}

type UpdateWorkoutRequest struct {
	WorkoutDate *string `json:"workout_date" validate:"omitempty,datetime=2006-01-02"`
	WorkoutType *string `json:"workout_type" validate:"omitempty,oneof=strength cardio flexibility hiit mixed"`
	Notes       *string `json:"notes"`
}

type AddWorkoutExerciseRequest struct {
	ExerciseID  string  `json:"exercise_id" validate:"required"`
	Sets        int     `json:"sets" validate:"omitempty,gte=0"`
	Reps        int     `json:"reps" validate:"omitempty,gte=0"`
	WeightUsed  float64 `json:"weight_used" validate:"omitempty,gte=0"`
	WeightUnit  string  `json:"weight_unit" validate:"omitempty,oneof=kg lbs"`
	DurationSec int     `json:"duration_seconds" validate:"omitempty,gte=0"`
}

type UpdateWorkoutExerciseRequest struct {
	Sets        *int     `json:"sets" validate:"omitempty,gte=0"`
	Reps        *int     `json:"reps" validate:"omitempty,gte=0"`
	WeightUsed  *float64 `json:"weight_used" validate:"omitempty,gte=0"`
	DurationSec *int     `json:"duration_seconds" validate:"omitempty,gte=0"`
}

type CompleteWorkoutRequest struct {
	DurationMin int `json:"total_duration_minutes" validate:"required,gt=0"`
}
