package domain

import "time"

// Exercise is a catalog entry shared by all users.
type Exercise struct {
	ExerciseID            string    `json:"id" dynamodbav:"exercise_id"`
	Name                  string    `json:"name" dynamodbav:"name"`
	Description           string    `json:"description,omitempty" dynamodbav:"description"`
	PrimaryMuscleGroup    string    `json:"primary_muscle_group" dynamodbav:"primary_muscle_group"`
	SecondaryMuscleGroups []string  `json:"secondary_muscle_groups,omitempty" dynamodbav:"secondary_muscle_groups"`
	DifficultyLevel       string    `json:"difficulty_level" dynamodbav:"difficulty_level"` // beginner | intermediate | advanced
	CaloriesPerMinute     float64   `json:"calories_per_minute" dynamodbav:"calories_per_minute"`
	CreatedAt             time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateExerciseRequest struct {
	Name                  string   `json:"name" validate:"required,max=120"`
	Description           string   `json:"description"`
	PrimaryMuscleGroup    string   `json:"primary_muscle_group" validate:"required"`
	SecondaryMuscleGroups []string `json:"secondary_muscle_groups"`
	DifficultyLevel       string   `json:"difficulty_level" validate:"required,oneof=beginner intermediate advanced"`
	CaloriesPerMinute     float64  `json:"calories_per_minute" validate:"omitempty,gt=0"`
}
