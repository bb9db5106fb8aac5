package domain

import "time"

// Prediction records one equipment-identification request and its outcome.
// The uploaded photo lives in S3; ImageKey is its object key.
type Prediction struct {
	PredictionID       string    `json:"id" dynamodbav:"prediction_id"`
	UserID             string    `json:"user_id" dynamodbav:"user_id"`
	ImageKey           string    `json:"image_key" dynamodbav:"image_key"`
	EquipmentName      string    `json:"equipment_name" dynamodbav:"equipment_name"`
	ConfidenceScore    float64   `json:"confidence_score" dynamodbav:"confidence_score"`
	SuggestedExercises []string  `json:"suggested_exercises,omitempty" dynamodbav:"suggested_exercises"`
	CreatedAt          time.Time `json:"created_at" dynamodbav:"created_at"`
}
