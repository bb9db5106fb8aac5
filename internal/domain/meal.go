package domain

import "time"

type Meal struct {
	MealID        string     `json:"id" dynamodbav:"meal_id"`
	UserID        string     `json:"user_id" dynamodbav:"user_id"`
	MealType      string     `json:"meal_type" dynamodbav:"meal_type"` // breakfast | lunch | dinner | snack
	MealDate      string     `json:"meal_date" dynamodbav:"meal_date"` // YYYY-MM-DD
	TotalCalories float64    `json:"total_calories" dynamodbav:"total_calories"`
	ProteinG      float64    `json:"protein_g" dynamodbav:"protein_g"`
	CarbsG        float64    `json:"carbs_g" dynamodbav:"carbs_g"`
	FatsG         float64    `json:"fats_g" dynamodbav:"fats_g"`
	Notes         string     `json:"notes,omitempty" dynamodbav:"notes"`
	Items         []MealItem `json:"items" dynamodbav:"items"`
	CreatedAt     time.Time  `json:"created_at" dynamodbav:"created_at"`
}

type MealItem struct {
	ItemID       string  `json:"id" dynamodbav:"item_id"`
	FoodName     string  `json:"food_name" dynamodbav:"food_name"`
	Quantity     float64 `json:"quantity" dynamodbav:"quantity"`
	QuantityUnit string  `json:"quantity_unit" dynamodbav:"quantity_unit"`
	Calories     float64 `json:"calories" dynamodbav:"calories"`
	ProteinG     float64 `json:"protein_g" dynamodbav:"protein_g"`
	CarbsG       float64 `json:"carbs_g" dynamodbav:"carbs_g"`
	FatsG        float64 `json:"fats_g" dynamodbav:"fats_g"`
}

type CreateMealRequest struct {
	MealType string                  `json:"meal_type" validate:"required,oneof=breakfast lunch dinner snack"`
	MealDate string                  `json:"meal_date" validate:"omitempty,datetime=2006-01-02"`
	Notes    string                  `json:"notes"`
	Items    []CreateMealItemRequest `json:"items" validate:"dive"`
}

type CreateMealItemRequest struct {
	FoodName     string  `json:"food_name" validate:"required,max=120"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	QuantityUnit string  `json:"quantity_unit" validate:"required"`
	Calories     float64 `json:"calories" validate:"omitempty,gte=0"`
	ProteinG     float64 `json:"protein_g" validate:"omitempty,gte=0"`
	CarbsG       float64 `json:"carbs_g" validate:"omitempty,gte=0"`
	FatsG        float64 `json:"fats_g" validate:"omitempty,gte=0"`
}

type UpdateMealRequest struct {
	MealType *string `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	MealDate *string `json:"meal_date" validate:"omitempty,datetime=2006-01-02"`
	Notes    *string `json:"notes"`
}
