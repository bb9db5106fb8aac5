package domain

import "time"

// Auth provider values stored on User.AuthProvider.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

type User struct {
	UserID          string    `json:"id" dynamodbav:"user_id"`
	Username        string    `json:"username" dynamodbav:"username"`
	Email           string    `json:"email" dynamodbav:"email"`
	PasswordHash    string    `json:"-" dynamodbav:"password_hash"`
	AuthProvider    string    `json:"auth_provider" dynamodbav:"auth_provider"` // "local" | "google"
	GoogleSub       string    `json:"-" dynamodbav:"google_sub"`
	DisplayName     string    `json:"display_name,omitempty" dynamodbav:"display_name"`
	ProfileImageURL string    `json:"profile_image_url,omitempty" dynamodbav:"profile_image_url"`
	Age             *float64  `json:"age,omitempty" dynamodbav:"age"`
	HeightCM        *float64  `json:"height_cm,omitempty" dynamodbav:"height_cm"`
	WeightKG        *float64  `json:"current_weight_kg,omitempty" dynamodbav:"current_weight_kg"`
	CreatedAt       time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// HasPassword reports whether the account can authenticate with a password.
// Federated-only accounts carry an empty hash until the user sets one.
func (u *User) HasPassword() bool { return u.PasswordHash != "" }

type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strongpassword"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // username or email
	Password   string `json:"password" validate:"required"`
}

type VerifyLoginRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code" validate:"required,len=6,numeric"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strongpassword"`
}

type UpdateUserRequest struct {
	Username *string  `json:"username" validate:"omitempty,username"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Age      *float64 `json:"age" validate:"omitempty,gt=0,lt=150"`
	HeightCM *float64 `json:"height_cm" validate:"omitempty,gt=0"`
	WeightKG *float64 `json:"current_weight_kg" validate:"omitempty,gt=0"`
}
