package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldAge          = "age"
	fieldHeight       = "height_cm"
	fieldWeight       = "current_weight_kg"
	fieldProfileImage = "profile_image_url"
)

// Stats aggregates a user's lifetime activity totals.
type Stats struct {
	TotalWorkouts       int     `json:"total_workouts"`
	CompletedWorkouts   int     `json:"completed_workouts"`
	TotalCaloriesBurned float64 `json:"total_calories_burned"`
	TotalMeals          int     `json:"total_meals"`
	TotalGoals          int     `json:"total_goals"`
	ActiveGoals         int     `json:"active_goals"`
	CompletedGoals      int     `json:"completed_goals"`
	MemberSince         string  `json:"member_since"` // YYYY-MM-DD
}

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error)
	SetProfileImage(ctx context.Context, userID, b64Image string) (*domain.User, error)
	Stats(ctx context.Context, userID string) (*Stats, error)
	Delete(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	Delete(ctx context.Context, userID string) error
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

type workoutStore interface {
	ListByUser(ctx context.Context, userID, from, to string) ([]domain.Workout, error)
}

type mealStore interface {
	ListByUser(ctx context.Context, userID, from, to string) ([]domain.Meal, error)
}

type goalStore interface {
	ListByUser(ctx context.Context, userID, status string) ([]domain.Goal, error)
}

type service struct {
	repo     userStore
	images   imageStore
	workouts workoutStore
	meals    mealStore
	goals    goalStore
}

type ServiceDeps struct {
	UserRepo    userStore
	ImageStore  imageStore
	WorkoutRepo workoutStore
	MealRepo    mealStore
	GoalRepo    goalStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:     deps.UserRepo,
		images:   deps.ImageStore,
		workouts: deps.WorkoutRepo,
		meals:    deps.MealRepo,
		goals:    deps.GoalRepo,
	}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// Update applies a sparse profile update. Username and email changes go through
// the marker-item transaction on the repo side, so they are rejected here and
// must use the dedicated flows that keep the uniqueness markers consistent.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateUserRequest) (*domain.User, error) {
	if req.Username != nil || req.Email != nil {
		return nil, fmt.Errorf("username and email cannot be changed here: %w", domain.ErrBadRequest)
	}

	updates := map[string]interface{}{}
	if req.Age != nil {
		updates[fieldAge] = *req.Age
	}
	if req.HeightCM != nil {
		updates[fieldHeight] = *req.HeightCM
	}
	if req.WeightKG != nil {
		updates[fieldWeight] = *req.WeightKG
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}

	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) SetProfileImage(ctx context.Context, userID, b64Image string) (*domain.User, error) {
	if s.images == nil {
		return nil, fmt.Errorf("image storage not configured: %w", domain.ErrBadRequest)
	}
	if strings.TrimSpace(b64Image) == "" {
		return nil, fmt.Errorf("image data required: %w", domain.ErrBadRequest)
	}

	key := fmt.Sprintf("profiles/%s/%d.jpg", userID, time.Now().Unix())
	url, err := s.images.UploadBase64(ctx, key, b64Image)
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldProfileImage: url}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) Stats(ctx context.Context, userID string) (*Stats, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workouts.ListByUser(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	meals, err := s.meals.ListByUser(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	goals, err := s.goals.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	st := &Stats{
		TotalWorkouts: len(workouts),
		TotalMeals:    len(meals),
		TotalGoals:    len(goals),
		MemberSince:   u.CreatedAt.Format("2006-01-02"),
	}
	for _, w := range workouts {
		if w.Status == domain.WorkoutCompleted {
			st.CompletedWorkouts++
			st.TotalCaloriesBurned += w.CaloriesBurned
		}
	}
	for _, g := range goals {
		switch g.Status {
		case domain.GoalActive:
			st.ActiveGoals++
		case domain.GoalCompleted:
			st.CompletedGoals++
		}
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID)
}
