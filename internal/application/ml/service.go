package ml

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

const suggestionsPerGroup = 3

// equipmentMuscleMap maps recognized equipment labels to the muscle groups
// they train. Labels arrive from the mobile app's on-device classifier.
var equipmentMuscleMap = map[string][]string{
	"barbell bench":   {"chest", "shoulders", "triceps"},
	"dumbbell":        {"chest", "back", "shoulders", "arms"},
	"barbell":         {"chest", "back", "legs", "shoulders"},
	"kettlebell":      {"back", "legs", "core", "arms"},
	"cables":          {"chest", "back", "shoulders", "arms"},
	"machines":        {"chest", "back", "legs", "shoulders"},
	"treadmill":       {"cardio", "legs"},
	"elliptical":      {"cardio", "legs"},
	"rowing machine":  {"cardio", "back", "arms"},
	"stationary bike": {"cardio", "legs"},
	"pull-up bar":     {"back", "shoulders", "arms"},
	"dip bar":         {"chest", "shoulders", "triceps"},
	"medicine ball":   {"core", "cardio", "legs"},
	"jump rope":       {"cardio", "legs", "core"},
}

type IdentifyRequest struct {
	EquipmentName   string  `json:"equipment_name" validate:"required,max=120"`
	ConfidenceScore float64 `json:"confidence_score" validate:"omitempty,gte=0,lte=1"`
	ImageBase64     string  `json:"image_base64"`
}

type IdentifyResult struct {
	Prediction         *domain.Prediction `json:"prediction"`
	MuscleGroups       []string           `json:"muscle_groups"`
	SuggestedExercises []domain.Exercise  `json:"suggested_exercises"`
}

type Service interface {
	Identify(ctx context.Context, userID string, req IdentifyRequest) (*IdentifyResult, error)
	History(ctx context.Context, userID string, limit int32) ([]domain.Prediction, error)
}

type predictionStore interface {
	Put(ctx context.Context, p *domain.Prediction) error
	ListByUser(ctx context.Context, userID string, limit int32) ([]domain.Prediction, error)
}

type exerciseStore interface {
	ListByMuscleGroup(ctx context.Context, muscleGroup string, limit int32) ([]domain.Exercise, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

type service struct {
	predictions predictionStore
	exercises   exerciseStore
	images      imageStore
}

type ServiceDeps struct {
	PredictionRepo predictionStore
	ExerciseRepo   exerciseStore
	ImageStore     imageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		predictions: deps.PredictionRepo,
		exercises:   deps.ExerciseRepo,
		images:      deps.ImageStore,
	}
}

// Identify looks up the equipment label, collects catalog exercises for the
// muscle groups it trains and records the prediction. The photo, when sent,
// is archived in S3 but its upload failing never fails the lookup.
func (s *service) Identify(ctx context.Context, userID string, req IdentifyRequest) (*IdentifyResult, error) {
	groups, ok := equipmentMuscleMap[strings.ToLower(strings.TrimSpace(req.EquipmentName))]
	if !ok {
		return nil, fmt.Errorf("unrecognized equipment %q: %w", req.EquipmentName, domain.ErrNotFound)
	}

	var imageKey string
	if req.ImageBase64 != "" && s.images != nil {
		key := fmt.Sprintf("equipment/%s/%d.jpg", userID, time.Now().UnixNano())
		if _, err := s.images.UploadBase64(ctx, key, req.ImageBase64); err != nil {
			slog.Warn("failed to archive equipment photo", "user_id", userID, "err", err)
		} else {
			imageKey = key
		}
	}

	var suggested []domain.Exercise
	seen := map[string]bool{}
	for _, group := range groups {
		items, err := s.exercises.ListByMuscleGroup(ctx, group, suggestionsPerGroup)
		if err != nil {
			slog.Warn("catalog lookup failed", "muscle_group", group, "err", err)
			continue
		}
		for _, e := range items {
			if seen[e.ExerciseID] {
				continue
			}
			seen[e.ExerciseID] = true
			suggested = append(suggested, e)
		}
	}

	names := make([]string, 0, len(suggested))
	for _, e := range suggested {
		names = append(names, e.Name)
	}
	p := &domain.Prediction{
		PredictionID:       id.New(),
		UserID:             userID,
		ImageKey:           imageKey,
		EquipmentName:      req.EquipmentName,
		ConfidenceScore:    req.ConfidenceScore,
		SuggestedExercises: names,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.predictions.Put(ctx, p); err != nil {
		return nil, err
	}

	return &IdentifyResult{
		Prediction:         p,
		MuscleGroups:       groups,
		SuggestedExercises: suggested,
	}, nil
}

func (s *service) History(ctx context.Context, userID string, limit int32) ([]domain.Prediction, error) {
	return s.predictions.ListByUser(ctx, userID, limit)
}
