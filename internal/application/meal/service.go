package meal

import (
	"context"
	"fmt"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
	"github.com/fittrack/fittrack-api/internal/pkg/id"
)

// DailySummary rolls one day's meals up into nutrition totals.
type DailySummary struct {
	Date          string             `json:"date"`
	MealCount     int                `json:"meal_count"`
	TotalCalories float64            `json:"total_calories"`
	ProteinG      float64            `json:"protein_g"`
	CarbsG        float64            `json:"carbs_g"`
	FatsG         float64            `json:"fats_g"`
	ByMealType    map[string]float64 `json:"calories_by_meal_type"`
}

type Service interface {
	Create(ctx context.Context, userID string, req domain.CreateMealRequest) (*domain.Meal, error)
	Get(ctx context.Context, userID, mealID string) (*domain.Meal, error)
	List(ctx context.Context, userID, from, to string) ([]domain.Meal, error)
	Summary(ctx context.Context, userID, date string) (*DailySummary, error)
	Update(ctx context.Context, userID, mealID string, req domain.UpdateMealRequest) (*domain.Meal, error)
	Delete(ctx context.Context, userID, mealID string) error
	AddItem(ctx context.Context, userID, mealID string, req domain.CreateMealItemRequest) (*domain.Meal, error)
	RemoveItem(ctx context.Context, userID, mealID, itemID string) (*domain.Meal, error)
}

type mealStore interface {
	Put(ctx context.Context, m *domain.Meal) error
	Get(ctx context.Context, mealID string) (*domain.Meal, error)
	ListByUser(ctx context.Context, userID, from, to string) ([]domain.Meal, error)
	Update(ctx context.Context, mealID string, updates map[string]interface{}) error
	Delete(ctx context.Context, mealID string) error
}

type service struct {
	repo mealStore
}

func NewService(repo mealStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, userID string, req domain.CreateMealRequest) (*domain.Meal, error) {
	date := req.MealDate
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	m := &domain.Meal{
		MealID:    id.New(),
		UserID:    userID,
		MealType:  req.MealType,
		MealDate:  date,
		Notes:     req.Notes,
		Items:     make([]domain.MealItem, 0, len(req.Items)),
		CreatedAt: time.Now().UTC(),
	}
	for _, item := range req.Items {
		m.Items = append(m.Items, newItem(item))
	}
	recalcTotals(m)

	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Get(ctx context.Context, userID, mealID string) (*domain.Meal, error) {
	return s.getOwned(ctx, userID, mealID)
}

func (s *service) List(ctx context.Context, userID, from, to string) ([]domain.Meal, error) {
	return s.repo.ListByUser(ctx, userID, from, to)
}

func (s *service) Summary(ctx context.Context, userID, date string) (*DailySummary, error) {
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, domain.ErrBadRequest)
	}

	meals, err := s.repo.ListByUser(ctx, userID, date, date)
	if err != nil {
		return nil, err
	}

	sum := &DailySummary{Date: date, ByMealType: map[string]float64{}}
	for _, m := range meals {
		sum.MealCount++
		sum.TotalCalories += m.TotalCalories
		sum.ProteinG += m.ProteinG
		sum.CarbsG += m.CarbsG
		sum.FatsG += m.FatsG
		sum.ByMealType[m.MealType] += m.TotalCalories
	}
	return sum, nil
}

func (s *service) Update(ctx context.Context, userID, mealID string, req domain.UpdateMealRequest) (*domain.Meal, error) {
	if _, err := s.getOwned(ctx, userID, mealID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.MealType != nil {
		updates["meal_type"] = *req.MealType
	}
	if req.MealDate != nil {
		updates["meal_date"] = *req.MealDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, mealID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, mealID)
}

func (s *service) Delete(ctx context.Context, userID, mealID string) error {
	if _, err := s.getOwned(ctx, userID, mealID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, mealID)
}

func (s *service) AddItem(ctx context.Context, userID, mealID string, req domain.CreateMealItemRequest) (*domain.Meal, error) {
	m, err := s.getOwned(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}
	m.Items = append(m.Items, newItem(req))
	recalcTotals(m)

	if err := s.saveItems(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) RemoveItem(ctx context.Context, userID, mealID, itemID string) (*domain.Meal, error) {
	m, err := s.getOwned(ctx, userID, mealID)
	if err != nil {
		return nil, err
	}

	kept := m.Items[:0]
	found := false
	for _, item := range m.Items {
		if item.ItemID == itemID {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return nil, fmt.Errorf("item not in meal: %w", domain.ErrNotFound)
	}
	m.Items = kept
	recalcTotals(m)

	if err := s.saveItems(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) getOwned(ctx context.Context, userID, mealID string) (*domain.Meal, error) {
	m, err := s.repo.Get(ctx, mealID)
	if err != nil {
		return nil, err
	}
	if m.UserID != userID {
		return nil, fmt.Errorf("meal belongs to another user: %w", domain.ErrForbidden)
	}
	return m, nil
}

func (s *service) saveItems(ctx context.Context, m *domain.Meal) error {
	return s.repo.Update(ctx, m.MealID, map[string]interface{}{
		"items":          m.Items,
		"total_calories": m.TotalCalories,
		"protein_g":      m.ProteinG,
		"carbs_g":        m.CarbsG,
		"fats_g":         m.FatsG,
	})
}

func newItem(req domain.CreateMealItemRequest) domain.MealItem {
	return domain.MealItem{
		ItemID:       id.New(),
		FoodName:     req.FoodName,
		Quantity:     req.Quantity,
		QuantityUnit: req.QuantityUnit,
		Calories:     req.Calories,
		ProteinG:     req.ProteinG,
		CarbsG:       req.CarbsG,
		FatsG:        req.FatsG,
	}
}

// recalcTotals rederives the meal rollups from its items so they can never
// drift from the item list.
func recalcTotals(m *domain.Meal) {
	m.TotalCalories, m.ProteinG, m.CarbsG, m.FatsG = 0, 0, 0, 0
	for _, item := range m.Items {
		m.TotalCalories += item.Calories
		m.ProteinG += item.ProteinG
		m.CarbsG += item.CarbsG
		m.FatsG += item.FatsG
	}
}
