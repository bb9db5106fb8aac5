package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fittrack/fittrack-api/internal/domain"
)

// Reporting periods.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

type DailyCalories struct {
	Date     string  `json:"date"`
	Burned   float64 `json:"calories_burned"`
	Consumed float64 `json:"calories_consumed"`
}

type GoalProgress struct {
	GoalID     string  `json:"goal_id"`
	GoalType   string  `json:"goal_type"`
	TargetDate string  `json:"target_date"`
	Percent    float64 `json:"percent_complete"`
	Status     string  `json:"status"`
}

type Nutrition struct {
	ProteinG       float64 `json:"protein_g"`
	CarbsG         float64 `json:"carbs_g"`
	FatsG          float64 `json:"fats_g"`
	ProteinPercent float64 `json:"protein_percent"`
	CarbsPercent   float64 `json:"carbs_percent"`
	FatsPercent    float64 `json:"fats_percent"`
}

type Summary struct {
	Period             string             `json:"period"`
	From               string             `json:"from"`
	To                 string             `json:"to"`
	WorkoutsCompleted  int                `json:"workouts_completed"`
	CaloriesBurned     float64            `json:"total_calories_burned"`
	CaloriesConsumed   float64            `json:"total_calories_consumed"`
	CalorieDeficit     float64            `json:"calorie_deficit"`
	AvgWorkoutDuration float64            `json:"avg_workout_duration_minutes"`
	DailyCalories      []DailyCalories    `json:"daily_calories"`
	MuscleFocus        map[string]float64 `json:"muscle_focus_percent"`
	Goals              []GoalProgress     `json:"goals"`
	Nutrition          Nutrition          `json:"nutrition"`
}

type Service interface {
	Summary(ctx context.Context, userID, period string) (*Summary, error)
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
	workouts workoutStore
	meals    mealStore
	goals    goalStore
}

type ServiceDeps struct {
	WorkoutRepo workoutStore
	MealRepo    mealStore
	GoalRepo    goalStore
}

func NewService(deps ServiceDeps) Service {
	return &service{workouts: deps.WorkoutRepo, meals: deps.MealRepo, goals: deps.GoalRepo}
}

// Summary aggregates the user's activity over a trailing window ending today.
// Only completed workouts count toward burned calories and durations.
func (s *service) Summary(ctx context.Context, userID, period string) (*Summary, error) {
	from, to, err := periodWindow(period, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	workouts, err := s.workouts.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.ListByUser(ctx, userID, domain.GoalActive)
	if err != nil {
		return nil, err
	}

	out := &Summary{
		Period:      period,
		From:        from,
		To:          to,
		MuscleFocus: map[string]float64{},
	}

	daily := map[string]*DailyCalories{}
	day := func(date string) *DailyCalories {
		if d, ok := daily[date]; ok {
			return d
		}
		d := &DailyCalories{Date: date}
		daily[date] = d
		return d
	}

	muscleCounts := map[string]int{}
	totalEntries := 0
	totalDuration := 0
	for _, w := range workouts {
		if w.Status != domain.WorkoutCompleted {
			continue
		}
		out.WorkoutsCompleted++
		out.CaloriesBurned += w.CaloriesBurned
		totalDuration += w.DurationMin
		day(w.WorkoutDate).Burned += w.CaloriesBurned
		for _, e := range w.Exercises {
			if e.MuscleGroup == "" {
				continue
			}
			muscleCounts[e.MuscleGroup]++
			totalEntries++
		}
	}
	if out.WorkoutsCompleted > 0 {
		out.AvgWorkoutDuration = float64(totalDuration) / float64(out.WorkoutsCompleted)
	}
	for group, n := range muscleCounts {
		out.MuscleFocus[group] = 100 * float64(n) / float64(totalEntries)
	}

	for _, m := range meals {
		out.CaloriesConsumed += m.TotalCalories
		day(m.MealDate).Consumed += m.TotalCalories
		out.Nutrition.ProteinG += m.ProteinG
		out.Nutrition.CarbsG += m.CarbsG
		out.Nutrition.FatsG += m.FatsG
	}
	out.CalorieDeficit = out.CaloriesBurned - out.CaloriesConsumed
	fillMacroPercents(&out.Nutrition)

	out.DailyCalories = make([]DailyCalories, 0, len(daily))
	for _, d := range daily {
		out.DailyCalories = append(out.DailyCalories, *d)
	}
	sort.Slice(out.DailyCalories, func(i, j int) bool {
		return out.DailyCalories[i].Date < out.DailyCalories[j].Date
	})

	out.Goals = make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		percent := 0.0
		if g.TargetValue > 0 {
			percent = 100 * g.CurrentProgress / g.TargetValue
			if percent > 100 {
				percent = 100
			}
		}
		out.Goals = append(out.Goals, GoalProgress{
			GoalID:     g.GoalID,
			GoalType:   g.GoalType,
			TargetDate: g.TargetDate,
			Percent:    percent,
			Status:     g.Status,
		})
	}

	return out, nil
}

// fillMacroPercents converts macro grams to their share of total calories,
// with protein and carbs at 4 kcal/g and fat at 9.
func fillMacroPercents(n *Nutrition) {
	proteinCal := n.ProteinG * 4
	carbsCal := n.CarbsG * 4
	fatsCal := n.FatsG * 9
	total := proteinCal + carbsCal + fatsCal
	if total == 0 {
		return
	}
	n.ProteinPercent = 100 * proteinCal / total
	n.CarbsPercent = 100 * carbsCal / total
	n.FatsPercent = 100 * fatsCal / total
}

func periodWindow(period string, now time.Time) (string, string, error) {
	to := now.Format("2006-01-02")
	switch period {
	case "", PeriodWeek:
		return now.AddDate(0, 0, -6).Format("2006-01-02"), to, nil
	case PeriodMonth:
		return now.AddDate(0, -1, 1).Format("2006-01-02"), to, nil
	case PeriodYear:
		return now.AddDate(-1, 0, 1).Format("2006-01-02"), to, nil
	default:
		return "", "", fmt.Errorf("period must be week, month or year: %w", domain.ErrBadRequest)
	}
}
