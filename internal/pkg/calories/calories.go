// Package calories estimates energy expenditure per minute for an exercise,
// using fixed per-type/per-difficulty figures adjusted by muscle group.
package calories

import "strings"

var perMinute = map[string]map[string]float64{
	"strength":    {"beginner": 4.0, "intermediate": 6.0, "advanced": 8.0},
	"cardio":      {"beginner": 6.0, "intermediate": 10.0, "advanced": 15.0},
	"flexibility": {"beginner": 2.5, "intermediate": 3.5, "advanced": 5.0},
	"hiit":        {"beginner": 10.0, "intermediate": 14.0, "advanced": 18.0},
	"mixed":       {"beginner": 5.0, "intermediate": 7.0, "advanced": 9.0},
}

// Larger muscle groups burn more for the same effort.
var muscleMultiplier = map[string]float64{
	"chest":      1.0,
	"back":       1.05,
	"legs":       1.2,
	"shoulders":  0.95,
	"biceps":     0.85,
	"triceps":    0.85,
	"forearms":   0.8,
	"core":       1.1,
	"glutes":     1.15,
	"hamstrings": 1.15,
	"quadriceps": 1.15,
	"calves":     0.9,
	"full_body":  1.3,
	"cardio":     1.0,
}

// PerMinute returns the estimated calories burned per minute. Unknown exercise
// types fall back to "mixed" and unknown difficulties to "intermediate", so the
// result is always positive.
func PerMinute(exerciseType, difficulty, muscleGroup string) float64 {
	byDifficulty, ok := perMinute[strings.ToLower(strings.TrimSpace(exerciseType))]
	if !ok {
		byDifficulty = perMinute["mixed"]
	}
	rate, ok := byDifficulty[strings.ToLower(strings.TrimSpace(difficulty))]
	if !ok {
		rate = byDifficulty["intermediate"]
	}
	if m, ok := muscleMultiplier[strings.ToLower(strings.TrimSpace(muscleGroup))]; ok {
		rate *= m
	}
	return rate
}

// ForDuration returns total estimated calories for a duration in seconds.
func ForDuration(exerciseType, difficulty, muscleGroup string, durationSec int) float64 {
	if durationSec <= 0 {
		return 0
	}
	return PerMinute(exerciseType, difficulty, muscleGroup) * float64(durationSec) / 60.0
}
