// Package derive computes the values the journal derives from raw entries:
// health scores and suggestions, budget figures and advice, and statistics.
package derive

import (
	"math"

	"moodvibe/internal/models"
)

const (
	// ExerciseTargetMinutes is the duration that earns the full exercise score.
	ExerciseTargetMinutes = 30
	// MaxExerciseScore is the exercise component ceiling.
	MaxExerciseScore = 20.0

	MinRating     = 1
	MaxRating     = 10
	DefaultRating = 5

	MinHealthScore = 0
	MaxHealthScore = 100
)

// Suggestion texts, in the order they are evaluated.
const (
	SuggestMoreExercise  = "Try to get at least 15-30 minutes of physical activity today"
	SuggestKeepExercise  = "Great job on your exercise routine! Keep it up!"
	SuggestSleep         = "Consider improving your sleep routine - aim for 7-9 hours"
	SuggestEnergy        = "Try some light exercise or a healthy snack to boost energy"
	SuggestStress        = "Practice deep breathing or meditation to manage stress"
	SuggestNutrition     = "Focus on eating more fruits, vegetables, and whole foods"
	SuggestHydration     = "Make sure to drink plenty of water throughout the day"
	SuggestPain          = "Consider gentle stretching or consult a healthcare provider"
	SuggestExcellentDay  = "Excellent health day! You're doing great!"
	SuggestGoodDay       = "Good health day! Small improvements can make a big difference"
	SuggestOneSmallThing = "Focus on one small health improvement today"
)

// ClampRating bounds a rating to [1,10]. Zero means "not answered" and maps
// to the default rating.
func ClampRating(v int) int {
	if v == 0 {
		return DefaultRating
	}
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// NormalizeQuestions applies ClampRating to every rating.
func NormalizeQuestions(q models.HealthQuestions) models.HealthQuestions {
	return models.HealthQuestions{
		Sleep:     ClampRating(q.Sleep),
		Energy:    ClampRating(q.Energy),
		Stress:    ClampRating(q.Stress),
		Nutrition: ClampRating(q.Nutrition),
		Hydration: ClampRating(q.Hydration),
		Pain:      ClampRating(q.Pain),
	}
}

// ExerciseScore returns min(duration/30*20, 20); negative durations score 0.
func ExerciseScore(durationMinutes int) float64 {
	if durationMinutes <= 0 {
		return 0
	}
	return math.Min(float64(durationMinutes)/ExerciseTargetMinutes*MaxExerciseScore, MaxExerciseScore)
}

// QuestionAverage returns the mean of the six ratings.
func QuestionAverage(q models.HealthQuestions) float64 {
	values := q.Values()
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// HealthScore returns round(exerciseScore + questionAverage) clamped to [0,100].
func HealthScore(durationMinutes int, q models.HealthQuestions) int {
	score := int(math.Round(ExerciseScore(durationMinutes) + QuestionAverage(q)))
	if score < MinHealthScore {
		return MinHealthScore
	}
	if score > MaxHealthScore {
		return MaxHealthScore
	}
	return score
}

// Suggestions returns the advisory list for a day. Each check is independent
// and the output order matches the check order.
func Suggestions(durationMinutes int, q models.HealthQuestions, score int) []string {
	var out []string

	if durationMinutes < 15 {
		out = append(out, SuggestMoreExercise)
	} else if durationMinutes >= ExerciseTargetMinutes {
		out = append(out, SuggestKeepExercise)
	}

	if q.Sleep < 6 {
		out = append(out, SuggestSleep)
	}
	if q.Energy < 6 {
		out = append(out, SuggestEnergy)
	}
	if q.Stress > 7 {
		out = append(out, SuggestStress)
	}
	if q.Nutrition < 6 {
		out = append(out, SuggestNutrition)
	}
	if q.Hydration < 6 {
		out = append(out, SuggestHydration)
	}
	if q.Pain < 6 {
		out = append(out, SuggestPain)
	}

	switch {
	case score >= 80:
		out = append(out, SuggestExcellentDay)
	case score >= 60:
		out = append(out, SuggestGoodDay)
	default:
		out = append(out, SuggestOneSmallThing)
	}

	return out
}

// DeriveHealth fills the derived fields of e after normalising its inputs.
func DeriveHealth(e *models.HealthEntry) {
	if e.Exercise.Duration < 0 {
		e.Exercise.Duration = 0
	}
	if e.Exercise.Intensity == "" {
		e.Exercise.Intensity = models.IntensityModerate
	}
	if e.Exercise.Activities == nil {
		e.Exercise.Activities = []string{}
	}
	e.HealthQuestions = NormalizeQuestions(e.HealthQuestions)
	e.OverallHealthScore = HealthScore(e.Exercise.Duration, e.HealthQuestions)
	e.Suggestions = Suggestions(e.Exercise.Duration, e.HealthQuestions, e.OverallHealthScore)
}
