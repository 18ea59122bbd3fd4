package derive

import (
	"sort"
	"time"

	"moodvibe/internal/models"
)

// Trend describes the direction of recent health scores.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

const (
	trendWindow    = 7
	trendThreshold = 5.0
)

// MoodStats summarises mood entries.
type MoodStats struct {
	Total             int                 `json:"total"`
	Counts            map[models.Mood]int `json:"counts"`
	MostFrequent      models.Mood         `json:"most_frequent,omitempty"`
	MostFrequentCount int                 `json:"most_frequent_count"`
	CurrentStreak     int                 `json:"current_streak"`
}

// HealthAverages holds per-field means over all health entries.
type HealthAverages struct {
	Exercise  float64 `json:"exercise"`
	Sleep     float64 `json:"sleep"`
	Energy    float64 `json:"energy"`
	Stress    float64 `json:"stress"`
	Nutrition float64 `json:"nutrition"`
	Hydration float64 `json:"hydration"`
	Pain      float64 `json:"pain"`
}

// HealthStats summarises health entries.
type HealthStats struct {
	TotalEntries         int            `json:"total_entries"`
	TotalExerciseMinutes int            `json:"total_exercise_minutes"`
	AverageScore         float64        `json:"average_score"`
	ExerciseStreak       int            `json:"exercise_streak"`
	MostCommonExercise   string         `json:"most_common_exercise,omitempty"`
	Trend                Trend          `json:"trend"`
	Averages             HealthAverages `json:"averages"`
}

// SortedDates returns the keys of m in ascending order.
func SortedDates[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// streak counts consecutive days ending today whose key is present in dates
// (sorted descending) and accepted by ok.
func streak(datesDesc []string, today time.Time, ok func(date string) bool) int {
	n := 0
	for i, d := range datesDesc {
		expected := models.DateKey(today.AddDate(0, 0, -i))
		if d != expected || !ok(d) {
			break
		}
		n++
	}
	return n
}

func reversed(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// ComputeMoodStats summarises moods as of today.
func ComputeMoodStats(entries map[string]models.MoodEntry, today time.Time) MoodStats {
	stats := MoodStats{
		Total:  len(entries),
		Counts: make(map[models.Mood]int),
	}
	for _, e := range entries {
		stats.Counts[e.Mood]++
	}
	for _, m := range models.AllMoods {
		if c := stats.Counts[m]; c > stats.MostFrequentCount {
			stats.MostFrequent = m
			stats.MostFrequentCount = c
		}
	}
	stats.CurrentStreak = streak(reversed(SortedDates(entries)), today, func(string) bool { return true })
	return stats
}

// ComputeHealthStats summarises health entries as of today.
func ComputeHealthStats(entries map[string]models.HealthEntry, today time.Time) HealthStats {
	stats := HealthStats{
		TotalEntries: len(entries),
		Trend:        TrendStable,
	}
	if len(entries) == 0 {
		return stats
	}

	n := float64(len(entries))
	var scoreSum float64
	var avg HealthAverages
	types := make(map[string]int)
	for _, e := range entries {
		stats.TotalExerciseMinutes += e.Exercise.Duration
		scoreSum += float64(e.OverallHealthScore)
		avg.Exercise += float64(e.Exercise.Duration)
		avg.Sleep += float64(e.HealthQuestions.Sleep)
		avg.Energy += float64(e.HealthQuestions.Energy)
		avg.Stress += float64(e.HealthQuestions.Stress)
		avg.Nutrition += float64(e.HealthQuestions.Nutrition)
		avg.Hydration += float64(e.HealthQuestions.Hydration)
		avg.Pain += float64(e.HealthQuestions.Pain)
		if e.Exercise.Type != "" {
			types[e.Exercise.Type]++
		}
	}
	stats.AverageScore = scoreSum / n
	stats.Averages = HealthAverages{
		Exercise:  avg.Exercise / n,
		Sleep:     avg.Sleep / n,
		Energy:    avg.Energy / n,
		Stress:    avg.Stress / n,
		Nutrition: avg.Nutrition / n,
		Hydration: avg.Hydration / n,
		Pain:      avg.Pain / n,
	}

	best := 0
	for _, t := range SortedDates(types) {
		if types[t] > best {
			stats.MostCommonExercise = t
			best = types[t]
		}
	}

	desc := reversed(SortedDates(entries))
	stats.ExerciseStreak = streak(desc, today, func(d string) bool {
		return entries[d].Exercise.Duration > 0
	})
	stats.Trend = healthTrend(entries, desc)

	return stats
}

func healthTrend(entries map[string]models.HealthEntry, desc []string) Trend {
	mean := func(keys []string) float64 {
		var sum float64
		for _, k := range keys {
			sum += float64(entries[k].OverallHealthScore)
		}
		return sum / float64(len(keys))
	}

	recent := desc[:min(trendWindow, len(desc))]
	recentAvg := mean(recent)
	olderAvg := recentAvg
	if len(desc) > trendWindow {
		olderAvg = mean(desc[trendWindow:min(2*trendWindow, len(desc))])
	}

	switch {
	case recentAvg > olderAvg+trendThreshold:
		return TrendImproving
	case recentAvg < olderAvg-trendThreshold:
		return TrendDeclining
	default:
		return TrendStable
	}
}
