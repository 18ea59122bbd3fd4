package cli

import (
	"fmt"
	"strings"

	"moodvibe/internal/models"
	"moodvibe/pkg/utils"
)

// FormatMood renders a mood with its emoji, e.g. "😊 Happy".
func FormatMood(e models.MoodEntry) string {
	return fmt.Sprintf("%s %s", e.Emoji, utils.Capitalize(string(e.Mood)))
}

// FormatScore renders a health score as "N/100".
func FormatScore(score int) string {
	return fmt.Sprintf("%d/100", score)
}

// FormatRating renders a 1-10 rating.
func FormatRating(v int) string {
	return fmt.Sprintf("%d/10", v)
}

// FormatDuration renders exercise minutes.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}

// FormatGood renders the investment quality flag.
func FormatGood(good bool) string {
	if good {
		return "✓"
	}
	return "✗"
}

// FormatList joins items for a single table cell.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
