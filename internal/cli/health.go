package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moodvibe/internal/derive"
	"moodvibe/internal/errors"
	"moodvibe/internal/models"
	"moodvibe/pkg/utils"
)

// addHealthCommands adds health tracking commands.
func addHealthCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Health tracking",
		Long:  "Record exercise and daily wellbeing ratings and get a health score with suggestions.",
	}

	cmd.AddCommand(newHealthLogCmd(app))
	cmd.AddCommand(newHealthShowCmd(app))
	cmd.AddCommand(newHealthListCmd(app))
	cmd.AddCommand(newHealthStatsCmd(app))

	rootCmd.AddCommand(cmd)
}

func newHealthLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a health check-in",
		Long: `Record exercise and 1-10 ratings for a day. Ratings outside 1-10 are clamped.
For pain, 10 means no pain. Logging again for the same day replaces the entry.`,
		Example: `  moodvibe health log --duration 30 --type Running --intensity high --sleep 7 --energy 8
  moodvibe health log --date 2024-05-01 --activity warmup --activity stretch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			duration, _ := cmd.Flags().GetInt("duration")
			exType, _ := cmd.Flags().GetString("type")
			intensity, _ := cmd.Flags().GetString("intensity")
			activities, _ := cmd.Flags().GetStringArray("activity")

			if duration < 0 {
				err := errors.NewValidationError("duration", duration, "must not be negative")
				output.Error("%v", err)
				return err
			}

			q := models.HealthQuestions{}
			for name, dst := range map[string]*int{
				"sleep":     &q.Sleep,
				"energy":    &q.Energy,
				"stress":    &q.Stress,
				"nutrition": &q.Nutrition,
				"hydration": &q.Hydration,
				"pain":      &q.Pain,
			} {
				*dst, _ = cmd.Flags().GetInt(name)
			}
			if activities == nil {
				activities = []string{}
			}

			entry, err := app.Journal.SaveHealth(ctx, models.HealthEntry{
				Date: date,
				Exercise: models.Exercise{
					Duration:   duration,
					Type:       exType,
					Intensity:  models.Intensity(intensity),
					Activities: activities,
				},
				HealthQuestions: q,
			})
			if err != nil {
				output.Error("Failed to save health entry: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ Health check-in saved for %s", utils.FormatLongDate(entry.Date))
			output.Printf("  Health Score: %s\n", output.ScoreColor(entry.OverallHealthScore, FormatScore(entry.OverallHealthScore)))
			printSuggestions(output, entry.Suggestions)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().Int("duration", 0, "Exercise duration in minutes")
	cmd.Flags().String("type", "", "Exercise type (e.g. Running, Yoga)")
	cmd.Flags().String("intensity", "moderate", "Exercise intensity (low, moderate, high)")
	cmd.Flags().StringArray("activity", nil, "Activity performed (repeatable)")
	cmd.Flags().Int("sleep", 5, "Sleep quality (1-10)")
	cmd.Flags().Int("energy", 5, "Energy level (1-10)")
	cmd.Flags().Int("stress", 5, "Stress management (1-10)")
	cmd.Flags().Int("nutrition", 5, "Nutrition quality (1-10)")
	cmd.Flags().Int("hydration", 5, "Hydration (1-10)")
	cmd.Flags().Int("pain", 5, "Pain level, 10 = no pain (1-10)")

	return cmd
}

func newHealthShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the health entry for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			entry, err := app.Journal.GetHealth(ctx, date)
			if errors.Is(err, errors.ErrDataNotFound) {
				if output.IsJSON() {
					return output.JSON(nil)
				}
				output.Info("No health entry for this day.")
				return nil
			}
			if err != nil {
				output.Error("Failed to load health entry: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}

			q := entry.HealthQuestions
			output.Bold(utils.FormatLongDate(entry.Date))
			output.Printf("  Health Score: %s\n", output.ScoreColor(entry.OverallHealthScore, FormatScore(entry.OverallHealthScore)))
			exType := entry.Exercise.Type
			if exType == "" {
				exType = "Not specified"
			}
			output.Printf("  Exercise:     %s (%s, %s)\n", FormatDuration(entry.Exercise.Duration), exType, entry.Exercise.Intensity)
			output.Printf("  Activities:   %s\n", FormatList(entry.Exercise.Activities))
			output.Println()

			table := NewTable(output, "Sleep", "Energy", "Stress", "Nutrition", "Hydration", "Pain")
			table.AddRow(FormatRating(q.Sleep), FormatRating(q.Energy), FormatRating(q.Stress),
				FormatRating(q.Nutrition), FormatRating(q.Hydration), FormatRating(q.Pain))
			table.Render()
			printSuggestions(output, entry.Suggestions)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}

func newHealthListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List health entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")
			health := app.Journal.Health(ctx)
			dates := lastN(derive.SortedDates(health), limit)

			if output.IsJSON() {
				entries := make([]models.HealthEntry, 0, len(dates))
				for _, d := range dates {
					entries = append(entries, health[d])
				}
				return output.JSON(entries)
			}

			if len(dates) == 0 {
				output.Info("No health entries yet.")
				return nil
			}

			table := NewTable(output, "Date", "Score", "Exercise", "Type", "Intensity")
			for _, d := range dates {
				e := health[d]
				table.AddRow(d, FormatScore(e.OverallHealthScore), FormatDuration(e.Exercise.Duration),
					e.Exercise.Type, string(e.Exercise.Intensity))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Show only the most recent N entries")

	return cmd
}

func newHealthStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show health statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			stats := app.Journal.HealthStats(ctx)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Health Statistics")
			output.Printf("  Total Entries:    %d\n", stats.TotalEntries)
			output.Printf("  Total Exercise:   %d minutes\n", stats.TotalExerciseMinutes)
			output.Printf("  Average Score:    %.1f/100\n", stats.AverageScore)
			output.Printf("  Exercise Streak:  %d days\n", stats.ExerciseStreak)
			if stats.MostCommonExercise != "" {
				output.Printf("  Favourite:        %s\n", stats.MostCommonExercise)
			}
			output.Printf("  Trend:            %s\n", formatTrend(output, stats.Trend))
			if stats.TotalEntries == 0 {
				return nil
			}

			a := stats.Averages
			output.Println()
			output.Bold("Averages")
			table := NewTable(output, "Exercise", "Sleep", "Energy", "Stress", "Nutrition", "Hydration", "Pain")
			table.AddRow(
				fmt.Sprintf("%.0f min", a.Exercise),
				fmt.Sprintf("%.1f", a.Sleep),
				fmt.Sprintf("%.1f", a.Energy),
				fmt.Sprintf("%.1f", a.Stress),
				fmt.Sprintf("%.1f", a.Nutrition),
				fmt.Sprintf("%.1f", a.Hydration),
				fmt.Sprintf("%.1f", a.Pain),
			)
			table.Render()
			return nil
		},
	}
}

func formatTrend(output *Output, t derive.Trend) string {
	switch t {
	case derive.TrendImproving:
		return output.Green("↑ improving")
	case derive.TrendDeclining:
		return output.Red("↓ declining")
	default:
		return output.Yellow("→ stable")
	}
}

func printSuggestions(output *Output, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	output.Println()
	output.Bold("Suggestions")
	for _, s := range suggestions {
		output.Printf("  • %s\n", s)
	}
}
