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

// addMoodCommands adds mood journal commands.
func addMoodCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Mood journal",
		Long:  "Record how you feel each day and review your mood history.",
	}

	cmd.AddCommand(newMoodLogCmd(app))
	cmd.AddCommand(newMoodShowCmd(app))
	cmd.AddCommand(newMoodListCmd(app))
	cmd.AddCommand(newMoodStatsCmd(app))

	rootCmd.AddCommand(cmd)
}

func newMoodLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <mood>",
		Short: "Record today's mood",
		Long: `Record the mood for a day. Logging again for the same day replaces the entry.

Moods: happy, calm, energetic, sad, excited, peaceful, anxious, grateful`,
		Example: `  moodvibe mood log happy --note "Walked in the park"
  moodvibe mood log grateful --date 2024-05-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			note, _ := cmd.Flags().GetString("note")

			entry, err := app.Journal.SaveMood(ctx, date, args[0], note)
			if err != nil {
				output.Error("Failed to save mood: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("✓ %s logged for %s", FormatMood(*entry), utils.FormatLongDate(entry.Date))
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().String("note", "", "What happened today")

	return cmd
}

func newMoodShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the mood for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			date, _ := cmd.Flags().GetString("date")
			entry, err := app.Journal.GetMood(ctx, date)
			if errors.Is(err, errors.ErrDataNotFound) {
				if output.IsJSON() {
					return output.JSON(nil)
				}
				output.Info("No mood recorded for this day.")
				return nil
			}
			if err != nil {
				output.Error("Failed to load mood: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Bold(utils.FormatLongDate(entry.Date))
			output.Printf("  Mood:        %s\n", FormatMood(*entry))
			if entry.Description != "" {
				output.Printf("  Description: %s\n", entry.Description)
			}
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}

func newMoodListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mood entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			limit, _ := cmd.Flags().GetInt("limit")
			moods := app.Journal.Moods(ctx)
			dates := lastN(derive.SortedDates(moods), limit)

			if output.IsJSON() {
				entries := make([]models.MoodEntry, 0, len(dates))
				for _, d := range dates {
					entries = append(entries, moods[d])
				}
				return output.JSON(entries)
			}

			if len(dates) == 0 {
				output.Info("No mood entries yet.")
				output.Dim("Tip: start with 'moodvibe mood log <mood>'.")
				return nil
			}

			table := NewTable(output, "Date", "Mood", "Description")
			for _, d := range dates {
				e := moods[d]
				table.AddRow(d, FormatMood(e), utils.TruncateString(e.Description, 50))
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "Show only the most recent N entries")

	return cmd
}

func newMoodStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mood statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			stats := app.Journal.MoodStats(ctx)
			if output.IsJSON() {
				return output.JSON(stats)
			}

			output.Bold("Mood Statistics")
			output.Printf("  Total Entries:  %d\n", stats.Total)
			output.Printf("  Current Streak: %d days\n", stats.CurrentStreak)
			if stats.MostFrequent != "" {
				output.Printf("  Most Frequent:  %s %s (%d)\n",
					stats.MostFrequent.Emoji(), utils.Capitalize(string(stats.MostFrequent)), stats.MostFrequentCount)
			}
			if stats.Total == 0 {
				return nil
			}

			output.Println()
			table := NewTable(output, "Mood", "Entries", "Share")
			for _, m := range models.AllMoods {
				n := stats.Counts[m]
				if n == 0 {
					continue
				}
				table.AddRow(
					fmt.Sprintf("%s %s", m.Emoji(), utils.Capitalize(string(m))),
					fmt.Sprintf("%d", n),
					utils.FormatPercent(float64(n)/float64(stats.Total)*100),
				)
			}
			table.Render()
			return nil
		},
	}
}

// lastN returns the final n items of s, or all of s when n <= 0.
func lastN(s []string, n int) []string {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
