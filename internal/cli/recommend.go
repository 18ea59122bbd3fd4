package cli

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"moodvibe/internal/models"
	"moodvibe/internal/recommend"
	"moodvibe/pkg/utils"
)

// addRecommendCommands adds the recommendation command.
func addRecommendCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newRecommendCmd(app))
}

func newRecommendCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <mood>",
		Short: "Suggest music, movies and activities for a mood",
		Long: `Suggest music, movies, activities and a quote for a mood.

By default suggestions come from the built-in catalog. With --live, music is
fetched from Spotify and movies from TMDB when credentials are configured;
any provider that fails falls back to the catalog.`,
		Example: `  moodvibe recommend calm
  moodvibe recommend sad --live
  moodvibe recommend happy --random 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			mood, err := models.ParseMood(args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			live, _ := cmd.Flags().GetBool("live")
			if !cmd.Flags().Changed("live") {
				live = app.Config.Recommendations.Live
			}
			count, _ := cmd.Flags().GetInt("random")
			seed, _ := cmd.Flags().GetInt64("seed")

			var result recommend.Result
			switch {
			case count > 0:
				var rng *rand.Rand
				if seed != 0 {
					rng = rand.New(rand.NewSource(seed))
				}
				result, err = app.Recommender.Random(mood, count, rng)
			case live:
				if !app.Config.HasSpotify() && !app.Config.HasTMDB() {
					output.Warning("No Spotify or TMDB credentials configured, using built-in suggestions.")
				}
				timeout := app.Config.Recommendations.Timeout + 5*time.Second
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				result, err = app.Recommender.Live(ctx, mood)
			default:
				result, err = app.Recommender.Static(mood)
			}
			if err != nil {
				output.Error("Failed to get recommendations: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			printRecommendations(output, mood, result)
			return nil
		},
	}

	cmd.Flags().Bool("live", false, "Fetch music and movies from Spotify and TMDB")
	cmd.Flags().Int("random", 0, "Pick N random items per list from the catalog")
	cmd.Flags().Int64("seed", 0, "Random seed for --random (0 = time based)")
	cmd.MarkFlagsMutuallyExclusive("live", "random")

	return cmd
}

func printRecommendations(output *Output, mood models.Mood, r recommend.Result) {
	output.Bold("%s Recommendations for %s", mood.Emoji(), utils.Capitalize(string(mood)))
	output.Println()

	output.Bold("Music")
	table := NewTable(output, "Title", "Artist", "Album", "Length")
	for _, t := range r.Music {
		table.AddRow(t.Title, t.Artist, t.Album, fmt.Sprintf("%d:%02d", t.DurationSeconds/60, t.DurationSeconds%60))
	}
	table.Render()
	output.Dim("Source: %s", r.MusicSource)
	output.Println()

	output.Bold("Movies")
	table = NewTable(output, "Title", "Year", "Rating", "Genres", "Platforms")
	for _, m := range r.Movies {
		table.AddRow(m.Title, fmt.Sprintf("%d", m.Year), fmt.Sprintf("%.1f", m.Rating),
			FormatList(m.Genres), FormatList(m.Platforms))
	}
	table.Render()
	output.Dim("Source: %s", r.MovieSource)
	output.Println()

	output.Bold("Activities")
	for _, a := range r.Activities {
		output.Printf("  • %s\n", a)
	}

	if len(r.Quotes) > 0 {
		output.Println()
		output.Info("“%s”", r.Quotes[0])
	}
}
