package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"moodvibe/internal/errors"
	"moodvibe/pkg/utils"
)

// addSyncCommands adds cloud sync commands.
func addSyncCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Cloud sync",
		Long:  "Push mood entries to a Supabase-compatible endpoint configured under [sync].",
	}

	cmd.AddCommand(newSyncPushCmd(app))
	cmd.AddCommand(newSyncStatusCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSyncPushCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push mood entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if !app.Config.Sync.Enabled {
				output.Warning("Sync is disabled. Set sync.enabled = true in config.toml.")
				return errors.ErrSyncDisabled
			}

			n, err := app.Sync.PushMoods(ctx, app.Journal.Moods(ctx))
			if err != nil {
				output.Error("Sync failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]int{"pushed": n})
			}
			output.Success("✓ Pushed %d mood entries", n)
			return nil
		},
	}
}

func newSyncStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show sync status",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			last := app.Sync.LastPush()

			if output.IsJSON() {
				status := map[string]interface{}{
					"enabled":    app.Config.Sync.Enabled,
					"configured": app.Sync.IsEnabled(),
				}
				if !last.IsZero() {
					status["last_push"] = last
				}
				output.JSON(status)
				return
			}

			output.Bold("Sync Status")
			output.Printf("  Enabled:    %v\n", app.Config.Sync.Enabled)
			output.Printf("  Configured: %v\n", app.Sync.IsEnabled())
			if last.IsZero() {
				output.Printf("  Last Push:  never\n")
			} else {
				output.Printf("  Last Push:  %s\n", utils.FormatTimestamp(last))
			}
		},
	}
}
