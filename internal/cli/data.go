package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"moodvibe/internal/journal"
	"moodvibe/internal/report"
)

// addExportCommands adds the report export command.
func addExportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExportCmd(app))
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <mood|health|budget|combined|all>",
		Short: "Export journal reports",
		Long: `Write readable reports of the journal to files named after today's date,
e.g. mood-journal-2024-06-01.txt.

Formats: text (all kinds), csv (mood, health, budget), json (all kinds).
"all" exports every kind the format supports.`,
		Example: `  moodvibe export combined
  moodvibe export all --dir ~/journal --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			dir, _ := cmd.Flags().GetString("dir")
			if !cmd.Flags().Changed("dir") {
				dir = app.Config.Export.Dir
			}
			formatName, _ := cmd.Flags().GetString("format")
			if !cmd.Flags().Changed("format") {
				formatName = app.Config.Export.Format
			}
			format, err := report.ParseFormat(formatName)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			var kinds []report.Kind
			if strings.EqualFold(args[0], "all") {
				for _, k := range report.AllKinds {
					if format == report.FormatCSV && k == report.KindCombined {
						continue
					}
					kinds = append(kinds, k)
				}
			} else {
				k, err := report.ParseKind(args[0])
				if err != nil {
					output.Error("%v", err)
					return err
				}
				kinds = []report.Kind{k}
			}

			snap := app.Journal.Snapshot(ctx)
			generated := app.Journal.Now()

			var paths []string
			for _, k := range kinds {
				path, err := report.WriteFile(dir, k, format, snap, generated)
				if err != nil {
					output.Error("Failed to export %s: %v", k, err)
					return err
				}
				app.Logger.Info().Str("kind", string(k)).Str("path", path).Msg("Report exported")
				paths = append(paths, path)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"files": paths})
			}
			for _, p := range paths {
				output.Success("✓ Exported %s", p)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", ".", "Directory to write files to")
	cmd.Flags().String("format", "text", "Export format (text, csv, json)")

	return cmd
}

// addDataCommands adds snapshot import and export commands.
func addDataCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Import and export journal data",
		Long:  "Move the whole journal in and out as JSON.",
	}

	cmd.AddCommand(newDataImportCmd(app))
	cmd.AddCommand(newDataExportJSONCmd(app))

	rootCmd.AddCommand(cmd)
}

func newDataImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON snapshot",
		Long: `Import a JSON snapshot written by 'data export-json', or a browser
localStorage dump with the moodvibe-* keys. Entries already present for a day
are replaced. Invalid entries are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			data, err := os.ReadFile(args[0])
			if err != nil {
				output.Error("Failed to read %s: %v", args[0], err)
				return err
			}

			snap, err := journal.DecodeImport(data, app.Logger)
			if err != nil {
				output.Error("Failed to parse %s: %v", args[0], err)
				return err
			}

			result, err := app.Journal.Import(ctx, snap)
			if err != nil {
				output.Error("Import failed: %v", err)
				return err
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			output.Success("✓ Imported %d moods, %d health, %d budgets, %d investments",
				result.Moods, result.Health, result.Budgets, result.Investments)
			if result.Skipped > 0 {
				output.Warning("Skipped %d invalid entries (see log for details)", result.Skipped)
			}
			return nil
		},
	}
}

func newDataExportJSONCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export-json <file>",
		Short: "Export the whole journal as a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			snap := app.Journal.Snapshot(ctx)
			var buf bytes.Buffer
			if err := report.WriteJSON(&buf, report.KindCombined, snap); err != nil {
				output.Error("Failed to encode snapshot: %v", err)
				return err
			}
			if err := os.WriteFile(args[0], buf.Bytes(), 0644); err != nil {
				output.Error("Failed to write %s: %v", args[0], err)
				return fmt.Errorf("writing snapshot: %w", err)
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"file": args[0]})
			}
			output.Success("✓ Journal written to %s", args[0])
			return nil
		},
	}
}
