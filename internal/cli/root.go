// Package cli provides the command-line interface for the journal application.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"moodvibe/internal/cloudsync"
	"moodvibe/internal/config"
	"moodvibe/internal/journal"
	"moodvibe/internal/logging"
	"moodvibe/internal/recommend"
	"moodvibe/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Store       store.Store
	Journal     *journal.Service
	Recommender *recommend.Recommender
	Sync        *cloudsync.Client

	// journalOpts are passed to the journal service; tests pin the clock here.
	journalOpts []journal.Option
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(logger zerolog.Logger) *cobra.Command {
	return newRootCmd(&App{Logger: logger})
}

func newRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "moodvibe",
		Short: "MoodVibe - mood, health and budget journal",
		Long: `MoodVibe keeps a daily journal of your mood, health and spending.

Log one mood, one health check-in and one budget per day, track investments,
get music, movie and activity suggestions for your mood, and export
readable reports.

Use 'moodvibe help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/moodvibe)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Add all command groups
	addCoreCommands(rootCmd, app)
	addMoodCommands(rootCmd, app)
	addHealthCommands(rootCmd, app)
	addBudgetCommands(rootCmd, app)
	addRecommendCommands(rootCmd, app)
	addExportCommands(rootCmd, app)
	addDataCommands(rootCmd, app)
	addSyncCommands(rootCmd, app)

	return rootCmd
}

// init loads configuration and wires the services for the command about to
// run.
func (a *App) init(cmd *cobra.Command) error {
	configDir, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}
	a.Config = cfg

	logCfg := logging.LogConfig{
		Level:      cfg.Logging.Level,
		Console:    true,
		File:       cfg.Logging.File,
		FilePath:   cfg.LogFilePath(),
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
	}
	a.Logger = logging.NewLoggerWithConfig(logCfg)

	// Handle debug flag
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logging.SetDebugLevel()
		a.Logger = a.Logger.Level(zerolog.DebugLevel)
	}

	if !cfg.UI.ColorEnabled {
		color.NoColor = true
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	sqliteStore, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	a.Store = sqliteStore
	a.Logger.Debug().Str("path", cfg.Storage.DBPath).Msg("SQLite store initialized")

	a.Journal = journal.NewService(sqliteStore, a.Logger, a.journalOpts...)

	catalog, err := recommend.LoadCatalog()
	if err != nil {
		return err
	}
	var opts []recommend.Option
	if cfg.HasSpotify() {
		var spotifyOpts []recommend.SpotifyOption
		if cfg.Recommendations.SpotifyAuth != "" || cfg.Recommendations.SpotifyAPI != "" {
			authURL, apiURL := cfg.Recommendations.SpotifyAuth, cfg.Recommendations.SpotifyAPI
			if authURL == "" {
				authURL = recommend.DefaultSpotifyAuthURL
			}
			if apiURL == "" {
				apiURL = recommend.DefaultSpotifyAPIURL
			}
			spotifyOpts = append(spotifyOpts, recommend.WithSpotifyURLs(authURL, apiURL))
		}
		opts = append(opts, recommend.WithTrackSource(recommend.NewSpotifyClient(
			cfg.Credentials.Spotify.ClientID,
			cfg.Credentials.Spotify.ClientSecret,
			cfg.Recommendations.Timeout,
			a.Logger,
			spotifyOpts...,
		)))
		a.Logger.Debug().Msg("Spotify client initialized")
	}
	if cfg.HasTMDB() {
		opts = append(opts, recommend.WithMovieSource(recommend.NewTMDBClient(
			cfg.Credentials.TMDB.APIKey,
			cfg.Recommendations.TMDBURL,
			cfg.Recommendations.Timeout,
			a.Logger,
		)))
		a.Logger.Debug().Msg("TMDB client initialized")
	}
	a.Recommender = recommend.NewRecommender(catalog, a.Logger, opts...)

	a.Sync = cloudsync.NewClient(cloudsync.Config{
		URL:     cfg.Sync.URL,
		APIKey:  cfg.Credentials.Sync.APIKey,
		UserID:  cfg.Sync.UserID,
		Timeout: cfg.Sync.Timeout,
	}, sqliteStore, a.Logger)

	return nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	return err
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("MoodVibe v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": app.Config.Dir()})
			} else {
				output.Println(app.Config.Dir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Storage")
	output.Printf("  Database:        %s\n", cfg.Storage.DBPath)
	output.Println()

	output.Bold("Recommendations")
	output.Printf("  Live:            %v\n", cfg.Recommendations.Live)
	output.Printf("  Timeout:         %s\n", cfg.Recommendations.Timeout)
	output.Printf("  Random Count:    %d\n", cfg.Recommendations.RandomCount)
	output.Printf("  Spotify:         %s\n", configured(cfg.HasSpotify()))
	output.Printf("  TMDB:            %s\n", configured(cfg.HasTMDB()))
	output.Println()

	output.Bold("Export")
	output.Printf("  Directory:       %s\n", cfg.Export.Dir)
	output.Printf("  Format:          %s\n", cfg.Export.Format)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v\n", cfg.Logging.File)
	output.Println()

	output.Bold("Sync")
	output.Printf("  Enabled:         %v\n", cfg.Sync.Enabled)
	output.Printf("  URL:             %s\n", cfg.Sync.URL)
	output.Printf("  API Key:         %s\n", configured(cfg.Credentials.Sync.APIKey != ""))

	return nil
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
