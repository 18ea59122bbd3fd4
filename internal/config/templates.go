package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# MoodVibe Configuration

[storage]
# SQLite database path (defaults to moodvibe.db in this directory)
db_path = ""

[ui]
# Enable colored output
color_enabled = true

[recommendations]
# Query Spotify and TMDB instead of the built-in catalog
live = false
# Timeout for provider requests
timeout = "10s"
# Items per list for "recommend --random"
random_count = 3

[export]
# Directory export files are written to
dir = "."
# Default format: text, csv, json
format = "text"

[logging]
# Log level: debug, info, warn, error
level = "warn"
# Write rotating log file under logs/
file = true
max_size = 10
max_backups = 3
max_age = 30

[sync]
# Push mood entries to a Supabase-compatible REST endpoint
enabled = false
url = ""
user_id = ""
timeout = "10s"
`

const credentialsTemplate = `# MoodVibe Credentials
# Keep this file private (permissions 0600)

[spotify]
client_id = ""
client_secret = ""

[tmdb]
api_key = ""

[sync]
api_key = ""
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}
	return nil
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}
	return nil
}
