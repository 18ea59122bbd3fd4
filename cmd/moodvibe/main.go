package main

import (
	"os"

	"github.com/fatih/color"

	"moodvibe/internal/cli"
	"moodvibe/internal/logging"
)

func main() {
	// Until the config is loaded, log to the console only.
	logCfg := logging.DefaultLogConfig()
	logCfg.File = false
	logger := logging.NewLoggerWithConfig(logCfg)

	rootCmd := cli.NewRootCmd(logger)
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
