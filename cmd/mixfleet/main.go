package main

import (
	"os"

	"mixfleet/internal/logging"
)

func main() {
	logger := logging.New(logging.Config{
		Format: logging.HumanFormat,
		Level:  "info",
	})

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command execution failed", "error", err.Error())
		os.Exit(1)
	}
}
