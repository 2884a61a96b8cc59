package main

import (
	"fmt"
	"strings"

	"mixfleet/internal/config"
	"mixfleet/internal/fleet"

	"github.com/spf13/cobra"
)

var (
	fleetProject string
	fleetPath    string
)

var fleetCmd = &cobra.Command{
	Use:   "fleet <action>",
	Short: "Run a fleet action across all projects",
	Long: fmt.Sprintf(`Run one batch action across the project fleet.

Actions: %s

Examples:
  mixfleet fleet list
  mixfleet fleet outdated --project billing
  mixfleet fleet git_status --path ~/src/experiments`,
		strings.Join(fleet.ActionNames(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: runFleet,
}

func init() {
	rootCmd.AddCommand(fleetCmd)
	fleetCmd.Flags().StringVar(&fleetProject, "project", "",
		"Filter projects by name (case-insensitive substring)")
	fleetCmd.Flags().StringVar(&fleetPath, "path", "",
		"Scan this directory instead of the configured root")
}

func runFleet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	dispatcher, store, err := buildDispatcher(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	out := dispatcher.Dispatch(cmd.Context(), fleet.Request{
		Action:  args[0],
		Project: fleetProject,
		Path:    fleetPath,
	})
	fmt.Println(out)
	return nil
}
