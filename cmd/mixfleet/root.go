package main

import (
	"mixfleet/internal/version"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mixfleet",
	Short: "mixfleet - Elixir project fleet maintenance",
	Long: `mixfleet keeps a registry of local Elixir projects and runs batch
maintenance across all of them at once: dependency updates, outdated checks,
git pull/push/status, and project cleanup.

It is primarily used as a local MCP server (mixfleet mcp), but every fleet
action is also available directly from the command line (mixfleet fleet).`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("mixfleet version {{.Version}}\n")
}
