package main

import (
	"mixfleet/internal/config"
	"mixfleet/internal/execx"
	"mixfleet/internal/mcp"
	"mixfleet/internal/version"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates via stdio using JSON-RPC 2.0 and exposes the
following tools:
  - elixir_projects: batch operations across the project fleet
  - fleet_history:   recent batch runs
  - echo, pwd, ls:   small system helpers
  - player:          MPRIS playback control via playerctl

This command is typically invoked by MCP clients and not directly by users.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
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

	server := mcp.NewServer(mcp.Options{
		Version:    version.Version,
		Logger:     logger,
		Dispatcher: dispatcher,
		History:    store,
		Exec:       execx.OSRunner{},
		Player:     cfg.Player,
	})

	if err := server.Start(); err != nil {
		logger.Error("mcp server error", "error", err.Error())
		return err
	}
	return nil
}
