package main

import (
	"fmt"
	"time"

	"mixfleet/internal/config"
	"mixfleet/internal/history"
	"mixfleet/internal/paths"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent fleet batch runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.History.Enabled {
		fmt.Println("Run history is disabled in the configuration")
		return nil
	}
	logger := newLogger(cfg)

	dbPath, err := paths.HistoryDBFile()
	if err != nil {
		return err
	}
	store, err := history.Open(dbPath, logger)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("load run history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No fleet runs recorded yet")
		return nil
	}

	for _, r := range runs {
		outcome := "ok"
		if r.Failures > 0 {
			outcome = fmt.Sprintf("%d failed", r.Failures)
		}
		fmt.Printf("%s  %-12s %d projects, %s, took %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Action, r.Projects, outcome,
			r.Duration.Round(time.Millisecond))
	}
	return nil
}
