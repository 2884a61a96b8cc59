package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mixfleet/internal/fleet"
)

// handleElixirProjects routes a tool call to the fleet dispatcher. All
// outcomes, including invalid input, come back as report text.
func (s *Server) handleElixirProjects(ctx context.Context, params map[string]interface{}) (string, error) {
	req := fleet.Request{
		Action:  stringParam(params, "action"),
		Project: stringParam(params, "project"),
		Path:    stringParam(params, "path"),
	}
	return s.dispatcher.Dispatch(ctx, req), nil
}

// handleFleetHistory renders the most recent batch runs, newest first.
func (s *Server) handleFleetHistory(ctx context.Context, params map[string]interface{}) (string, error) {
	if s.history == nil {
		return "Run history is disabled", nil
	}

	limit := 20
	if v, ok := params["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	runs, err := s.history.Recent(limit)
	if err != nil {
		return "", fmt.Errorf("load run history: %w", err)
	}
	if len(runs) == 0 {
		return "No fleet runs recorded yet", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d fleet runs:\n", len(runs))
	for _, r := range runs {
		outcome := "ok"
		if r.Failures > 0 {
			outcome = fmt.Sprintf("%d failed", r.Failures)
		}
		fmt.Fprintf(&b, "%s  %-12s %d projects, %s, took %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Action, r.Projects, outcome,
			r.Duration.Round(time.Millisecond))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
