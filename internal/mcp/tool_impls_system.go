package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// The system tools mirror the fleet dispatcher's error style: problems are
// reported as result text so the client never sees a failed call for an
// expected condition like an unreadable directory.

func (s *Server) handleEcho(ctx context.Context, params map[string]interface{}) (string, error) {
	return stringParam(params, "message"), nil
}

func (s *Server) handlePwd(ctx context.Context, params map[string]interface{}) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Sprintf("Failed to get cwd: %v", err), nil
	}
	return dir, nil
}

func (s *Server) handleLs(ctx context.Context, params map[string]interface{}) (string, error) {
	dir := stringParam(params, "path")
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf("Failed to list %s: %v", dir, err), nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return strings.Join(names, "\n"), nil
}

// handlePlayer drives an MPRIS player through playerctl.
func (s *Server) handlePlayer(ctx context.Context, params map[string]interface{}) (string, error) {
	action := stringParam(params, "action")

	var out string
	var err error
	switch action {
	case "play", "pause", "next", "previous":
		out, err = s.playerctl(ctx, action)
	case "play_pause":
		out, err = s.playerctl(ctx, "play-pause")
	case "status":
		// Both probes are best effort; an unreachable player just
		// yields empty fields.
		status, _ := s.playerctl(ctx, "status")
		metadata, _ := s.playerctl(ctx, "metadata", "--format", "{{ artist }} - {{ title }}")
		return strings.TrimSpace(status) + "\n" + strings.TrimSpace(metadata), nil
	default:
		return fmt.Sprintf("Unknown action '%s'. Use: play, pause, play_pause, next, previous, status", action), nil
	}

	if err != nil {
		return err.Error(), nil
	}
	return out, nil
}

func (s *Server) playerctl(ctx context.Context, args ...string) (string, error) {
	full := append([]string{"--player", s.player}, args...)
	res, err := s.exec.Run(ctx, "", "playerctl", full...)
	if err != nil {
		return "", fmt.Errorf("Failed to run playerctl: %v", err)
	}
	if !res.Success() {
		return "", fmt.Errorf("playerctl error: %s", strings.TrimSpace(string(res.Stderr)))
	}
	return string(res.Stdout), nil
}
