package mcp

import "context"

// Tool describes a tool exposed over MCP.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler handles one tool call and returns the plain-text result.
type ToolHandler func(ctx context.Context, params map[string]interface{}) (string, error)

// GetToolDefinitions returns all tool definitions.
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "echo",
			Description: "Echo back the provided message",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"message": map[string]interface{}{
						"type":        "string",
						"description": "The message to echo back",
					},
				},
				"required": []string{"message"},
			},
		},
		{
			Name:        "pwd",
			Description: "Get the current working directory",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "ls",
			Description: "List files in the specified directory",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Directory path to list (defaults to current directory)",
					},
				},
			},
		},
		{
			Name:        "player",
			Description: "Control media playback via MPRIS (playerctl). Actions: play, pause, play_pause, next, previous, status",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"play", "pause", "play_pause", "next", "previous", "status"},
						"description": "Playback action to perform",
					},
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "elixir_projects",
			Description: "Manage Elixir projects. Actions: list, update_deps, outdated, git_pull, git_push, git_status, refresh, delete, ignore, unignore. Uses a cached project list; use 'project' to filter by name and 'path' to scan a different root.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"list", "update_deps", "outdated", "git_pull", "git_push", "git_status", "refresh", "delete", "ignore", "unignore"},
						"description": "Action to perform across the project fleet",
					},
					"project": map[string]interface{}{
						"type":        "string",
						"description": "Filter projects by name (case-insensitive substring)",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Scan this directory instead of the configured root ('~/' is expanded)",
					},
				},
				"required": []string{"action"},
			},
		},
		{
			Name:        "fleet_history",
			Description: "Show recent fleet batch runs (action, project count, failures, duration)",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"limit": map[string]interface{}{
						"type":        "number",
						"default":     20,
						"description": "Maximum number of runs to return",
					},
				},
			},
		},
	}
}

// RegisterTools registers all tool handlers.
func (s *Server) RegisterTools() {
	s.tools["echo"] = s.handleEcho
	s.tools["pwd"] = s.handlePwd
	s.tools["ls"] = s.handleLs
	s.tools["player"] = s.handlePlayer
	s.tools["elixir_projects"] = s.handleElixirProjects
	s.tools["fleet_history"] = s.handleFleetHistory
}

// stringParam extracts an optional string parameter.
func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}
