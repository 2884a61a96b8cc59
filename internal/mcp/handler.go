package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// handleMessage processes an incoming message and returns a response, or
// nil when none is required.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}
	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
}

func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("handling request", "method", msg.Method, "id", msg.Id)

	switch msg.Method {
	case "initialize":
		return s.handleInitializeRequest(msg)
	case "tools/list":
		return s.handleListToolsRequest(msg)
	case "tools/call":
		return s.handleCallToolRequest(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized")
	default:
		s.logger.Debug("unknown notification", "method", msg.Method)
	}
}

func (s *Server) handleInitializeRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		params = make(map[string]interface{})
	}

	result, err := s.handleInitialize(params)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}
	return NewResultMessage(msg.Id, result)
}

func (s *Server) handleListToolsRequest(msg *Message) *Message {
	return NewResultMessage(msg.Id, map[string]interface{}{
		"tools": s.GetToolDefinitions(),
	})
}

func (s *Server) handleCallToolRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object", nil)
	}

	result, err := s.handleCallTool(params)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}
	return NewResultMessage(msg.Id, result)
}

// handleCallTool executes a tool. Tool-level failures are reported inside
// the result (isError content), not as JSON-RPC errors, so clients always
// get readable text back.
func (s *Server) handleCallTool(params map[string]interface{}) (interface{}, error) {
	toolName, ok := params["name"].(string)
	if !ok {
		return nil, &RPCError{Code: InvalidParams, Message: "missing tool name"}
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return nil, &RPCError{Code: MethodNotFound, Message: fmt.Sprintf("unknown tool: %s", toolName)}
	}

	requestID := uuid.NewString()
	s.logger.Info("calling tool", "tool", toolName, "requestId", requestID)

	start := time.Now()
	text, err := handler(context.Background(), toolParams)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Warn("tool failed",
			"tool", toolName, "requestId", requestID,
			"duration", elapsed, "error", err.Error())
		return toolResult(fmt.Sprintf("Error: %v", err), true), nil
	}

	s.logger.Info("tool completed",
		"tool", toolName, "requestId", requestID, "duration", elapsed)
	return toolResult(text, false), nil
}

// toolResult shapes a plain-text tool outcome into MCP content.
func toolResult(text string, isError bool) map[string]interface{} {
	result := map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": text,
			},
		},
	}
	if isError {
		result["isError"] = true
	}
	return result
}
