// Package mcp implements a Model Context Protocol server speaking JSON-RPC
// 2.0 over newline-delimited stdio, exposing the fleet dispatcher and a few
// small system helpers as tools.
package mcp

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mixfleet/internal/execx"
	"mixfleet/internal/fleet"
	"mixfleet/internal/history"
)

// Options carries the server's dependencies.
type Options struct {
	Version    string
	Logger     *slog.Logger
	Dispatcher *fleet.Dispatcher
	History    *history.Store
	Exec       execx.Runner

	// Player is the MPRIS player name passed to playerctl.
	Player string
}

// Server is the MCP server. It owns the stdio transport and the tool
// registry; tool handlers borrow the dispatcher and stores from Options.
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *slog.Logger
	version string
	tools   map[string]ToolHandler

	dispatcher *fleet.Dispatcher
	history    *history.Store
	exec       execx.Runner
	player     string
}

// NewServer creates a server wired to stdin/stdout with all tools
// registered.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		logger:     logger,
		version:    opts.Version,
		tools:      make(map[string]ToolHandler),
		dispatcher: opts.Dispatcher,
		history:    opts.History,
		exec:       opts.Exec,
		player:     opts.Player,
	}
	s.RegisterTools()
	return s
}

// Start runs the message loop until stdin is closed.
func (s *Server) Start() error {
	s.logger.Info("mcp server starting", "version", s.version)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("mcp server shutting down (EOF)")
				return nil
			}
			s.logger.Error("error reading message", "error", err.Error())

			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, fmt.Sprintf("Failed to parse message: %v", err))
			}
			continue
		}

		// Notifications produce no response.
		response := s.handleMessage(msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing).
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil
}

// SetStdout sets the output stream (for testing).
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
