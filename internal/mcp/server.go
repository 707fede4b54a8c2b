// Package mcp exposes action parsing and execution as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const (
	serverName    = "chatrun"
	serverVersion = "0.1.0"
)

// Server wraps the MCP server and the directory tools run in.
type Server struct {
	mcpServer *mcp.Server
	workDir   string
	logger    *zap.Logger
}

// New creates a server whose commands and file writes resolve against
// workDir.
func New(workDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, workDir, logger)
	return &Server{mcpServer: mcpServer, workDir: workDir, logger: logger}
}

// Serve runs the server on stdin/stdout until the client disconnects or
// ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	s.logger.Info("mcp server starting", zap.String("work_dir", s.workDir))
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
