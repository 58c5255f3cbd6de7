package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/msgkit/msgchunk-mcp/internal/cache"
	"github.com/msgkit/msgchunk-mcp/internal/chunker"
	"github.com/msgkit/msgchunk-mcp/internal/report"
)

const (
	// ServerName is the MCP server name
	ServerName = "msgchunk-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultCachePath is the default location for the chunk cache
	DefaultCachePath = "~/.msgchunk/cache"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	chunker  *chunker.Chunker
	cache    *cache.Store // nil when caching is disabled
	reporter report.Reporter
}

// NewServer creates a new MCP server instance. cachePath selects the chunk
// cache location; an empty path disables caching entirely.
func NewServer(cachePath string, rep report.Reporter) (*Server, error) {
	if rep == nil {
		rep = report.Nop{}
	}

	var store *cache.Store
	if cachePath != "" {
		resolved, err := resolveCachePath(cachePath)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(resolved, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		store, err = cache.Open(filepath.Join(resolved, "chunks.db"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		chunker:  chunker.New(rep),
		cache:    store,
		reporter: rep,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() {
		if s.cache != nil {
			_ = s.cache.Close()
		}
	}()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(chunkMessageTool(), s.handleChunkMessage)
	s.mcp.AddTool(chunkBatchTool(), s.handleChunkBatch)
	s.mcp.AddTool(preprocessMessageTool(), s.handlePreprocessMessage)
	s.mcp.AddTool(validateChunksTool(), s.handleValidateChunks)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
	return nil
}

// resolveCachePath expands a leading ~ to the user's home directory.
func resolveCachePath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
