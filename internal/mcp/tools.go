package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/msgkit/msgchunk-mcp/internal/cache"
	"github.com/msgkit/msgchunk-mcp/internal/chunker"
	"github.com/msgkit/msgchunk-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams     = -32602 // Invalid method parameters
	ErrorCodeInternalError     = -32603 // Internal JSON-RPC error
	ErrorCodeMaxLengthTooSmall = -32011 // max_length below the reserved overhead
)

// handleChunkMessage handles the chunk_message tool invocation
func (s *Server) handleChunkMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing",
		})
	}

	maxLength := getIntDefault(args, "max_length", chunker.DefaultMaxLength)
	if maxLength < 1 {
		return nil, newMCPError(ErrorCodeInvalidParams, "max_length must be >= 1", map[string]interface{}{
			"param": "max_length",
			"value": maxLength,
		})
	}

	chunks, cached, err := s.chunkWithCache(ctx, text, maxLength)
	if err != nil {
		if errors.Is(err, types.ErrMaxLengthTooSmall) {
			return nil, newMCPError(ErrorCodeMaxLengthTooSmall, "max_length leaves no room after reserved overhead", map[string]interface{}{
				"max_length":        maxLength,
				"reserved_overhead": chunker.ReservedOverhead,
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Validate against the unnumbered texts; the prefix is transport
	// decoration, not content.
	stripped := make([]string, len(chunks))
	for i, c := range chunks {
		stripped[i] = chunker.StripNumber(c)
	}

	response := map[string]interface{}{
		"chunks":               chunks,
		"count":                len(chunks),
		"effective_max_length": maxLength - chunker.ReservedOverhead,
		"valid":                s.chunker.ValidateChunkBoundaries(stripped),
		"cached":               cached,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// chunkWithCache serves a chunking request from the cache when possible.
// Cache failures are fail-open: the pipeline result is used directly.
func (s *Server) chunkWithCache(ctx context.Context, text string, maxLength int) ([]string, bool, error) {
	if s.cache != nil {
		chunks, err := s.cache.Get(ctx, text, maxLength)
		if err == nil {
			return chunks, true, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			s.reporter.Error(err, "cache read failed", map[string]interface{}{
				"max_length": maxLength,
			})
		}
	}

	chunks, err := s.chunker.ChunkMessage(text, maxLength)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, text, maxLength, chunks); err != nil {
			s.reporter.Error(err, "cache write failed", map[string]interface{}{
				"max_length":  maxLength,
				"chunk_count": len(chunks),
			})
		}
	}
	return chunks, false, nil
}

// handleChunkBatch handles the chunk_batch tool invocation
func (s *Server) handleChunkBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	texts, err := getStringSlice(args, "texts")
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "texts parameter is required", map[string]interface{}{
			"param":  "texts",
			"reason": err.Error(),
		})
	}

	maxLength := getIntDefault(args, "max_length", chunker.DefaultMaxLength)

	results, err := s.chunker.ChunkBatch(ctx, texts, maxLength)
	if err != nil {
		if errors.Is(err, types.ErrMaxLengthTooSmall) {
			return nil, newMCPError(ErrorCodeMaxLengthTooSmall, "max_length leaves no room after reserved overhead", map[string]interface{}{
				"max_length":        maxLength,
				"reserved_overhead": chunker.ReservedOverhead,
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "batch chunking failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"results": results,
		"count":   len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handlePreprocessMessage handles the preprocess_message tool invocation
func (s *Server) handlePreprocessMessage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing",
		})
	}

	response := map[string]interface{}{
		"text": s.chunker.PreprocessMessage(text),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleValidateChunks handles the validate_chunks tool invocation
func (s *Server) handleValidateChunks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	chunks, err := getStringSlice(args, "chunks")
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, "chunks parameter is required", map[string]interface{}{
			"param":  "chunks",
			"reason": err.Error(),
		})
	}

	response := map[string]interface{}{
		"valid": s.chunker.ValidateChunkBoundaries(chunks),
		"count": len(chunks),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"server":             ServerName,
		"version":            ServerVersion,
		"build_mode":         cache.BuildMode,
		"sqlite_driver":      cache.DriverName,
		"default_max_length": chunker.DefaultMaxLength,
		"reserved_overhead":  chunker.ReservedOverhead,
		"cache_enabled":      s.cache != nil,
	}

	if s.cache != nil {
		stats, err := s.cache.Stats(ctx)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to read cache stats", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response["cache"] = map[string]interface{}{
			"entries": stats.Entries,
			"hits":    stats.Hits,
			"misses":  stats.Misses,
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a response map as indented JSON
func formatJSON(data map[string]interface{}) string {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to encode response: %v"}`, err)
	}
	return string(encoded)
}

// getIntDefault extracts an integer argument with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	if v, ok := args[key].(int); ok {
		return v
	}
	return defaultValue
}

// getStringSlice extracts a required string-array argument
func getStringSlice(args map[string]interface{}, key string) ([]string, error) {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil, errors.New("missing or not an array")
	}
	out := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("element %d is not a string", i)
		}
		out[i] = s
	}
	return out, nil
}
