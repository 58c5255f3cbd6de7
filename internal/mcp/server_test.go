package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if s.cache != nil {
			_ = s.cache.Close()
		}
	})
	return s
}

func newTestServerNoCache(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer("", nil)
	require.NoError(t, err)
	return s
}

func callToolRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	return decoded
}

func TestHandleChunkMessage(t *testing.T) {
	s := newTestServerNoCache(t)

	result, err := s.handleChunkMessage(context.Background(), callToolRequest(map[string]interface{}{
		"text":       strings.Repeat("This is sentence 1. ", 100),
		"max_length": float64(500),
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	chunks := response["chunks"].([]interface{})
	assert.Greater(t, len(chunks), 1)
	assert.Equal(t, float64(len(chunks)), response["count"])
	assert.Equal(t, float64(480), response["effective_max_length"])
	assert.Equal(t, true, response["valid"])
	assert.Equal(t, false, response["cached"])

	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.(string)), 500)
	}
}

func TestHandleChunkMessage_ShortTextPassesThrough(t *testing.T) {
	s := newTestServerNoCache(t)

	result, err := s.handleChunkMessage(context.Background(), callToolRequest(map[string]interface{}{
		"text": "A short message.",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	chunks := response["chunks"].([]interface{})
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short message.", chunks[0])
}

func TestHandleChunkMessage_MissingText(t *testing.T) {
	s := newTestServerNoCache(t)

	_, err := s.handleChunkMessage(context.Background(), callToolRequest(map[string]interface{}{}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandleChunkMessage_MaxLengthTooSmall(t *testing.T) {
	s := newTestServerNoCache(t)

	_, err := s.handleChunkMessage(context.Background(), callToolRequest(map[string]interface{}{
		"text":       "some text",
		"max_length": float64(15),
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeMaxLengthTooSmall, mcpErr.Code)
}

func TestHandleChunkMessage_CacheRoundTrip(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	args := map[string]interface{}{
		"text":       strings.Repeat("This is sentence 1. ", 100),
		"max_length": float64(500),
	}

	result, err := s.handleChunkMessage(ctx, callToolRequest(args))
	require.NoError(t, err)
	first := decodeResult(t, result)
	assert.Equal(t, false, first["cached"])

	result, err = s.handleChunkMessage(ctx, callToolRequest(args))
	require.NoError(t, err)
	second := decodeResult(t, result)
	assert.Equal(t, true, second["cached"])
	assert.Equal(t, first["chunks"], second["chunks"])
}

func TestHandleChunkBatch(t *testing.T) {
	s := newTestServerNoCache(t)

	result, err := s.handleChunkBatch(context.Background(), callToolRequest(map[string]interface{}{
		"texts":      []interface{}{"Short one.", strings.Repeat("This is sentence 1. ", 100)},
		"max_length": float64(500),
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	results := response["results"].([]interface{})
	require.Len(t, results, 2)
	assert.Equal(t, float64(2), response["count"])

	firstResult := results[0].([]interface{})
	require.Len(t, firstResult, 1)
	assert.Equal(t, "Short one.", firstResult[0])

	secondResult := results[1].([]interface{})
	assert.Greater(t, len(secondResult), 1)
}

func TestHandleChunkBatch_InvalidTexts(t *testing.T) {
	s := newTestServerNoCache(t)

	_, err := s.handleChunkBatch(context.Background(), callToolRequest(map[string]interface{}{
		"texts": "not an array",
	}))
	require.Error(t, err)

	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr))
	assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
}

func TestHandlePreprocessMessage(t *testing.T) {
	s := newTestServerNoCache(t)

	result, err := s.handlePreprocessMessage(context.Background(), callToolRequest(map[string]interface{}{
		"text": "1. First item\n\n2. Second item",
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, "1. First item\n2. Second item", response["text"])
}

func TestHandleValidateChunks(t *testing.T) {
	s := newTestServerNoCache(t)

	result, err := s.handleValidateChunks(context.Background(), callToolRequest(map[string]interface{}{
		"chunks": []interface{}{"Check out https://example.com", "for more information"},
	}))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, false, response["valid"])
	assert.Equal(t, float64(2), response["count"])

	result, err = s.handleValidateChunks(context.Background(), callToolRequest(map[string]interface{}{
		"chunks": []interface{}{"Question?", "Exclamation!"},
	}))
	require.NoError(t, err)
	assert.Equal(t, true, decodeResult(t, result)["valid"])
}

func TestHandleGetStatus(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleGetStatus(context.Background(), callToolRequest(nil))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, ServerName, response["server"])
	assert.Equal(t, ServerVersion, response["version"])
	assert.Equal(t, float64(2000), response["default_max_length"])
	assert.Equal(t, float64(20), response["reserved_overhead"])
	assert.Equal(t, true, response["cache_enabled"])
	assert.Contains(t, response, "cache")
}

func TestHandleGetStatus_CacheDisabled(t *testing.T) {
	s := newTestServerNoCache(t)

	result, err := s.handleGetStatus(context.Background(), callToolRequest(nil))
	require.NoError(t, err)

	response := decodeResult(t, result)
	assert.Equal(t, false, response["cache_enabled"])
	assert.NotContains(t, response, "cache")
}

func TestResolveCachePath(t *testing.T) {
	got, err := resolveCachePath("/absolute/path")
	require.NoError(t, err)
	assert.Equal(t, "/absolute/path", got)

	got, err = resolveCachePath("~/under-home")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "under-home"))
	assert.False(t, strings.HasPrefix(got, "~"))
}
