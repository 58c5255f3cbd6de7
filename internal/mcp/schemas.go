package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// chunkMessageTool returns the tool definition for chunk_message
func chunkMessageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_message",
		Description: "Split a long message into ordered, length-bounded chunks without breaking sentences, URLs, list items, or markdown links",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Message text to split",
				},
				"max_length": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum chunk length in bytes, including numbering overhead",
					"default":     2000,
					"minimum":     1,
				},
			},
			Required: []string{"text"},
		},
	}
}

// chunkBatchTool returns the tool definition for chunk_batch
func chunkBatchTool() mcp.Tool {
	return mcp.Tool{
		Name:        "chunk_batch",
		Description: "Chunk multiple messages concurrently, preserving input order",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"texts": map[string]interface{}{
					"type":        "array",
					"description": "Messages to split",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
				"max_length": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum chunk length in bytes applied to every message",
					"default":     2000,
					"minimum":     1,
				},
			},
			Required: []string{"texts"},
		},
	}
}

// preprocessMessageTool returns the tool definition for preprocess_message
func preprocessMessageTool() mcp.Tool {
	return mcp.Tool{
		Name:        "preprocess_message",
		Description: "Normalize list-item spacing and lone URL lines in raw text without splitting it",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Raw message text",
				},
			},
			Required: []string{"text"},
		},
	}
}

// validateChunksTool returns the tool definition for validate_chunks
func validateChunksTool() mcp.Tool {
	return mcp.Tool{
		Name:        "validate_chunks",
		Description: "Check a chunk sequence for residual boundary violations (read-only)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"chunks": map[string]interface{}{
					"type":        "array",
					"description": "Chunk texts in delivery order",
					"items": map[string]interface{}{
						"type": "string",
					},
				},
			},
			Required: []string{"chunks"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report server version, build configuration, and cache statistics",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
