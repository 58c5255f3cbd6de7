// Package mcp implements the Model Context Protocol (MCP) server exposing
// the message chunker to chat-orchestration clients.
//
// The server exposes five tools:
//   - chunk_message: split one message into length-bounded chunks
//   - chunk_batch: split many messages concurrently, order preserved
//   - preprocess_message: run the formatting normalizer on its own
//   - validate_chunks: read-only boundary validation of a chunk sequence
//   - get_status: version, build mode, and cache statistics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport. The server reads
// requests from stdin and writes responses to stdout, so all logging goes
// to stderr.
//
// # Tool: chunk_message
//
//	Request:
//	{
//	  "name": "chunk_message",
//	  "arguments": {
//	    "text": "First sentence. Second sentence. ...",
//	    "max_length": 2000
//	  }
//	}
//
//	Response:
//	{
//	  "chunks": ["[1/2] ...", "[2/2] ..."],
//	  "count": 2,
//	  "effective_max_length": 1980,
//	  "valid": true,
//	  "cached": false
//	}
//
// # Error Handling
//
// Errors use standard JSON-RPC codes plus one domain code:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error
//   - -32011: max_length below the reserved overhead
//
// # Caching
//
// When MSGCHUNK_CACHE_PATH is set, chunk_message results are cached in
// SQLite keyed by text hash and max length. Cache failures never fail a
// request; the pipeline result is returned and the failure reported.
package mcp
