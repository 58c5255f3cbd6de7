package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/msgkit/msgchunk-mcp/internal/cache"
	"github.com/msgkit/msgchunk-mcp/internal/mcp"
	"github.com/msgkit/msgchunk-mcp/internal/report"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("msgchunk MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", cache.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", cache.DriverName)
		os.Exit(0)
	}

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("msgchunk MCP Server v%s starting...", version)
	log.Printf("Build Mode: %s, Driver: %s", cache.BuildMode, cache.DriverName)

	// Get cache path from environment or use default; "off" disables it
	cachePath := os.Getenv("MSGCHUNK_CACHE_PATH")
	if cachePath == "" {
		cachePath = mcp.DefaultCachePath
	}
	if cachePath == "off" {
		cachePath = ""
	}

	// Create MCP server
	server, err := mcp.NewServer(cachePath, report.NewFromEnv())
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}

	log.Println("Server stopped")
}
