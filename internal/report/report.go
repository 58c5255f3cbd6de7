package report

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// Reporter is the error-reporting collaborator injected into the chunking
// pipeline. Recoverable formatting failures and validation diagnostics flow
// through it; nothing in the pipeline writes to stdout directly (stdout is
// reserved for the MCP protocol).
type Reporter interface {
	// Error reports an internal failure with contextual metadata.
	Error(err error, msg string, fields map[string]interface{})
	// Warnf reports a structural issue worth operator attention.
	Warnf(format string, args ...interface{})
	// Debugf reports informational diagnostics.
	Debugf(format string, args ...interface{})
}

// LogReporter writes prefixed lines to a standard library logger.
type LogReporter struct {
	logger *log.Logger
	debug  bool
}

// NewLogReporter creates a reporter writing to stderr. Debug lines are
// emitted only when debug is true.
func NewLogReporter(debug bool) *LogReporter {
	return &LogReporter{
		logger: log.New(os.Stderr, "", log.LstdFlags),
		debug:  debug,
	}
}

// NewFromEnv creates a reporter configured from MSGCHUNK_LOG_LEVEL.
func NewFromEnv() *LogReporter {
	level := strings.ToLower(os.Getenv("MSGCHUNK_LOG_LEVEL"))
	return NewLogReporter(level == "debug")
}

// Error logs an internal failure with its context fields as key=value pairs.
func (r *LogReporter) Error(err error, msg string, fields map[string]interface{}) {
	r.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

// Warnf logs a warning-level diagnostic.
func (r *LogReporter) Warnf(format string, args ...interface{}) {
	r.logger.Printf("[WARN] "+format, args...)
}

// Debugf logs a debug-level diagnostic when debug logging is enabled.
func (r *LogReporter) Debugf(format string, args ...interface{}) {
	if !r.debug {
		return
	}
	r.logger.Printf("[DEBUG] "+format, args...)
}

// formatFields renders context fields deterministically, sorted by key.
func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	return b.String()
}

// Nop is a Reporter that discards everything. Used in tests and as the
// default when no reporter is injected.
type Nop struct{}

func (Nop) Error(err error, msg string, fields map[string]interface{}) {}
func (Nop) Warnf(format string, args ...interface{})                   {}
func (Nop) Debugf(format string, args ...interface{})                  {}
