package chunker

import (
	"context"
	"fmt"
	"regexp"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/msgkit/msgchunk-mcp/internal/boundary"
	"github.com/msgkit/msgchunk-mcp/internal/preprocess"
	"github.com/msgkit/msgchunk-mcp/internal/report"
	"github.com/msgkit/msgchunk-mcp/internal/splitter"
	"github.com/msgkit/msgchunk-mcp/pkg/types"
)

const (
	// DefaultMaxLength is the transport's message length limit.
	DefaultMaxLength = 2000

	// NumberingReserve is the space held back for the "[i/N] " prefix.
	NumberingReserve = 10

	// SafetyMargin absorbs the single spaces inserted at repair seams.
	SafetyMargin = 10

	// ReservedOverhead is subtracted from the caller's max length before
	// any splitting occurs. Callers needing the transport's raw maximum
	// must account for this themselves.
	ReservedOverhead = NumberingReserve + SafetyMargin
)

// reNumberPrefix matches an already-applied "[i/N] " chunk prefix.
var reNumberPrefix = regexp.MustCompile(`^\[\d+/\d+\] `)

// Chunker composes the full pipeline: preprocess → split → repair →
// number. It holds no per-call state, so a single Chunker is safe for
// concurrent use.
type Chunker struct {
	pre      *preprocess.Preprocessor
	split    *splitter.Splitter
	engine   *boundary.Engine
	validate *boundary.Validator
	reporter report.Reporter
}

// New creates a Chunker reporting failures through rep. A nil reporter
// falls back to a no-op reporter.
func New(rep report.Reporter) *Chunker {
	if rep == nil {
		rep = report.Nop{}
	}
	return &Chunker{
		pre:      preprocess.New(rep),
		split:    splitter.New(),
		engine:   boundary.NewEngine(rep),
		validate: boundary.NewValidator(rep),
		reporter: rep,
	}
}

// ChunkMessage splits text into delivery-ready chunks of at most maxLength
// bytes each. maxLength <= 0 selects DefaultMaxLength. Text that already
// fits is returned as a single unnumbered element, unchanged. A max length
// that leaves no room after the reserved overhead is a hard configuration
// error.
func (c *Chunker) ChunkMessage(text string, maxLength int) ([]string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	effective := maxLength - ReservedOverhead
	if effective <= 0 {
		return nil, fmt.Errorf("max length %d: %w", maxLength, types.ErrMaxLengthTooSmall)
	}

	if len(text) <= maxLength {
		return []string{text}, nil
	}

	cleaned := c.pre.Clean(text)
	chunks := c.split.Split(cleaned, effective)
	chunks = c.engine.Repair(chunks, effective)

	// Diagnostics only; residual violations mean a repair was skipped to
	// avoid overflowing a chunk, which is the documented trade-off.
	if !c.validate.Validate(chunks) {
		c.reporter.Debugf("residual boundary violations after repair (chunks=%d, max=%d)", len(chunks), maxLength)
	}

	return Number(chunks), nil
}

// ChunkBatch runs ChunkMessage over many texts concurrently. Results are
// returned in input order; the first error cancels the remaining work.
// Each pipeline call is independent, so no locking is needed.
func (c *Chunker) ChunkBatch(ctx context.Context, texts []string, maxLength int) ([][]string, error) {
	results := make([][]string, len(texts))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, text := range texts {
		g.Go(func() error {
			chunks, err := c.ChunkMessage(text, maxLength)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = chunks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// PreprocessMessage exposes the preprocessing stage on its own.
func (c *Chunker) PreprocessMessage(text string) string {
	return c.pre.Clean(text)
}

// FixChunkBoundaries exposes the boundary repair stage on its own.
func (c *Chunker) FixChunkBoundaries(chunks []string, safeMaxLength int) []string {
	return c.engine.Repair(chunks, safeMaxLength)
}

// ValidateChunkBoundaries exposes the validation stage on its own.
func (c *Chunker) ValidateChunkBoundaries(chunks []string) bool {
	return c.validate.Validate(chunks)
}

// Number prefixes each chunk with its "[i/N] " position marker. Sequences
// of one (or zero) chunks are returned unchanged, and chunks that already
// carry a marker are never double-prefixed.
func Number(chunks []string) []string {
	if len(chunks) <= 1 {
		return chunks
	}
	out := make([]string, len(chunks))
	for i, chunk := range chunks {
		if reNumberPrefix.MatchString(chunk) {
			out[i] = chunk
			continue
		}
		out[i] = fmt.Sprintf("[%d/%d] %s", i+1, len(chunks), chunk)
	}
	return out
}

// StripNumber removes a "[i/N] " prefix from a chunk, if present.
func StripNumber(chunk string) string {
	return reNumberPrefix.ReplaceAllString(chunk, "")
}
