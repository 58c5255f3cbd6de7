package boundary

import (
	"fmt"
	"strings"

	"github.com/msgkit/msgchunk-mcp/internal/report"
	"github.com/msgkit/msgchunk-mcp/pkg/types"
)

// Engine corrects boundary violations between adjacent chunks by moving
// dangling fragments from the end of one chunk to the start of the next.
// Overflow is never permitted: a repair that would push the receiving
// chunk past safeMaxLength is skipped, leaving the content split.
type Engine struct {
	reporter report.Reporter
}

// NewEngine creates a repair engine reporting through rep. A nil reporter
// falls back to a no-op reporter.
func NewEngine(rep report.Reporter) *Engine {
	if rep == nil {
		rep = report.Nop{}
	}
	return &Engine{reporter: rep}
}

// Repair walks adjacent chunk pairs left to right, applying the first
// matching rule per pair. Repairs are fail-open: on any internal failure
// the original chunks are returned unmodified and the failure is reported
// with chunk count and configured length as context. Nil input is treated
// as a zero-length list and returned as-is.
func (e *Engine) Repair(chunks []string, safeMaxLength int) (out []string) {
	if len(chunks) < 2 {
		return chunks
	}

	defer func() {
		if r := recover(); r != nil {
			e.reporter.Error(fmt.Errorf("panic: %v", r), "boundary repair failed", map[string]interface{}{
				"chunk_count": len(chunks),
				"max_length":  safeMaxLength,
			})
			out = chunks
		}
	}()

	seq := types.NewChunkSequence(chunks)
	for i := 0; i < seq.Len()-1; i++ {
		end, next := seq.At(i), seq.At(i+1)
		for _, rule := range Rules {
			if !rule.Detect(end, next) {
				continue
			}
			safe, dangling, ok := rule.Split(end)
			if !ok {
				continue
			}
			moved := dangling + rule.Separator + next
			if len(moved) > safeMaxLength {
				// Leave the construct split rather than overflow.
				continue
			}
			if err := seq.ReplacePair(i, strings.TrimRight(safe, " \t\n"), moved); err != nil {
				e.reporter.Error(err, "boundary repair edit failed", map[string]interface{}{
					"chunk_index": i,
					"rule":        rule.Name,
				})
				return chunks
			}
			e.reporter.Debugf("repaired %s boundary at chunk %d", rule.Name, i)
			break
		}
	}
	return seq.Texts()
}
