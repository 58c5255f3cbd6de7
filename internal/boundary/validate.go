package boundary

import (
	"fmt"

	"github.com/msgkit/msgchunk-mcp/internal/report"
)

// Validator re-inspects a repaired chunk sequence and reports whether any
// boundary violation remains. It is read-only and used for diagnostics and
// tests, never for correction.
type Validator struct {
	reporter report.Reporter
}

// NewValidator creates a validator reporting through rep. A nil reporter
// falls back to a no-op reporter.
func NewValidator(rep report.Reporter) *Validator {
	if rep == nil {
		rep = report.Nop{}
	}
	return &Validator{reporter: rep}
}

// Validate applies the detection predicates of every rule to each adjacent
// chunk pair and returns false on the first violation found. The final
// chunk is exempt: trailing incompleteness is only a violation when a
// later chunk exists to carry the continuation. Validation is fail-closed:
// an internal failure returns false, since failing open would hide real
// defects.
func (v *Validator) Validate(chunks []string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v.reporter.Error(fmt.Errorf("panic: %v", r), "validation failed", map[string]interface{}{
				"chunk_count": len(chunks),
			})
			ok = false
		}
	}()

	for i := 0; i+1 < len(chunks); i++ {
		for _, rule := range Rules {
			if !rule.Detect(chunks[i], chunks[i+1]) {
				continue
			}
			switch rule.Severity {
			case SeverityWarn:
				v.reporter.Warnf("chunk %d has a dangling %s boundary", i, rule.Name)
			default:
				v.reporter.Debugf("chunk %d has a dangling %s boundary", i, rule.Name)
			}
			return false
		}
	}
	return true
}
