package preprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/msgkit/msgchunk-mcp/internal/report"
)

// KnownBareDomains are domains that commonly appear as bare links (no
// scheme, no www.) in chat responses and forum text. A line holding only
// one of these is rejoined to the preceding sentence.
var KnownBareDomains = []string{
	"fractalsoftworks.com",
	"youtube.com",
	"youtu.be",
	"github.com",
	"discord.gg",
	"example.com",
}

// urlTokenPattern matches one URL-ish token: scheme links, bare www links,
// shortened video links, and the configured bare domains.
var urlTokenPattern = func() string {
	quoted := make([]string, len(KnownBareDomains))
	for i, d := range KnownBareDomains {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return `(?:https?://\S+|www\.\S+|youtu\.be/\S+|(?:` + strings.Join(quoted, "|") + `)\S*)`
}()

var (
	// Blank line between two consecutive numbered-list items.
	reListGap = regexp.MustCompile(`(?m)^(\d+\.[ \t][^\n]*)\n[ \t]*\n(\d+\.[ \t])`)

	// Numbered-list marker missing the space after its period ("1.X").
	// Digits are excluded from the glued character so decimal numbers at
	// line start ("1.5 units") are left alone.
	reMarkerNoSpace = regexp.MustCompile(`(?m)^(\d+)\.([^\s\d.])`)

	// Numbered-list item glued onto the end of preceding prose.
	reGluedItem = regexp.MustCompile(`([.!?:])[ \t]+(\d+\.[ \t])`)

	// URL alone on its own line.
	reLoneURLLine = regexp.MustCompile(`(\S)[ \t]*\n[ \t]*(` + urlTokenPattern + `)[ \t]*(\n|$)`)

	// URL at line start directly after a sentence-terminating period.
	reURLAfterPeriod = regexp.MustCompile(`([.!?])[ \t]*\n[ \t]*(` + urlTokenPattern + `)`)
)

// Preprocessor normalizes formatting irregularities in raw text before any
// splitting occurs. All fixes are cosmetic, so every failure path is
// fail-open: the caller always gets usable text back.
type Preprocessor struct {
	reporter report.Reporter
}

// New creates a Preprocessor reporting failures to rep. A nil reporter
// falls back to a no-op reporter.
func New(rep report.Reporter) *Preprocessor {
	if rep == nil {
		rep = report.Nop{}
	}
	return &Preprocessor{reporter: rep}
}

// Clean applies the normalization transforms in order and returns the
// result. On any internal failure the original text is returned unchanged
// and the failure is reported. Empty input is returned as-is.
func (p *Preprocessor) Clean(text string) (out string) {
	if text == "" {
		return text
	}

	defer func() {
		if r := recover(); r != nil {
			p.reporter.Error(fmt.Errorf("panic: %v", r), "preprocess failed", map[string]interface{}{
				"input_length": len(text),
			})
			out = text
		}
	}()

	out = collapseListGaps(text)
	out = reMarkerNoSpace.ReplaceAllString(out, "$1. $2")
	out = reGluedItem.ReplaceAllString(out, "$1\n$2")
	out = joinLoneURLs(out)
	return out
}

// collapseListGaps removes the blank line between consecutive numbered-list
// items. Applied to a fixpoint because each replacement consumes the
// following item's marker, hiding the next overlapping gap from a single
// global pass.
func collapseListGaps(text string) string {
	for {
		next := reListGap.ReplaceAllString(text, "$1\n$2")
		if next == text {
			return next
		}
		text = next
	}
}

// joinLoneURLs reattaches URL lines to the sentence they belong to,
// inserting a single space at the seam.
func joinLoneURLs(text string) string {
	text = reLoneURLLine.ReplaceAllString(text, "$1 $2$3")
	text = reURLAfterPeriod.ReplaceAllString(text, "$1 $2")
	return text
}
