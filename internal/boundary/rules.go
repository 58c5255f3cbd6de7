package boundary

import (
	"regexp"
	"strings"
)

// Severity classifies how a validator finding is reported.
type Severity int

const (
	// SeverityDebug findings are informational (mid-sentence break,
	// dangling markdown link).
	SeverityDebug Severity = iota
	// SeverityWarn findings are structural issues worth operator
	// attention (dangling numbered-list marker).
	SeverityWarn
)

// Rule describes one class of boundary violation: how to detect it at a
// chunk pair and how to locate the dangling fragment inside the left
// chunk. Rules are immutable and applied in the order of the Rules table.
type Rule struct {
	// Name identifies the violation class in diagnostics.
	Name string
	// Detect reports whether the end of the left chunk, together with the
	// start of the right chunk, exhibits this violation.
	Detect func(end, next string) bool
	// Split locates the boundary inside the left chunk between safe
	// content and the dangling fragment. ok is false when no usable
	// boundary exists, in which case the rule is a no-op.
	Split func(end string) (safe, dangling string, ok bool)
	// Separator is inserted between the dangling fragment and the right
	// chunk when the fragment is moved.
	Separator string
	// Severity controls validator reporting for this class.
	Severity Severity
}

var (
	// A complete sentence end: terminal punctuation, optional closing
	// quote/bracket, optional trailing citation references ("[3]").
	reTerminalEnd = regexp.MustCompile(`[.!?…]["')\]]*(\s*\[\d+\])*$`)

	// An in-text sentence boundary: terminal punctuation followed by
	// whitespace.
	reSentenceEnd = regexp.MustCompile(`[.!?…]["')\]]*(\s+)`)

	// Last whitespace-delimited token of a chunk that is a URL.
	reURLToken = regexp.MustCompile(`^(?:https?://|www\.)\S*$`)

	// A token that looks like a domain cut off right after a dot
	// ("fractalsoftworks.").
	reDomainCut = regexp.MustCompile(`^[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.$`)

	// A next-chunk start that continues a cut domain ("com/forum ...").
	reDomainCont = regexp.MustCompile(`^(?:com|net|org|io|co|gg|dev|edu|gov)(?:/\S*)?(?:\s|$)`)

	// A bare numbered-list marker at end of chunk ("... 2." or "... 2").
	reListMarkerEnd = regexp.MustCompile(`(?:^|\s)(\d{1,3}\.?)$`)

	// Markdown-link fragments: an unclosed bracket (split inside the link
	// text), an unclosed URL parenthesis (split inside the URL), and a
	// closed bracket still awaiting its "(url)".
	reOpenBracket   = regexp.MustCompile(`\[[^\]]*$`)
	reOpenParenLink = regexp.MustCompile(`\]\([^)]*$`)
	reClosedBracket = regexp.MustCompile(`\[[^\]]*\]$`)

	// Citation-style references ("[3]") are complete constructs, never
	// dangling links.
	reCitation = regexp.MustCompile(`\[\d+\]$`)
)

// Rules is the ordered boundary-rule table. Priority is fixed: sentence
// repair is attempted before URL, domain, numbered-list, and markdown-link
// repair. The repair loop iterates the table rather than branching on
// rule identity, so new classes slot in without touching control flow.
//
// The markdown-link class has two entries because its separator depends on
// where the link was cut: inside the link text the original had a space at
// the seam, inside the "(url)" part it cannot have (URLs carry no spaces).
var Rules = []Rule{
	{
		Name: "sentence",
		Detect: func(end, next string) bool {
			if next == "" || strings.TrimSpace(end) == "" || EndsComplete(end) {
				return false
			}
			// Mid-construct link ends belong to the markdown-link rules;
			// a space separator would corrupt the rejoined URL.
			if reOpenParenLink.MatchString(end) {
				return false
			}
			if reClosedBracket.MatchString(end) && strings.HasPrefix(next, "(") {
				return false
			}
			return true
		},
		Split: func(end string) (string, string, bool) {
			idx := LastBoundary(end)
			if idx < 0 {
				return "", "", false
			}
			safe := strings.TrimRight(end[:idx], " \t\n")
			dangling := strings.TrimSpace(end[idx:])
			return safe, dangling, safe != "" && dangling != ""
		},
		Separator: " ",
		Severity:  SeverityDebug,
	},
	{
		Name: "url",
		Detect: func(end, next string) bool {
			return next != "" && reURLToken.MatchString(lastToken(end))
		},
		Split: func(end string) (string, string, bool) {
			return splitLastToken(end)
		},
		Separator: " ",
		Severity:  SeverityDebug,
	},
	{
		Name: "domain",
		Detect: func(end, next string) bool {
			return reDomainCut.MatchString(lastToken(end)) && reDomainCont.MatchString(next)
		},
		Split: func(end string) (string, string, bool) {
			return splitLastToken(end)
		},
		Separator: "",
		Severity:  SeverityDebug,
	},
	{
		Name: "numbered-list",
		Detect: func(end, next string) bool {
			if next == "" {
				return false
			}
			m := reListMarkerEnd.FindStringSubmatchIndex(end)
			if m == nil {
				return false
			}
			// "This is sentence 1." is a sentence ending in a number, not
			// a stranded marker. Before a real marker the preceding text
			// ends a complete sentence ("First item done. 2.").
			return EndsComplete(end[:m[2]])
		},
		Split: func(end string) (string, string, bool) {
			m := reListMarkerEnd.FindStringSubmatchIndex(end)
			if m == nil {
				return "", "", false
			}
			safe := strings.TrimRight(end[:m[2]], " \t\n")
			dangling := end[m[2]:m[3]]
			return safe, dangling, safe != ""
		},
		Separator: " ",
		Severity:  SeverityWarn,
	},
	{
		Name: "markdown-link",
		Detect: func(end, next string) bool {
			if next == "" || reCitation.MatchString(end) {
				return false
			}
			return reOpenBracket.MatchString(end)
		},
		Split:     splitAtLinkStart,
		Separator: " ",
		Severity:  SeverityDebug,
	},
	{
		Name: "markdown-link-url",
		Detect: func(end, next string) bool {
			if next == "" || reCitation.MatchString(end) {
				return false
			}
			if reOpenParenLink.MatchString(end) {
				return true
			}
			return reClosedBracket.MatchString(end) && strings.HasPrefix(next, "(")
		},
		Split:     splitAtLinkStart,
		Separator: "",
		Severity:  SeverityDebug,
	},
}

// EndsComplete reports whether s ends with a complete sentence: terminal
// punctuation, optionally wrapped in a closing quote or bracket, optionally
// followed by citation references.
func EndsComplete(s string) bool {
	return reTerminalEnd.MatchString(strings.TrimRight(s, " \t\n"))
}

// LastBoundary returns the byte offset just past the last in-text sentence
// boundary of s (the end of the punctuation run, before the whitespace that
// follows it), or -1 when s contains no such boundary.
func LastBoundary(s string) int {
	matches := reSentenceEnd.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return -1
	}
	return matches[len(matches)-1][2]
}

// splitAtLinkStart divides a chunk at the "[" opening its trailing link.
func splitAtLinkStart(end string) (string, string, bool) {
	idx := strings.LastIndex(end, "[")
	if idx <= 0 {
		return "", "", false
	}
	safe := strings.TrimRight(end[:idx], " \t\n")
	dangling := end[idx:]
	return safe, dangling, safe != "" && dangling != ""
}

// lastToken returns the final whitespace-delimited token of s.
func lastToken(s string) string {
	s = strings.TrimRight(s, " \t\n")
	if i := strings.LastIndexAny(s, " \t\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// splitLastToken divides s into everything before its last token and the
// token itself.
func splitLastToken(s string) (string, string, bool) {
	trimmed := strings.TrimRight(s, " \t\n")
	i := strings.LastIndexAny(trimmed, " \t\n")
	if i < 0 {
		return "", "", false
	}
	safe := strings.TrimRight(trimmed[:i], " \t\n")
	dangling := trimmed[i+1:]
	return safe, dangling, safe != "" && dangling != ""
}
