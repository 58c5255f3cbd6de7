package splitter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// Paragraphs are blank-line-delimited blocks.
	reParagraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

	// A sentence ends at terminal punctuation, optionally followed by a
	// closing quote or bracket, followed by whitespace. Heuristic only;
	// abbreviations and decimal points are accepted casualties.
	reSentenceEnd = regexp.MustCompile(`[.!?…]["')\]]*(\s+)`)
)

// Splitter produces an initial ordered chunk sequence from preprocessed
// text using paragraph-first, sentence-greedy packing.
type Splitter struct{}

// New creates a new Splitter instance.
func New() *Splitter {
	return &Splitter{}
}

// Split divides text into chunks of at most maxLength bytes. Text that
// already fits is returned as a single element, unchanged. Paragraph
// boundaries are the preferred split points; paragraphs that do not fit
// are packed sentence by sentence, and a single sentence longer than
// maxLength is hard-split at word boundaries as a last resort.
func (s *Splitter) Split(text string, maxLength int) []string {
	if maxLength <= 0 || len(text) <= maxLength {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}
	}

	for _, para := range Paragraphs(text) {
		// Keep whole paragraphs together whenever the bound allows.
		if cur.Len() > 0 && cur.Len()+2+len(para) <= maxLength {
			cur.WriteString("\n\n")
			cur.WriteString(para)
			continue
		}
		flush()
		if len(para) <= maxLength {
			cur.WriteString(para)
			continue
		}

		// Paragraph exceeds the bound: accumulate sentences greedily.
		for _, sent := range Sentences(para) {
			switch {
			case cur.Len() == 0 && len(sent) <= maxLength:
				cur.WriteString(sent)
			case cur.Len() > 0 && cur.Len()+1+len(sent) <= maxLength:
				cur.WriteString(" ")
				cur.WriteString(sent)
			case len(sent) <= maxLength:
				flush()
				cur.WriteString(sent)
			default:
				// Single sentence longer than the bound.
				flush()
				chunks = append(chunks, hardSplit(sent, maxLength)...)
			}
		}
	}
	flush()

	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}

// Paragraphs splits text into blank-line-delimited blocks, dropping blocks
// that contain only whitespace.
func Paragraphs(text string) []string {
	blocks := reParagraphBreak.Split(text, -1)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if strings.TrimSpace(b) == "" {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Sentences splits text at terminal punctuation followed by whitespace.
// The trailing fragment after the last boundary is kept as a sentence even
// when unterminated.
func Sentences(text string) []string {
	matches := reSentenceEnd.FindAllStringSubmatchIndex(text, -1)
	var out []string
	start := 0
	for _, m := range matches {
		// m[2] is the start of the trailing whitespace group.
		if m[2] > start {
			out = append(out, text[start:m[2]])
		}
		start = m[3]
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

// hardSplit breaks an oversized sentence at word boundaries. Words longer
// than maxLength are sliced at rune boundaries; this is the one documented
// exception to the never-break-mid-construct invariant.
func hardSplit(text string, maxLength int) []string {
	var chunks []string
	var cur strings.Builder

	for _, word := range strings.Fields(text) {
		for len(word) > maxLength {
			if cur.Len() > 0 {
				chunks = append(chunks, cur.String())
				cur.Reset()
			}
			cut := runeSafeCut(word, maxLength)
			chunks = append(chunks, word[:cut])
			word = word[cut:]
		}
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case cur.Len()+1+len(word) <= maxLength:
			cur.WriteString(" ")
			cur.WriteString(word)
		default:
			chunks = append(chunks, cur.String())
			cur.Reset()
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// runeSafeCut returns the largest cut point <= max that does not land in
// the middle of a UTF-8 sequence.
func runeSafeCut(s string, max int) int {
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return cut
}
