package boundary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_CompleteChunksPass(t *testing.T) {
	v := NewValidator(nil)

	assert.True(t, v.Validate([]string{"Question?", "Exclamation!"}))
	assert.True(t, v.Validate([]string{"First sentence.", "Second sentence."}))
}

func TestValidate_MidSentenceBreakFails(t *testing.T) {
	v := NewValidator(nil)

	assert.False(t, v.Validate([]string{"This is an incomplete sentence", "that continues here."}))
}

func TestValidate_DanglingURLFails(t *testing.T) {
	v := NewValidator(nil)

	assert.False(t, v.Validate([]string{"Check out https://example.com", "for more information"}))
}

func TestValidate_SplitDomainFails(t *testing.T) {
	v := NewValidator(nil)

	assert.False(t, v.Validate([]string{"Visit fractalsoftworks.", "com/forum for updates"}))
}

func TestValidate_BareListMarkerFails(t *testing.T) {
	v := NewValidator(nil)

	assert.False(t, v.Validate([]string{"1. First item done. 2.", "Second item text here."}))
}

func TestValidate_DanglingMarkdownLinkFails(t *testing.T) {
	v := NewValidator(nil)

	assert.False(t, v.Validate([]string{"See also [the wiki", "page](https://example.com) here."}))
	assert.False(t, v.Validate([]string{"See [docs](https://exa", "mple.com) here."}))
}

func TestValidate_LastChunkExemptFromTrailingIncompleteness(t *testing.T) {
	v := NewValidator(nil)

	// A trailing fragment is only a violation when a later chunk exists
	// to carry its continuation.
	assert.True(t, v.Validate([]string{"An unterminated final fragment"}))
	assert.True(t, v.Validate([]string{"Complete first sentence.", "Unterminated trailing fragment"}))
}

func TestValidate_CitationReferencePasses(t *testing.T) {
	v := NewValidator(nil)

	assert.True(t, v.Validate([]string{"This claim is sourced. [3]", "Next chunk is fine."}))
}

func TestValidate_EmptyAndNilInputs(t *testing.T) {
	v := NewValidator(nil)

	assert.True(t, v.Validate(nil))
	assert.True(t, v.Validate([]string{}))
}

func TestValidate_ReturnsFalseOnInternalFailure(t *testing.T) {
	orig := Rules
	Rules = []Rule{{
		Name:   "broken",
		Detect: func(end, next string) bool { panic("rule failure") },
	}}
	defer func() { Rules = orig }()

	v := NewValidator(nil)

	// Validation is the one stage that fails closed: a result it could not
	// compute must read as invalid, never as a clean bill of health.
	assert.False(t, v.Validate([]string{"Question?", "Exclamation!"}))
}

func TestValidate_RepairedSequencePasses(t *testing.T) {
	e := NewEngine(nil)
	v := NewValidator(nil)

	fixed := e.Repair([]string{"First sentence. And an incomplete", "continuation here."}, 100)
	assert.True(t, v.Validate(fixed))
}
