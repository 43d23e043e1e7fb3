// Package caption assembles a natural-language caption from selected tags
// and derives the final deduplicated tag set from it.
package caption

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// Fallback is the caption returned when no tags were selected.
	Fallback = "photo"

	// MaxExtras caps how many tags beyond the lead appear in the caption.
	MaxExtras = 4

	// MaxTags caps the merged tag set.
	MaxTags = 24

	// minTokenLen is the shortest token kept by Tokens.
	minTokenLen = 3
)

// stopwords are closed-class words irrelevant to tagging, plus the literal
// words the caption template itself introduces.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "and": {}, "in": {}, "at": {},
	"on": {}, "for": {}, "with": {}, "to": {}, "from": {}, "by": {},
	"scene": {}, "photo": {},
}

// Result is the terminal output of the tagging pipeline.
type Result struct {
	Caption string   `json:"caption"`
	Tags    []string `json:"tags"`
}

// Build renders an ordered tag list into a single caption string.
// Deterministic: same input order, same caption.
func Build(tags []string) string {
	if len(tags) == 0 {
		return Fallback
	}

	lead := tags[0]
	extras := tags[1:]
	if len(extras) > MaxExtras {
		extras = extras[:MaxExtras]
	}

	if len(extras) == 0 {
		return fmt.Sprintf("photo of %s", lead)
	}
	return fmt.Sprintf("photo of %s with %s", lead, strings.Join(extras, ", "))
}

// Tokens extracts normalized lexical tokens from a caption: lower-cased
// maximal alphanumeric runs, minus short tokens and stopwords, deduplicated
// in first-occurrence order.
func Tokens(caption string) []string {
	words := splitAlnum(strings.ToLower(caption))

	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) < minTokenLen {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Merge combines selected tags and extracted tokens into the final tag set:
// lower-cased, trimmed, no empties, no duplicates, first occurrence wins,
// capped at MaxTags.
func Merge(tags, extraTokens []string) []string {
	merged := make([]string, 0, len(tags)+len(extraTokens))
	seen := make(map[string]struct{}, len(tags)+len(extraTokens))

	for _, t := range append(append([]string{}, tags...), extraTokens...) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		merged = append(merged, t)
		if len(merged) == MaxTags {
			break
		}
	}
	return merged
}

// Compose runs the caption stage end to end: build the caption from the
// selected tags, mine it for extra tokens, and merge both into the final
// tag set.
func Compose(tags []string) *Result {
	c := Build(tags)
	return &Result{
		Caption: c,
		Tags:    Merge(tags, Tokens(c)),
	}
}

// splitAlnum splits s into maximal runs of letters and digits,
// discarding everything else.
func splitAlnum(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
