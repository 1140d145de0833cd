package scoring

import (
	"regexp"
	"strings"
)

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)
	spaces   = regexp.MustCompile(`\s+`)
)

// NormalizeText lowercases, collapses newlines, strips everything outside
// [a-z0-9 ] and collapses repeated whitespace. ASCII-only on purpose:
// accented characters and punctuation are destroyed, which keeps the token
// space tiny for lexicon matching.
func NormalizeText(raw string) string {
	s := strings.ToLower(raw)
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	s = nonAlnum.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// TokenizeText splits normalized text on whitespace and additionally emits
// every adjacent-word bigram, so two-word lexicon phrases ("rate hike") can
// be matched as exact tokens instead of substrings.
func TokenizeText(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	tokens := make([]string, 0, 2*len(words)-1)
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}
