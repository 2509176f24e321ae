package textvec

import (
	"strings"
	"unicode"
)

// minTokenLen drops single-character tokens.
const minTokenLen = 2

// isWordRune accepts letters, underscore and every Unicode numeric rune,
// including vulgar fractions, superscripts and roman numerals.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize lowercases text and splits it into runs of word characters
// (letters, numbers, underscore) at least two runes long. Stopwords are removed.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < minTokenLen {
			continue
		}
		if IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}
