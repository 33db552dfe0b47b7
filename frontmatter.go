package curly

import "strings"

// Front matter headers pass through verbatim: converting quotes inside
// YAML or TOML metadata would corrupt it. A header is an opening
// delimiter line (---, +++ or ;;;), a metadata-looking second line, and
// a matching closing delimiter line, all within the probe window. When
// the document does not produce a confirmed header inside the window, or
// the header never closes, everything is treated as body text.
const maxFrontMatterProbeBytes = 64 * 1024

type frontMatter struct {
	probe []byte
}

// process accumulates chunks until the opening lines either confirm or
// rule out a front matter header. Returns the input belonging to the
// body and whether the decision has been made; a confirmed header is
// written to out before returning.
func (f *frontMatter) process(chunk string, out *strings.Builder, conv *Stream) (string, bool) {
	f.probe = append(f.probe, chunk...)
	rest, decided := f.decide(false, out, conv)
	if !decided && len(f.probe) > maxFrontMatterProbeBytes {
		return f.take(), true
	}
	return rest, decided
}

// finish forces a decision at end of input. An unclosed header degrades
// to body text.
func (f *frontMatter) finish(out *strings.Builder, conv *Stream) string {
	rest, _ := f.decide(true, out, conv)
	return rest
}

func (f *frontMatter) decide(eof bool, out *strings.Builder, conv *Stream) (string, bool) {
	probe := bytesToString(f.probe)
	openLine, openNext, ok := nextLine(probe, 0, eof)
	if !ok {
		// The first line is still incomplete, but prose must not be
		// withheld once the partial line already rules a delimiter out.
		if !delimiterPrefix(probe) {
			return f.take(), true
		}
		return "", false
	}
	delim, isDelim := parseFrontMatterDelimiter(openLine)
	if !isDelim {
		return f.take(), true
	}
	secondLine, secondNext, ok := nextLine(probe, openNext, eof)
	if !ok {
		return "", false
	}
	if !frontMatterMetadataLikely(secondLine) {
		return f.take(), true
	}
	closeEnd, found := findFrontMatterClose(probe, secondNext, delim, eof)
	if !found {
		if eof {
			return f.take(), true
		}
		return "", false
	}
	if closeEnd > maxFrontMatterProbeBytes {
		return f.take(), true
	}
	head := probe[:closeEnd]
	out.WriteString(head)
	conv.observe(head)
	rest := string(f.probe[closeEnd:])
	f.probe = nil
	return rest, true
}

func (f *frontMatter) take() string {
	rest := string(f.probe)
	f.probe = nil
	return rest
}

// splitFrontMatter is the batch counterpart: it returns the verbatim
// header (empty when the document has none) and the body.
func splitFrontMatter(text string) (string, string) {
	openLine, openNext, ok := nextLine(text, 0, true)
	if !ok {
		return "", text
	}
	delim, isDelim := parseFrontMatterDelimiter(openLine)
	if !isDelim {
		return "", text
	}
	secondLine, secondNext, ok := nextLine(text, openNext, true)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return "", text
	}
	closeEnd, found := findFrontMatterClose(text, secondNext, delim, true)
	if !found || closeEnd > maxFrontMatterProbeBytes {
		return "", text
	}
	return text[:closeEnd], text[closeEnd:]
}

// nextLine returns the line starting at start without its terminator and
// the offset just past it. Without eof, a line is only complete once its
// newline has arrived.
func nextLine(text string, start int, eof bool) (string, int, bool) {
	if start >= len(text) {
		if eof {
			return "", start, true
		}
		return "", start, false
	}
	rel := strings.IndexByte(text[start:], '\n')
	if rel < 0 {
		if eof {
			return text[start:], len(text), true
		}
		return "", start, false
	}
	return text[start : start+rel], start + rel + 1, true
}

// delimiterPrefix reports whether a partial first line could still grow
// into an opening delimiter line, allowing for a leading BOM and a CR
// before the newline that has not arrived yet.
func delimiterPrefix(partial string) bool {
	s := strings.TrimSuffix(partial, "\r")
	for _, d := range [...]string{
		"---", "+++", ";;;",
		"\ufeff---", "\ufeff+++", "\ufeff;;;",
	} {
		if strings.HasPrefix(d, s) {
			return true
		}
	}
	return false
}

func parseFrontMatterDelimiter(line string) (string, bool) {
	line = trimCR(trimBOM(line))
	switch line {
	case "---", "+++", ";;;":
		return line, true
	}
	return "", false
}

// frontMatterMetadataLikely reports whether a line plausibly opens a
// metadata document rather than prose: a key-value separator or a JSON
// container.
func frontMatterMetadataLikely(line string) bool {
	line = strings.TrimSpace(trimCR(line))
	if line == "" {
		return false
	}
	if line[0] == '{' || line[0] == '[' {
		return true
	}
	return strings.ContainsAny(line, ":=")
}

// findFrontMatterClose scans line by line for the closing delimiter and
// returns the offset just past its newline (or end of input).
func findFrontMatterClose(text string, start int, delim string, eof bool) (int, bool) {
	for start < len(text) {
		line, next, ok := nextLine(text, start, eof)
		if !ok {
			return 0, false
		}
		if strings.TrimSpace(trimCR(line)) == delim {
			return next, true
		}
		start = next
	}
	return 0, false
}

func trimCR(line string) string {
	return strings.TrimSuffix(line, "\r")
}

func trimBOM(line string) string {
	return strings.TrimPrefix(line, "\uFEFF")
}
