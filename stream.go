package curly

import (
	"strings"
	"unicode/utf8"
)

// Stream converts straight quotes to curly quotes over chunked input. It
// carries just enough state across Feed calls to make the concatenated
// output equal to Convert over the concatenated input: the last emitted
// rune (classification context for the next chunk's first character), an
// optional buffered trailing single quote whose reading depends on input
// not yet seen, and any trailing bytes of a UTF-8 sequence split across a
// chunk boundary.
//
// Drive a Stream from exactly one goroutine: any number of Feed calls in
// order, then Flush once. An abandoned stream is simply discarded.
type Stream struct {
	last    rune
	started bool
	pending bool // a trailing straight single quote awaits its next rune
	tail    []byte
	tailArr [utf8.UTFMax]byte
}

// NewStream creates a streaming converter. Instances are cheap; create one
// per logical stream rather than sharing.
func NewStream() *Stream {
	s := &Stream{}
	s.tail = s.tailArr[:0]
	return s
}

// Reset clears stream state for reuse with a new logical stream.
func (s *Stream) Reset() {
	s.last = 0
	s.started = false
	s.pending = false
	s.tail = s.tailArr[:0]
}

// Feed converts one chunk and returns the converted text emitted so far.
// A trailing straight single quote is withheld until the next Feed or
// Flush supplies its context. An empty chunk returns empty output and
// changes no state.
func (s *Stream) Feed(chunk string) string {
	if chunk == "" {
		return ""
	}
	data := chunk
	if s.pending || len(s.tail) > 0 {
		var b strings.Builder
		b.Grow(1 + len(s.tail) + len(chunk))
		if s.pending {
			b.WriteByte(StraightSingle)
			s.pending = false
		}
		b.Write(s.tail)
		s.tail = s.tailArr[:0]
		b.WriteString(chunk)
		data = b.String()
	}
	if n := incompleteTailLen(data); n > 0 {
		s.tail = append(s.tailArr[:0], data[len(data)-n:]...)
		data = data[:len(data)-n]
	}
	var out strings.Builder
	out.Grow(len(data) + 8)
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRuneInString(data[i:])
		if r == StraightSingle && i+size == len(data) {
			s.pending = true
			break
		}
		if r == utf8.RuneError && size == 1 {
			out.WriteByte(data[i])
			s.last = r
			s.started = true
			i++
			continue
		}
		var next rune
		if i+size < len(data) {
			next, _ = utf8.DecodeRuneInString(data[i+size:])
		}
		c := Classify(r, s.last, next, !s.started)
		out.WriteRune(c)
		s.last = c
		s.started = true
		i += size
	}
	return out.String()
}

// Flush releases any buffered input verbatim and must be called exactly
// once at the end of the stream. A withheld trailing single quote is
// emitted unconverted: with no further context it is already in its final
// form.
func (s *Stream) Flush() string {
	var out strings.Builder
	if s.pending {
		out.WriteByte(StraightSingle)
		s.pending = false
	}
	if len(s.tail) > 0 {
		out.Write(s.tail)
		s.tail = s.tailArr[:0]
	}
	return out.String()
}

// resolve classifies a withheld trailing single quote against a known next
// rune. Used by the Markdown tracker when the character after the quote is
// known out of band (a code-span delimiter).
func (s *Stream) resolve(next rune) string {
	if !s.pending {
		return ""
	}
	s.pending = false
	c := Classify(StraightSingle, s.last, next, !s.started)
	s.last = c
	s.started = true
	return string(c)
}

// observe updates classification context after text was emitted verbatim,
// bypassing conversion (code regions, front matter).
func (s *Stream) observe(text string) {
	if text == "" {
		return
	}
	r, _ := utf8.DecodeLastRuneInString(text)
	s.last = r
	s.started = true
}

// incompleteTailLen returns how many trailing bytes of s form the start of
// a UTF-8 sequence whose remaining bytes have not arrived yet.
func incompleteTailLen(s string) int {
	n := len(s)
	for back := 1; back < utf8.UTFMax && back <= n; back++ {
		b := s[n-back]
		if b < 0x80 {
			return 0
		}
		if b >= 0xC0 {
			if runeLenFromLead(b) > back {
				return back
			}
			return 0
		}
	}
	return 0
}

func runeLenFromLead(b byte) int {
	switch {
	case b >= 0xF0:
		return 4
	case b >= 0xE0:
		return 3
	case b >= 0xC0:
		return 2
	}
	return 1
}
