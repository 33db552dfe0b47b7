package curly

import (
	"strings"
	"unsafe"
)

type regionMode uint8

const (
	modeProse regionMode = iota
	modeFence
	modeInline
)

// MarkdownStream converts straight quotes to curly quotes over chunked
// Markdown, leaving code regions untouched. Prose is delegated to an
// embedded Stream; fenced code blocks, inline code spans, and indented
// code lines are echoed byte for byte. Delimiters split across chunk
// boundaries are buffered until they can be classified: a backtick run of
// unknown length, a fence opener awaiting its newline, an inline opener
// awaiting its closer, a fence closer awaiting confirmation, and leading
// spaces that may or may not become an indented code line all stay in the
// carry buffer.
//
// Like Stream, an instance serves one logical stream: Feed calls in order,
// then one Flush.
type MarkdownStream struct {
	conv  Stream
	front *frontMatter

	mode        regionMode
	atLineStart bool
	indentCode  bool
	fenceLen    int
	inlineLen   int
	searchFrom  int

	buf    []byte
	bufArr [256]byte
}

// NewMarkdownStream creates a Markdown-aware streaming converter with
// front matter passthrough enabled.
func NewMarkdownStream() *MarkdownStream {
	return newMarkdownStream(true)
}

func newMarkdownStream(frontMatterEnabled bool) *MarkdownStream {
	m := &MarkdownStream{atLineStart: true}
	m.buf = m.bufArr[:0]
	m.conv.tail = m.conv.tailArr[:0]
	if frontMatterEnabled {
		m.front = &frontMatter{}
	}
	return m
}

// Feed converts one chunk and returns the output that could be emitted so
// far. An empty chunk returns empty output and changes no state.
func (m *MarkdownStream) Feed(chunk string) string {
	if chunk == "" {
		return ""
	}
	var out strings.Builder
	if m.front != nil {
		rest, decided := m.front.process(chunk, &out, &m.conv)
		if !decided {
			return out.String()
		}
		m.front = nil
		chunk = rest
	}
	m.buf = append(m.buf, chunk...)
	m.scan(&out, false)
	return out.String()
}

// Flush resolves all remaining buffered input and must be called exactly
// once at the end of the stream. Content inside an unterminated fence or
// inline span is emitted verbatim (the region extends to end of input);
// other buffered prose, such as a backtick run that never became a
// delimiter, is converted normally. A withheld trailing single quote is
// emitted unconverted.
func (m *MarkdownStream) Flush() string {
	var out strings.Builder
	if m.front != nil {
		rest := m.front.finish(&out, &m.conv)
		m.front = nil
		m.buf = append(m.buf, rest...)
	}
	m.scan(&out, true)
	if len(m.buf) > 0 {
		rest := string(m.buf)
		m.buf = m.buf[:0]
		switch m.mode {
		case modeFence, modeInline:
			out.WriteString(rest)
		default:
			out.WriteString(m.conv.Feed(rest))
		}
	}
	out.WriteString(m.conv.Flush())
	return out.String()
}

func (m *MarkdownStream) scan(out *strings.Builder, eof bool) {
	data := bytesToString(m.buf)
	i := 0
	for i < len(data) {
		var n int
		var wait bool
		switch m.mode {
		case modeFence:
			n, wait = m.scanFence(data, i, out, eof)
		case modeInline:
			n, wait = m.scanInline(data, i, out)
		default:
			n, wait = m.scanProse(data, i, out, eof)
		}
		i += n
		if wait {
			break
		}
	}
	m.buf = m.buf[:copy(m.buf, m.buf[i:])]
}

func (m *MarkdownStream) scanProse(data string, i int, out *strings.Builder, eof bool) (int, bool) {
	if m.indentCode {
		rel := strings.IndexByte(data[i:], '\n')
		if rel < 0 {
			m.emitVerbatim(data[i:], out)
			return len(data) - i, false
		}
		m.emitVerbatim(data[i:i+rel+1], out)
		m.indentCode = false
		m.atLineStart = true
		return rel + 1, false
	}
	if m.atLineStart {
		switch data[i] {
		case '\t':
			m.indentCode = true
			m.atLineStart = false
			return 0, false
		case ' ':
			p := 1
			for i+p < len(data) && p < 4 && data[i+p] == ' ' {
				p++
			}
			if p == 4 {
				m.indentCode = true
				m.atLineStart = false
				return 0, false
			}
			if i+p == len(data) && !eof {
				// may still grow into an indented code line
				return 0, true
			}
			out.WriteString(m.conv.Feed(data[i : i+p]))
			m.atLineStart = false
			return p, false
		}
	}
	if data[i] == '`' {
		out.WriteString(m.conv.resolve('`'))
		k := backtickRunLen(data[i:])
		if i+k == len(data) && !eof {
			return 0, true
		}
		if m.atLineStart && k >= 3 {
			// fence opener once its line is complete
			rel := strings.IndexByte(data[i+k:], '\n')
			if rel < 0 {
				// at end of input this degrades to ordinary prose
				return 0, true
			}
			end := i + k + rel + 1
			m.emitVerbatim(data[i:end], out)
			m.mode = modeFence
			m.fenceLen = k
			m.atLineStart = true
			return end - i, false
		}
		rel := indexBacktickRun(data[i+k:], k)
		if rel < 0 {
			m.mode = modeInline
			m.inlineLen = k
			m.searchFrom = k
			return 0, true
		}
		end := i + k + rel + k
		m.emitVerbatim(data[i:end], out)
		m.atLineStart = false
		return end - i, false
	}
	j := i
	nl := false
	for j < len(data) {
		if data[j] == '`' {
			break
		}
		if data[j] == '\n' {
			j++
			nl = true
			break
		}
		j++
	}
	out.WriteString(m.conv.Feed(data[i:j]))
	m.atLineStart = nl
	return j - i, false
}

func (m *MarkdownStream) scanFence(data string, i int, out *strings.Builder, eof bool) (int, bool) {
	if m.atLineStart && data[i] == '`' {
		k := backtickRunLen(data[i:])
		if i+k == len(data) && !eof {
			return 0, true
		}
		if k >= m.fenceLen {
			j := i + k
			for j < len(data) && (data[j] == ' ' || data[j] == '\t' || data[j] == '\r') {
				j++
			}
			if j == len(data) {
				if !eof {
					return 0, true
				}
				// closing run at end of input
				m.emitVerbatim(data[i:], out)
				m.mode = modeProse
				m.atLineStart = true
				return len(data) - i, false
			}
			if data[j] == '\n' {
				m.emitVerbatim(data[i:j+1], out)
				m.mode = modeProse
				m.atLineStart = true
				return j + 1 - i, false
			}
			// trailing non-whitespace: ordinary fence content
			m.emitVerbatim(data[i:j], out)
			m.atLineStart = false
			return j - i, false
		}
		m.emitVerbatim(data[i:i+k], out)
		m.atLineStart = false
		return k, false
	}
	rel := strings.IndexByte(data[i:], '\n')
	if rel < 0 {
		m.emitVerbatim(data[i:], out)
		m.atLineStart = false
		return len(data) - i, false
	}
	m.emitVerbatim(data[i:i+rel+1], out)
	m.atLineStart = true
	return rel + 1, false
}

func (m *MarkdownStream) scanInline(data string, i int, out *strings.Builder) (int, bool) {
	region := data[i:]
	from := m.searchFrom
	if from < m.inlineLen {
		from = m.inlineLen
	}
	if from > len(region) {
		from = len(region)
	}
	rel := indexBacktickRun(region[from:], m.inlineLen)
	if rel < 0 {
		if back := len(region) - (m.inlineLen - 1); back > from {
			m.searchFrom = back
		} else {
			m.searchFrom = from
		}
		return 0, true
	}
	end := from + rel + m.inlineLen
	m.emitVerbatim(region[:end], out)
	m.mode = modeProse
	m.atLineStart = false
	m.searchFrom = 0
	return end, false
}

func (m *MarkdownStream) emitVerbatim(text string, out *strings.Builder) {
	out.WriteString(text)
	m.conv.observe(text)
}

func backtickRunLen(s string) int {
	n := 0
	for n < len(s) && s[n] == '`' {
		n++
	}
	return n
}

// indexBacktickRun returns the first index in s where n consecutive
// backticks occur, matching the batch path's lazy closer search: a run
// inside a longer run counts.
func indexBacktickRun(s string, n int) int {
	if n <= 0 || n > len(s) {
		return -1
	}
	return strings.Index(s, strings.Repeat("`", n))
}

func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
