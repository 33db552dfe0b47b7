package curly

// PartTypeTextDelta identifies incremental text parts in a structured
// stream, matching the AI SDK data stream protocol.
const PartTypeTextDelta = "text-delta"

// StreamPart is one event in a structured text stream. Parts with a
// Type other than PartTypeTextDelta carry no convertible text and pass
// through a Transform untouched.
type StreamPart struct {
	Type string
	Text string
}

// Transform is the configurable streaming converter. It wraps either a
// plain Stream or a MarkdownStream depending on options and adds a
// structured-part interface on top of the chunk interface.
type Transform struct {
	plain *Stream
	md    *MarkdownStream
}

// NewTransform creates a streaming converter. By default it is Markdown
// aware with front matter passthrough.
func NewTransform(opts ...Option) *Transform {
	cfg := applyOptions(opts)
	t := &Transform{}
	if cfg.markdown {
		t.md = newMarkdownStream(cfg.frontMatter)
	} else {
		t.plain = NewStream()
	}
	return t
}

// Feed converts one chunk, returning whatever output can be emitted so
// far.
func (t *Transform) Feed(chunk string) string {
	if t.md != nil {
		return t.md.Feed(chunk)
	}
	return t.plain.Feed(chunk)
}

// Flush resolves all buffered input. Call exactly once at end of stream.
func (t *Transform) Flush() string {
	if t.md != nil {
		return t.md.Flush()
	}
	return t.plain.Flush()
}

// Part converts one structured stream part. Non-text parts are returned
// unchanged with ok true. A text part whose conversion produced no
// output yet is withheld: ok is false and nothing should be forwarded.
func (t *Transform) Part(p StreamPart) (StreamPart, bool) {
	if p.Type != PartTypeTextDelta {
		return p, true
	}
	converted := t.Feed(p.Text)
	if converted == "" {
		return StreamPart{}, false
	}
	return StreamPart{Type: PartTypeTextDelta, Text: converted}, true
}

// Finish flushes the converter and returns a final text part carrying
// any withheld output. ok is false when nothing remained.
func (t *Transform) Finish() (StreamPart, bool) {
	tail := t.Flush()
	if tail == "" {
		return StreamPart{}, false
	}
	return StreamPart{Type: PartTypeTextDelta, Text: tail}, true
}
