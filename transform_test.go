package curly

import (
	"strings"
	"testing"
)

func TestTransformOptions(t *testing.T) {
	in := "`'a'` it's\n"

	md := NewTransform()
	var b strings.Builder
	b.WriteString(md.Feed(in))
	b.WriteString(md.Flush())
	if got := b.String(); got != "`'a'` it’s\n" {
		t.Errorf("markdown aware: got %q", got)
	}

	plain := NewTransform(WithMarkdown(false))
	b.Reset()
	b.WriteString(plain.Feed(in))
	b.WriteString(plain.Flush())
	if got := b.String(); got != "`’a’` it’s\n" {
		t.Errorf("markdown disabled: got %q", got)
	}
}

func TestTransformFrontMatterDisabled(t *testing.T) {
	in := "---\ntitle: 'x'\n---\nbody\n"
	tr := NewTransform(WithFrontMatter(false))
	var b strings.Builder
	b.WriteString(tr.Feed(in))
	b.WriteString(tr.Flush())
	if got := b.String(); !strings.Contains(got, "‘x’") {
		t.Errorf("front matter should convert when passthrough is off: %q", got)
	}
}

// Output must not be withheld while the first line is still incomplete
// once the text already cannot open a front matter header.
func TestTransformEmitsProseBeforeFirstNewline(t *testing.T) {
	tr := NewTransform()
	if got := tr.Feed("Hello"); got != "Hello" {
		t.Fatalf("first chunk withheld: got %q, want %q", got, "Hello")
	}
	if got := tr.Feed(", 'world' again"); got != ", ‘world’ again" {
		t.Fatalf("second chunk: got %q", got)
	}
	if got := tr.Flush(); got != "" {
		t.Fatalf("flush: got %q", got)
	}
}

func TestTransformParts(t *testing.T) {
	tr := NewTransform()

	tool := StreamPart{Type: "tool-call", Text: `{"arg": "don't"}`}
	if got, ok := tr.Part(tool); !ok || got != tool {
		t.Fatalf("non-text part changed: %+v ok=%v", got, ok)
	}

	if got, ok := tr.Part(StreamPart{Type: PartTypeTextDelta, Text: "don"}); !ok || got.Text != "don" {
		t.Fatalf("first delta: %+v ok=%v", got, ok)
	}
	// a lone quote has no context yet and must be withheld
	if _, ok := tr.Part(StreamPart{Type: PartTypeTextDelta, Text: "'"}); ok {
		t.Fatal("quote-only delta should be withheld")
	}
	if got, ok := tr.Part(StreamPart{Type: PartTypeTextDelta, Text: "t go"}); !ok || got.Text != "’t go" {
		t.Fatalf("third delta: %+v ok=%v", got, ok)
	}
	if part, ok := tr.Finish(); ok {
		t.Fatalf("nothing should remain at finish, got %+v", part)
	}
}

func TestTransformFinishReleasesPending(t *testing.T) {
	tr := NewTransform()
	tr.Part(StreamPart{Type: PartTypeTextDelta, Text: "end '"})
	part, ok := tr.Finish()
	if !ok || part.Type != PartTypeTextDelta || part.Text != "'" {
		t.Fatalf("finish: %+v ok=%v", part, ok)
	}
}
