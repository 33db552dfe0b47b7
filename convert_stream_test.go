package curly

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvertStream(t *testing.T) {
	doc := "She said \"hi\".\n\n```go\nx := 'a'\n```\n\nIt's `'done'` now.\n"
	var out bytes.Buffer
	err := ConvertStream(ConvertRequest{
		Reader: strings.NewReader(doc),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("ConvertStream: %v", err)
	}
	if diff := cmp.Diff(ConvertMarkdown(doc), out.String()); diff != "" {
		t.Errorf("output mismatch (-batch +stream):\n%s", diff)
	}
}

func TestConvertStreamOptions(t *testing.T) {
	doc := "`'a'`\n"
	var out bytes.Buffer
	err := ConvertStream(ConvertRequest{
		Reader:  strings.NewReader(doc),
		Writer:  &out,
		Options: []Option{WithMarkdown(false)},
	})
	if err != nil {
		t.Fatalf("ConvertStream: %v", err)
	}
	if got := out.String(); got != "`’a’`\n" {
		t.Errorf("got %q", got)
	}
}

func TestConvertStreamNilArgs(t *testing.T) {
	if err := ConvertStream(ConvertRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Error("nil reader accepted")
	}
	if err := ConvertStream(ConvertRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Error("nil writer accepted")
	}
}

func TestConvertStreamRejectsBinary(t *testing.T) {
	var out bytes.Buffer
	err := ConvertStream(ConvertRequest{
		Reader: bytes.NewReader([]byte{'a', 0x00, 'b'}),
		Writer: &out,
	})
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("got %v, want ErrBinaryInput", err)
	}
}

func TestConvertStreamRejectsInvalidUTF8(t *testing.T) {
	var out bytes.Buffer
	err := ConvertStream(ConvertRequest{
		Reader: bytes.NewReader([]byte{'a', 0xff, 0xfe, 'b'}),
		Writer: &out,
	})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("got %v, want ErrInvalidUTF8", err)
	}
}

func TestSimulate(t *testing.T) {
	doc := "It's a 'test' with `'code'` inside.\n"
	var out bytes.Buffer
	err := Simulate(SimulateRequest{
		Reader:    strings.NewReader(doc),
		Writer:    &out,
		ChunkSize: 2,
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got := out.String(); got != ConvertMarkdown(doc) {
		t.Errorf("got %q, want %q", got, ConvertMarkdown(doc))
	}
}
