package curly

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// SimulateRequest describes a simulated streaming conversion: the input
// is replayed in small rune-sized chunks with a delay between them, the
// way text arrives from an LLM token stream.
type SimulateRequest struct {
	Reader    io.Reader
	Writer    io.Writer
	ChunkSize int           // runes per chunk, <= 0 means 3
	Delay     time.Duration // pause between chunks
	Options   []Option
}

// Simulate reads all of Reader, then feeds it through a streaming
// converter chunk by chunk, writing converted output as it resolves.
func Simulate(req SimulateRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("simulate: nil reader")
	}
	if req.Writer == nil {
		return fmt.Errorf("simulate: nil writer")
	}
	data, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("simulate: read: %w", err)
	}
	text := string(data)
	if err := ValidateInput(text); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}
	chunkRunes := req.ChunkSize
	if chunkRunes <= 0 {
		chunkRunes = 3
	}
	t := NewTransform(req.Options...)
	for len(text) > 0 {
		n, runes := 0, 0
		for n < len(text) && runes < chunkRunes {
			_, size := utf8.DecodeRuneInString(text[n:])
			n += size
			runes++
		}
		if out := t.Feed(text[:n]); out != "" {
			if _, err := io.WriteString(req.Writer, out); err != nil {
				return fmt.Errorf("simulate: write: %w", err)
			}
		}
		text = text[n:]
		if req.Delay > 0 && len(text) > 0 {
			time.Sleep(req.Delay)
		}
	}
	if out := t.Flush(); out != "" {
		if _, err := io.WriteString(req.Writer, out); err != nil {
			return fmt.Errorf("simulate: write: %w", err)
		}
	}
	return nil
}
