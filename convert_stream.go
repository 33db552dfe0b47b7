package curly

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// ConvertRequest describes one reader-to-writer conversion.
type ConvertRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Options []Option
}

var readerPool = sync.Pool{
	New: func() any {
		return bufio.NewReaderSize(nil, 4096)
	},
}

// ConvertStream copies Reader to Writer, converting straight quotes to
// curly quotes on the way. Output is written incrementally as chunks are
// resolved, so it works on unbounded streams. Input is validated while
// streaming: invalid UTF-8 or binary-looking data aborts with
// ErrInvalidUTF8 or ErrBinaryInput after possibly partial output.
func ConvertStream(req ConvertRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("convert: nil reader")
	}
	if req.Writer == nil {
		return fmt.Errorf("convert: nil writer")
	}
	br := readerPool.Get().(*bufio.Reader)
	br.Reset(req.Reader)
	defer readerPool.Put(br)

	t := NewTransform(req.Options...)
	var val validator
	var valRest []byte
	buf := make([]byte, 4096)
	for {
		n, readErr := br.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			merged := chunk
			if len(valRest) > 0 {
				merged = append(valRest, chunk...)
			}
			rest, err := val.addBytes(merged)
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}
			valRest = append(valRest[:0], rest...)
			if out := t.Feed(string(chunk)); out != "" {
				if _, err := io.WriteString(req.Writer, out); err != nil {
					return fmt.Errorf("convert: write: %w", err)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("convert: read: %w", readErr)
		}
	}
	if err := val.finish(valRest); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if out := t.Flush(); out != "" {
		if _, err := io.WriteString(req.Writer, out); err != nil {
			return fmt.Errorf("convert: write: %w", err)
		}
	}
	return nil
}
