// Package curly converts straight quotation marks to typographically
// correct curly quotes.
//
// This package is built for streaming: the same single-pass classifier that
// drives the batch Convert function also drives stateful converters that
// accept arbitrarily sized chunks, as produced by token-by-token text
// generation, and emit output identical to batch conversion regardless of
// where chunk boundaries fall. The Markdown-aware converters recognize
// fenced code blocks, inline code spans, and indented code and pass them
// through untouched, even when a delimiter is split across chunks.
//
// Core properties:
//   - Streaming output matches batch output for every chunking
//   - Code regions are preserved byte for byte
//   - Ambiguity is handled by bounded buffering, never by failure
//   - One classification context: character, previous output, next input
//
// Example:
//
//	t := curly.NewTransform()
//	var out strings.Builder
//	for _, chunk := range chunks {
//		out.WriteString(t.Feed(chunk))
//	}
//	out.WriteString(t.Flush())
//
// A converter instance serves exactly one logical stream and is not safe
// for concurrent use.
package curly
