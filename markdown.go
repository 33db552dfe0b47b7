package curly

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// A fenced block runs from a backtick run of three or more to the
	// next such run, newlines included.
	fencedRe = regexp.MustCompile("(?s)`{3,}.*?`{3,}")

	// An indented block is one or more lines starting with four spaces
	// or a tab, with blank lines permitted between them. The leading
	// newline in the match stays outside the protected region.
	indentedRe = regexp.MustCompile("(?:^|\n)((?: {4}|\t)[^\n]*(?:\n(?:[ \t]*\n)*(?: {4}|\t)[^\n]*)*)")
)

// ConvertMarkdown converts straight quotes to curly quotes in the prose
// of a Markdown document. Fenced code blocks, inline code spans,
// indented code blocks and a front matter header are preserved byte for
// byte. Text without straight quotes is returned unchanged.
func ConvertMarkdown(text string) string {
	if !hasStraightQuotes(text) {
		return text
	}
	head, body := splitFrontMatter(text)
	return head + convertMarkdownBody(body)
}

// convertMarkdownBody swaps each code region for a placeholder, converts
// the remaining prose, and restores the regions. Restoration runs in
// reverse creation order so that a placeholder nested inside a later
// region (an inline span captured again by the indented pass) resolves
// to its original bytes.
func convertMarkdownBody(body string) string {
	var v codeVault
	t := fencedRe.ReplaceAllStringFunc(body, v.protect)
	t = protectInlineCode(t, &v)
	t = indentedRe.ReplaceAllStringFunc(t, func(match string) string {
		if match[0] == '\n' {
			return "\n" + v.protect(match[1:])
		}
		return v.protect(match)
	})
	return v.restore(Convert(t))
}

type codeVault struct {
	blocks []string
}

func (v *codeVault) protect(block string) string {
	v.blocks = append(v.blocks, block)
	return placeholder(len(v.blocks) - 1)
}

func (v *codeVault) restore(text string) string {
	for i := len(v.blocks) - 1; i >= 0; i-- {
		text = strings.ReplaceAll(text, placeholder(i), v.blocks[i])
	}
	return text
}

func placeholder(n int) string {
	return fmt.Sprintf("<<CURLY_CODE_%d>>", n)
}

// protectInlineCode vaults inline code spans. An opener run of k
// backticks closes at the first later run of k; when no such run exists
// the opener retries at shorter lengths, so a double backtick always
// matches at least an empty span while a lone unmatched backtick stays
// prose.
func protectInlineCode(text string, v *codeVault) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		if text[i] != '`' {
			rel := strings.IndexByte(text[i:], '`')
			if rel < 0 {
				out.WriteString(text[i:])
				break
			}
			out.WriteString(text[i : i+rel])
			i += rel
			continue
		}
		k := backtickRunLen(text[i:])
		matched := false
		for n := k; n >= 1; n-- {
			rel := indexBacktickRun(text[i+n:], n)
			if rel < 0 {
				continue
			}
			end := i + n + rel + n
			out.WriteString(v.protect(text[i:end]))
			i = end
			matched = true
			break
		}
		if !matched {
			out.WriteString(text[i : i+k])
			i += k
		}
	}
	return out.String()
}
