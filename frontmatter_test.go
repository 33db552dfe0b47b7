package curly

import "testing"

func TestSplitFrontMatter(t *testing.T) {
	cases := []struct {
		name string
		in   string
		head string
	}{
		{"yaml", "---\ntitle: x\n---\nbody", "---\ntitle: x\n---\n"},
		{"toml", "+++\nname = \"x\"\n+++\nbody", "+++\nname = \"x\"\n+++\n"},
		{"semicolons", ";;;\nkey: v\n;;;\nbody", ";;;\nkey: v\n;;;\n"},
		{"json-ish", "---\n{\"a\": 1}\n---\nbody", "---\n{\"a\": 1}\n---\n"},
		{"crlf", "---\r\ntitle: x\r\n---\r\nbody", "---\r\ntitle: x\r\n---\r\n"},
		{"bom before delimiter", "\uFEFF---\ntitle: x\n---\nbody", "\uFEFF---\ntitle: x\n---\n"},
		{"closing delimiter padded", "---\ntitle: x\n  ---  \nbody", "---\ntitle: x\n  ---  \n"},
		{"not a delimiter", "--\ntitle: x\n--\nbody", ""},
		{"second line not metadata", "---\njust prose\n---\nbody", ""},
		{"second line blank", "---\n\n---\nbody", ""},
		{"unclosed", "---\ntitle: x\nbody keeps going", ""},
		{"empty", "", ""},
		{"plain text", "hello world", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			head, rest := splitFrontMatter(tc.in)
			if head != tc.head {
				t.Fatalf("head = %q, want %q", head, tc.head)
			}
			if head+rest != tc.in {
				t.Fatalf("head+rest = %q, input was %q", head+rest, tc.in)
			}
		})
	}
}

func TestDelimiterPrefix(t *testing.T) {
	cases := []struct {
		partial string
		want    bool
	}{
		{"", true},
		{"-", true},
		{"--", true},
		{"---", true},
		{"---\r", true},
		{"+", true},
		{";;", true},
		{"\ufeff--", true},
		{"\ufeff"[:2], true}, // BOM itself split across chunks
		{"----", false},
		{"don", false},
		{"It's fine", false},
		{"-x", false},
		{" ---", false},
	}
	for _, tc := range cases {
		if got := delimiterPrefix(tc.partial); got != tc.want {
			t.Errorf("delimiterPrefix(%q) = %v, want %v", tc.partial, got, tc.want)
		}
	}
}

func TestFrontMatterMetadataLikely(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"title: x", true},
		{"name = 1", true},
		{"{", true},
		{"[a]", true},
		{"just words", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := frontMatterMetadataLikely(tc.line); got != tc.want {
			t.Errorf("frontMatterMetadataLikely(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
