package curly

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"plain text", "hello 'world'\n", nil},
		{"multibyte", "café — naïve\n", nil},
		{"tabs and crlf", "a\tb\r\nc", nil},
		{"empty", "", nil},
		{"nul byte", "a\x00b", ErrBinaryInput},
		{"invalid utf8", "a\xffb", ErrInvalidUTF8},
		{"truncated rune", "caf\xc3", ErrInvalidUTF8},
		{"control heavy", strings.Repeat("\x01\x02", 64), ErrBinaryInput},
		{"mostly text few controls", strings.Repeat("a", 200) + "\x01", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateInput(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ValidateInput(%q) = %v, want %v", tc.in, err, tc.want)
			}
		})
	}
}
