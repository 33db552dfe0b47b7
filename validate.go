package curly

import (
	"errors"
	"unicode/utf8"
)

var (
	// ErrInvalidUTF8 is returned when the input is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")
	// ErrBinaryInput is returned when the input looks like binary data
	// rather than text.
	ErrBinaryInput = errors.New("input appears to be binary data")
)

const (
	// minBinarySample is the number of bytes to see before judging the
	// control character ratio.
	minBinarySample = 64
	// maxControlPct is the highest tolerated percentage of control
	// characters in text input.
	maxControlPct = 2
)

// ValidateInput reports whether text is convertible: valid UTF-8 and not
// binary. A NUL byte fails immediately; otherwise more than
// maxControlPct percent unusual control characters over at least
// minBinarySample bytes fails.
func ValidateInput(text string) error {
	var v validator
	rest, err := v.addBytes([]byte(text))
	if err != nil {
		return err
	}
	return v.finish(rest)
}

// validator performs incremental input validation over a chunked byte
// stream. addBytes consumes whole runes and returns any trailing bytes
// of an incomplete rune; callers prepend the remainder to the next
// chunk and pass it to finish at end of input.
type validator struct {
	total   int
	control int
}

func (v *validator) addBytes(b []byte) ([]byte, error) {
	end := len(b) - incompleteTail(b)
	i := 0
	for i < end {
		c := b[i]
		if c < utf8.RuneSelf {
			if err := v.addControl(isControlByte(c), c == 0); err != nil {
				return nil, err
			}
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:end])
		if r == utf8.RuneError && size == 1 {
			return nil, ErrInvalidUTF8
		}
		if err := v.addControl(isControlRune(r), false); err != nil {
			return nil, err
		}
		i += size
	}
	return b[end:], nil
}

func (v *validator) finish(rest []byte) error {
	if len(rest) > 0 {
		return ErrInvalidUTF8
	}
	if v.total >= minBinarySample && v.exceedsControlBudget() {
		return ErrBinaryInput
	}
	return nil
}

func (v *validator) addControl(control, nul bool) error {
	if nul {
		return ErrBinaryInput
	}
	v.total++
	if control {
		v.control++
	}
	if v.total >= minBinarySample && v.exceedsControlBudget() {
		return ErrBinaryInput
	}
	return nil
}

func (v *validator) exceedsControlBudget() bool {
	return v.control*100 > v.total*maxControlPct
}

// incompleteTail returns how many trailing bytes of b form the start of
// a multi-byte rune whose continuation has not arrived yet.
func incompleteTail(b []byte) int {
	return incompleteTailLen(bytesToString(b))
}

func isControlByte(c byte) bool {
	if c >= 0x20 && c != 0x7F {
		return false
	}
	switch c {
	case '\t', '\n', '\r':
		return false
	}
	return true
}

func isControlRune(r rune) bool {
	return r >= 0x80 && r <= 0x9F
}
