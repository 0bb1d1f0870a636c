package mdtrans

import (
	"bytes"
	"errors"
	"unicode/utf8"
)

// Input rejected by ValidateInput. Render and RenderString return these
// unwrapped so callers can compare with errors.Is.
var (
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	ErrBinaryInput = errors.New("binary input detected")
)

// Documents shorter than binarySniffLen are only rejected for NUL bytes.
// Longer ones are binary once control bytes reach binaryControlPercent.
const (
	binarySniffLen       = 64
	binaryControlPercent = 2
)

// ValidateInput checks that src is UTF-8 text before it reaches the parser.
// Renderers rely on it: text and ansi mark code lines with NUL, which a
// validated document never contains.
func ValidateInput(src []byte) error {
	if !utf8.Valid(src) {
		return ErrInvalidUTF8
	}
	if bytes.IndexByte(src, 0) >= 0 {
		return ErrBinaryInput
	}
	if len(src) < binarySniffLen {
		return nil
	}
	if controlBytes(src)*100 >= len(src)*binaryControlPercent {
		return ErrBinaryInput
	}
	return nil
}

func controlBytes(src []byte) int {
	n := 0
	for _, c := range src {
		switch {
		case c == '\t', c == '\n', c == '\v', c == '\f', c == '\r':
		case c < 0x20, c == 0x7f:
			n++
		}
	}
	return n
}
