// Package layout arranges rendered text blocks for terminal and plain text
// output.
package layout

import (
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// Wrap word-wraps s to width printable columns. ANSI sequences do not count
// towards the width. A width of zero or less disables wrapping.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// Hang wraps s so that the first line starts with marker and continuation
// lines are indented to align with the text after it.
func Hang(marker, s string, width int) string {
	w := ansi.PrintableRuneWidth(marker)
	if width > 0 {
		width -= w
		if width < 1 {
			width = 1
		}
	}
	first := true
	pad := strings.Repeat(" ", w)
	iw := indent.NewWriter(1, func(out io.Writer) {
		if first {
			first = false
			_, _ = io.WriteString(out, marker)
			return
		}
		_, _ = io.WriteString(out, pad)
	})
	_, _ = iw.Write([]byte(Wrap(s, width)))
	if first {
		return marker
	}
	return iw.String()
}

// Prefix wraps s to width and starts every resulting line with prefix.
func Prefix(s, prefix string, width int) string {
	if width > 0 {
		width -= ansi.PrintableRuneWidth(prefix)
		if width < 1 {
			width = 1
		}
	}
	lines := strings.Split(Wrap(s, width), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// Indent prefixes every non-empty line of s with n spaces.
func Indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}

// verbatimMark starts lines that Tidy must copy unchanged. Validated input
// never contains NUL, so the mark cannot collide with document text.
const verbatimMark = "\x00"

// Verbatim marks every line of s so that Tidy keeps it byte for byte,
// including blank lines and trailing whitespace.
func Verbatim(s string) string {
	if s == "" {
		return s
	}
	return verbatimMark + strings.ReplaceAll(s, "\n", "\n"+verbatimMark)
}

// Tidy drops leading and trailing blank lines, collapses runs of blank lines
// into one and terminates the text with a single newline. Lines marked by
// Verbatim are copied as they are. Empty input stays empty.
func Tidy(s string) string {
	lines := strings.Split(s, "\n")
	var b strings.Builder
	blank := false
	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, verbatimMark); ok {
			if blank {
				b.WriteByte('\n')
				blank = false
			}
			b.WriteString(rest)
			b.WriteByte('\n')
			continue
		}
		if strings.TrimSpace(line) == "" {
			blank = b.Len() > 0
			continue
		}
		if blank {
			b.WriteByte('\n')
			blank = false
		}
		b.WriteString(strings.TrimRight(line, " \t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Width reports the printable width of s, ignoring ANSI sequences.
func Width(s string) int {
	return ansi.PrintableRuneWidth(s)
}
