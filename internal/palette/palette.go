// Package palette holds the ANSI color sets behind the built-in terminal
// themes.
package palette

import (
	"fmt"
	"strconv"
)

const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Faint     = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
)

// Palette is a set of ANSI foreground prefixes, one per semantic role.
type Palette struct {
	Text           string
	H1             string
	H2             string
	H3             string
	H4             string
	H5             string
	H6             string
	Emphasis       string
	Strong         string
	EmphasisStrong string
	CodeInline     string
	CodeBlock      string
	Quote          string
	ListMarker     string
	LinkText       string
	LinkURL        string
	ThematicBreak  string
	Comment        string
}

// FG returns the 24-bit foreground sequence for a "#rrggbb" color. Malformed
// input yields an empty prefix.
func FG(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

// FG256 returns the 256-color foreground sequence for n.
func FG256(n uint8) string {
	return "\x1b[38;5;" + strconv.Itoa(int(n)) + "m"
}

// scheme builds a palette from a small set of base colors.
func scheme(text, accent, accent2, accent3, muted, code, link string) Palette {
	return Palette{
		Text:           FG(text),
		H1:             Bold + FG(accent),
		H2:             Bold + FG(accent2),
		H3:             Bold + FG(accent3),
		H4:             FG(accent),
		H5:             FG(accent2),
		H6:             FG(muted),
		Emphasis:       FG(accent3),
		Strong:         FG(accent2),
		EmphasisStrong: FG(accent),
		CodeInline:     FG(code),
		CodeBlock:      FG(code),
		Quote:          Italic + FG(muted),
		ListMarker:     FG(accent),
		LinkText:       FG(link),
		LinkURL:        Faint + FG(muted),
		ThematicBreak:  FG(muted),
		Comment:        Faint + FG(muted),
	}
}

var PaletteDefault = Palette{
	Text:           "",
	H1:             Bold + FG256(39),
	H2:             Bold + FG256(45),
	H3:             Bold + FG256(51),
	H4:             FG256(39),
	H5:             FG256(45),
	H6:             FG256(245),
	Emphasis:       FG256(180),
	Strong:         FG256(215),
	EmphasisStrong: FG256(209),
	CodeInline:     FG256(114),
	CodeBlock:      FG256(114),
	Quote:          Italic + FG256(245),
	ListMarker:     FG256(39),
	LinkText:       FG256(75),
	LinkURL:        Faint + FG256(245),
	ThematicBreak:  FG256(240),
	Comment:        Faint + FG256(240),
}

var (
	PaletteDracula         = scheme("#f8f8f2", "#ff79c6", "#bd93f9", "#8be9fd", "#6272a4", "#50fa7b", "#8be9fd")
	PaletteNord            = scheme("#d8dee9", "#88c0d0", "#81a1c1", "#8fbcbb", "#4c566a", "#a3be8c", "#5e81ac")
	PaletteGruvbox         = scheme("#ebdbb2", "#fb4934", "#fabd2f", "#83a598", "#928374", "#b8bb26", "#8ec07c")
	PaletteGruvboxLight    = scheme("#3c3836", "#9d0006", "#b57614", "#076678", "#928374", "#79740e", "#427b58")
	PaletteTokyoNight      = scheme("#c0caf5", "#7aa2f7", "#bb9af7", "#7dcfff", "#565f89", "#9ece6a", "#2ac3de")
	PaletteSolarizedDark   = scheme("#839496", "#268bd2", "#b58900", "#2aa198", "#586e75", "#859900", "#6c71c4")
	PaletteSolarizedLight  = scheme("#657b83", "#268bd2", "#b58900", "#2aa198", "#93a1a1", "#859900", "#6c71c4")
	PaletteCatppuccinMocha = scheme("#cdd6f4", "#f38ba8", "#cba6f7", "#89b4fa", "#6c7086", "#a6e3a1", "#89dceb")
	PaletteOneDark         = scheme("#abb2bf", "#e06c75", "#c678dd", "#61afef", "#5c6370", "#98c379", "#56b6c2")
	PaletteGithubLight     = scheme("#24292f", "#0550ae", "#8250df", "#0a3069", "#6e7781", "#116329", "#0969da")
	PaletteGithubDark      = scheme("#c9d1d9", "#79c0ff", "#d2a8ff", "#a5d6ff", "#8b949e", "#7ee787", "#58a6ff")
	PaletteRosePine        = scheme("#e0def4", "#eb6f92", "#c4a7e7", "#9ccfd8", "#6e6a86", "#f6c177", "#31748f")
)
