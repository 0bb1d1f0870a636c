// Package ansi renders Markdown for terminal display using ANSI styles.
//
// Output is word-wrapped to a fixed width with styles applied per construct
// from a Theme. Links are emitted as OSC 8 hyperlinks when enabled and as
// "label (url)" otherwise.
//
// Example:
//
//	r := ansi.New(ansi.WithTheme(ansi.DefaultTheme()), ansi.WithWidth(80))
//	out, err := r.Render("# Hello\n\nMarkdown in, ANSI out.\n")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
package ansi

import (
	"strings"

	"pkt.systems/mdtrans"
	"pkt.systems/mdtrans/internal/layout"
)

const (
	defaultRuleWidth = 40
	quoteBar         = "│ "
	bullet           = "• "
)

// Renderer produces ANSI styled text. Reference definitions collected during
// the peek pass are kept until Reset.
type Renderer struct {
	mdtrans.Base

	styles   Styles
	width    int
	osc8     bool
	comments bool
	refs     map[string]string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme selects the color theme. A nil theme keeps the default.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		if theme != nil {
			r.styles = theme.Styles()
		}
	}
}

// WithWidth wraps text blocks to width columns. Zero disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 0 {
			r.width = width
		}
	}
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) Option {
	return func(r *Renderer) {
		r.osc8 = enabled
	}
}

// WithComments shows HTML comments in a faint style.
func WithComments(enabled bool) Option {
	return func(r *Renderer) {
		r.comments = enabled
	}
}

// New returns a terminal renderer using the default theme.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		styles: DefaultTheme().Styles(),
		refs:   map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Reset forgets reference definitions from a previous document.
func (r *Renderer) Reset() {
	r.refs = map[string]string{}
}

// Render renders src.
func (r *Renderer) Render(src string, opts ...mdtrans.RenderOption) (string, error) {
	return mdtrans.RenderString(src, r, opts...)
}

// FinishDocument collapses blank lines between blocks. Code block bodies are
// kept as written.
func (r *Renderer) FinishDocument(out string) string {
	return layout.Tidy(out)
}

// PeekReferenceDefinition records url under slug. The first definition of a
// slug wins.
func (r *Renderer) PeekReferenceDefinition(slug, url string) {
	key := strings.ToLower(slug)
	if _, ok := r.refs[key]; !ok {
		r.refs[key] = url
	}
}

func (r *Renderer) TransformHeader(level int, text string) (string, error) {
	marker := strings.Repeat("#", level) + " "
	return r.styles.Heading[level-1].Paint(layout.Hang(marker, text, r.width)), nil
}

func (r *Renderer) TransformBold(text string) (string, error) {
	return r.styles.Strong.Paint(text), nil
}

func (r *Renderer) TransformItalic(text string) (string, error) {
	return r.styles.Emphasis.Paint(text), nil
}

func (r *Renderer) TransformLink(text, url string) (string, error) {
	if r.osc8 {
		return hyperlink(url, r.styles.LinkText.Paint(text)), nil
	}
	if text == "" || text == url {
		return r.styles.LinkURL.Paint(fitURL(url, r.width)), nil
	}
	return r.styles.LinkText.Paint(text) + " " + r.styles.LinkURL.Paint("("+fitURL(url, r.width-2)+")"), nil
}

func (r *Renderer) TransformReferenceLink(text, slug string) (string, error) {
	url, ok := r.refs[strings.ToLower(slug)]
	if !ok {
		return r.styles.LinkText.Paint(text), nil
	}
	return r.TransformLink(text, url)
}

// TransformImage shows the alt text and location. Metadata entries are listed
// after the location in key order.
func (r *Renderer) TransformImage(alt, url string, meta map[string]string) (string, error) {
	label := "[image: " + alt + "]"
	if r.osc8 {
		return hyperlink(url, r.styles.LinkText.Paint(label)), nil
	}
	out := r.styles.LinkText.Paint(label) + " " + r.styles.LinkURL.Paint("("+fitURL(url, r.width-2)+")")
	if w, h := meta["width"], meta["height"]; w != "" && h != "" {
		out += " " + r.styles.Comment.Paint(w+"x"+h)
	}
	return out, nil
}

func (r *Renderer) TransformQuote(text string) (string, error) {
	width := r.width
	if width > 0 {
		width = max(width-layout.Width(quoteBar), 1)
	}
	lines := strings.Split(layout.Wrap(text, width), "\n")
	bar := r.styles.Quote.Paint(quoteBar)
	for i, line := range lines {
		lines[i] = bar + r.styles.Quote.Paint(line)
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Renderer) TransformCodeBlock(lang, code string) (string, error) {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		lines[i] = r.styles.CodeBlock.Paint(line)
	}
	out := layout.Verbatim(layout.Indent(strings.Join(lines, "\n"), 4))
	if lang != "" {
		out = "  " + r.styles.Comment.Paint(lang) + "\n" + out
	}
	return out, nil
}

func (r *Renderer) TransformInlineCode(code string) (string, error) {
	return r.styles.CodeInline.Paint(code), nil
}

func (r *Renderer) TransformHorizontalSeparator() (string, error) {
	n := r.width
	if n <= 0 {
		n = defaultRuleWidth
	}
	return r.styles.ThematicBreak.Paint(strings.Repeat("─", n)), nil
}

func (r *Renderer) TransformVerticalSpace() (string, error) { return "\n\n", nil }

func (r *Renderer) TransformList(items []string) (string, error) {
	marker := r.styles.ListMarker.Paint(bullet)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = layout.Hang(marker, item, r.width)
	}
	return strings.Join(out, "\n"), nil
}

func (r *Renderer) TransformParagraph(text string) (string, error) {
	return layout.Wrap(r.styles.Text.Paint(text), r.width), nil
}

func (r *Renderer) TransformComment(text string) (string, error) {
	if !r.comments {
		return "", nil
	}
	return r.styles.Comment.Paint("<!--" + text + "-->"), nil
}
