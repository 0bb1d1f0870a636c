// Package text renders Markdown as wrapped plain text.
package text

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"pkt.systems/mdtrans"
	"pkt.systems/mdtrans/internal/layout"
)

const defaultRuleWidth = 40

// Renderer produces plain text. Reference definitions collected during the
// peek pass are kept until Reset.
type Renderer struct {
	mdtrans.Base

	width    int
	comments bool
	upper    cases.Caser
	title    cases.Caser
	refs     map[string]string
	// urls emitted since the last block, kept out of header case mapping.
	urls []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWidth wraps paragraphs, quotes and list items to width columns. Zero
// disables wrapping.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width >= 0 {
			r.width = width
		}
	}
}

// WithComments keeps HTML comments in the output.
func WithComments(enabled bool) Option {
	return func(r *Renderer) {
		r.comments = enabled
	}
}

// WithLanguage selects the casing rules used for headers.
func WithLanguage(tag language.Tag) Option {
	return func(r *Renderer) {
		r.upper = cases.Upper(tag)
		r.title = cases.Title(tag, cases.NoLower)
	}
}

// New returns a plain text renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		upper: cases.Upper(language.English),
		title: cases.Title(language.English, cases.NoLower),
		refs:  map[string]string{},
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
	r.urls = nil
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

// TransformHeader underlines the first two levels and title-cases the rest.
// Link and image locations inside the label keep their case.
func (r *Renderer) TransformHeader(level int, text string) (string, error) {
	urls := r.urls
	r.urls = nil
	switch level {
	case 1:
		text = mapOutside(r.upper, text, urls)
		return text + "\n" + strings.Repeat("=", layout.Width(text)), nil
	case 2:
		return text + "\n" + strings.Repeat("-", layout.Width(text)), nil
	default:
		return mapOutside(r.title, text, urls), nil
	}
}

// mapOutside applies c to text except for occurrences of the protected
// strings, which are copied unchanged.
func mapOutside(c cases.Caser, text string, protected []string) string {
	var b strings.Builder
	for {
		at, match := -1, ""
		for _, p := range protected {
			if p == "" {
				continue
			}
			if i := strings.Index(text, p); i >= 0 && (at < 0 || i < at || (i == at && len(p) > len(match))) {
				at, match = i, p
			}
		}
		if at < 0 {
			b.WriteString(c.String(text))
			return b.String()
		}
		b.WriteString(c.String(text[:at]))
		b.WriteString(match)
		text = text[at+len(match):]
	}
}

func (r *Renderer) TransformBold(text string) (string, error) { return text, nil }

func (r *Renderer) TransformItalic(text string) (string, error) { return text, nil }

func (r *Renderer) TransformLink(text, url string) (string, error) {
	return r.linkText(text, url), nil
}

func (r *Renderer) TransformReferenceLink(text, slug string) (string, error) {
	url, ok := r.refs[strings.ToLower(slug)]
	if !ok {
		return text, nil
	}
	return r.linkText(text, url), nil
}

func (r *Renderer) linkText(text, url string) string {
	r.urls = append(r.urls, url)
	if text == "" || text == url {
		return url
	}
	return text + " (" + url + ")"
}

// TransformImage renders the alt text and location. A "title" metadata entry
// is appended after the location.
func (r *Renderer) TransformImage(alt, url string, meta map[string]string) (string, error) {
	r.urls = append(r.urls, url)
	out := "[image: " + alt + "] (" + url + ")"
	if title := meta["title"]; title != "" {
		out += " " + title
	}
	return out, nil
}

func (r *Renderer) TransformQuote(text string) (string, error) {
	r.urls = nil
	return layout.Prefix(text, "> ", r.width), nil
}

func (r *Renderer) TransformCodeBlock(lang, code string) (string, error) {
	return layout.Verbatim(layout.Indent(code, 4)), nil
}

func (r *Renderer) TransformInlineCode(code string) (string, error) { return code, nil }

func (r *Renderer) TransformHorizontalSeparator() (string, error) {
	n := r.width
	if n <= 0 {
		n = defaultRuleWidth
	}
	return strings.Repeat("-", n), nil
}

func (r *Renderer) TransformVerticalSpace() (string, error) { return "\n\n", nil }

func (r *Renderer) TransformList(items []string) (string, error) {
	r.urls = nil
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = layout.Hang("- ", item, r.width)
	}
	return strings.Join(out, "\n"), nil
}

func (r *Renderer) TransformParagraph(text string) (string, error) {
	r.urls = nil
	return layout.Wrap(text, r.width), nil
}

func (r *Renderer) TransformComment(text string) (string, error) {
	if !r.comments {
		return "", nil
	}
	return strings.TrimSpace(text), nil
}
