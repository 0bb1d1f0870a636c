// Package html renders Markdown as an HTML fragment.
package html

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"pkt.systems/mdtrans"
)

// ErrUndefinedReference reports a reference link whose slug has no
// definition anywhere in the document.
var ErrUndefinedReference = errors.New("undefined reference")

// imageAttributes lists the metadata keys copied onto <img> elements.
var imageAttributes = map[string]bool{
	"width":  true,
	"height": true,
	"title":  true,
	"class":  true,
	"align":  true,
}

// Renderer produces HTML. Reference definitions collected during the peek pass
// are kept until Reset.
type Renderer struct {
	mdtrans.Base

	unsafe       bool
	comments     bool
	headingIDs   bool
	lenientLinks bool
	refs         map[string]string
	ids          map[string]int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithUnsafe keeps link and image destinations with dangerous schemes such as
// javascript:.
func WithUnsafe(enabled bool) Option {
	return func(r *Renderer) {
		r.unsafe = enabled
	}
}

// WithComments passes HTML comments through to the output.
func WithComments(enabled bool) Option {
	return func(r *Renderer) {
		r.comments = enabled
	}
}

// WithHeadingIDs adds a slug id attribute to every header.
func WithHeadingIDs(enabled bool) Option {
	return func(r *Renderer) {
		r.headingIDs = enabled
	}
}

// WithLenientReferences renders undefined reference links as their label
// instead of failing.
func WithLenientReferences(enabled bool) Option {
	return func(r *Renderer) {
		r.lenientLinks = enabled
	}
}

// New returns an HTML renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.Reset()
	return r
}

// Reset forgets state collected from a previous document.
func (r *Renderer) Reset() {
	r.refs = map[string]string{}
	r.ids = map[string]int{}
}

// Render renders src as an HTML fragment.
func (r *Renderer) Render(src string, opts ...mdtrans.RenderOption) (string, error) {
	out, err := mdtrans.RenderString(src, r, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimLeft(out, "\n"), nil
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

func (r *Renderer) destination(url string) string {
	b := []byte(url)
	if !r.unsafe && gmhtml.IsDangerousURL(b) {
		return ""
	}
	return string(util.EscapeHTML(util.URLEscape(b, false)))
}

func (r *Renderer) PeekReferenceDefinition(slug, url string) {
	key := strings.ToLower(slug)
	if _, ok := r.refs[key]; !ok {
		r.refs[key] = url
	}
}

func (r *Renderer) TransformText(text string) (string, error) {
	return escape(text), nil
}

func (r *Renderer) TransformHeader(level int, text string) (string, error) {
	tag := "h" + strconv.Itoa(level)
	if !r.headingIDs {
		return "<" + tag + ">" + text + "</" + tag + ">", nil
	}
	return fmt.Sprintf(`<%s id="%s">%s</%s>`, tag, r.headingID(text), text, tag), nil
}

// headingID derives a lowercase dash separated id from rendered header text
// and disambiguates repeats with a numeric suffix.
func (r *Renderer) headingID(text string) string {
	var b strings.Builder
	inTag := false
	dash := false
	for _, c := range strings.ToLower(text) {
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case inTag:
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c > 0x7f:
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(c)
		default:
			dash = true
		}
	}
	id := b.String()
	if id == "" {
		id = "section"
	}
	n := r.ids[id]
	r.ids[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

func (r *Renderer) TransformBold(text string) (string, error) {
	return "<strong>" + text + "</strong>", nil
}

func (r *Renderer) TransformItalic(text string) (string, error) {
	return "<em>" + text + "</em>", nil
}

func (r *Renderer) TransformLink(text, url string) (string, error) {
	return `<a href="` + r.destination(url) + `">` + text + "</a>", nil
}

func (r *Renderer) TransformReferenceLink(text, slug string) (string, error) {
	url, ok := r.refs[strings.ToLower(slug)]
	if !ok {
		if r.lenientLinks {
			return text, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUndefinedReference, slug)
	}
	return r.TransformLink(text, url)
}

func (r *Renderer) TransformImage(alt, url string, meta map[string]string) (string, error) {
	var b strings.Builder
	b.WriteString(`<img src="`)
	b.WriteString(r.destination(url))
	b.WriteString(`" alt="`)
	b.WriteString(escape(alt))
	b.WriteByte('"')
	keys := make([]string, 0, len(meta))
	for k := range meta {
		if imageAttributes[strings.ToLower(k)] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, strings.ToLower(k), escape(meta[k]))
	}
	b.WriteString(">")
	return b.String(), nil
}

func (r *Renderer) TransformQuote(text string) (string, error) {
	return "<blockquote><p>" + strings.ReplaceAll(text, "\n", "<br>\n") + "</p></blockquote>", nil
}

func (r *Renderer) TransformCodeBlock(lang, code string) (string, error) {
	if code != "" {
		code = escape(code) + "\n"
	}
	if lang == "" {
		return "<pre><code>" + code + "</code></pre>", nil
	}
	return `<pre><code class="language-` + escape(lang) + `">` + code + "</code></pre>", nil
}

func (r *Renderer) TransformInlineCode(code string) (string, error) {
	return "<code>" + escape(code) + "</code>", nil
}

func (r *Renderer) TransformHorizontalSeparator() (string, error) {
	return "<hr>", nil
}

func (r *Renderer) TransformList(items []string) (string, error) {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, item := range items {
		b.WriteString("<li>")
		b.WriteString(item)
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>")
	return b.String(), nil
}

func (r *Renderer) TransformParagraph(text string) (string, error) {
	return "<p>" + text + "</p>", nil
}

func (r *Renderer) TransformComment(text string) (string, error) {
	if !r.comments {
		return "", nil
	}
	return "<!--" + strings.ReplaceAll(text, "--", "- -") + "-->", nil
}
