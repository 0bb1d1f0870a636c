package mdtrans

import (
	"fmt"
	"strings"
)

// recorder logs every hook invocation as "<pass> <construct> <args>" and
// renders constructs in a compact bracketed form.
type recorder struct {
	Base
	events []string
}

func (r *recorder) log(pass, kind string, args ...any) {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, pass, kind)
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	r.events = append(r.events, strings.Join(parts, " "))
}

func (r *recorder) peeks() int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, "peek ") {
			n++
		}
	}
	return n
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix) {
			n++
		}
	}
	return n
}

func (r *recorder) PeekText(text string) { r.log("peek", "text", text) }
func (r *recorder) TransformText(text string) (string, error) {
	r.log("transform", "text", text)
	return text, nil
}

func (r *recorder) PeekHeader(level int, text string) { r.log("peek", "header", level, text) }
func (r *recorder) TransformHeader(level int, text string) (string, error) {
	r.log("transform", "header", level, text)
	return fmt.Sprintf("h%d[%s]", level, text), nil
}

func (r *recorder) PeekBold(text string) { r.log("peek", "bold", text) }
func (r *recorder) TransformBold(text string) (string, error) {
	r.log("transform", "bold", text)
	return "b[" + text + "]", nil
}

func (r *recorder) PeekItalic(text string) { r.log("peek", "italic", text) }
func (r *recorder) TransformItalic(text string) (string, error) {
	r.log("transform", "italic", text)
	return "i[" + text + "]", nil
}

func (r *recorder) PeekLink(text, url string) { r.log("peek", "link", text, url) }
func (r *recorder) TransformLink(text, url string) (string, error) {
	r.log("transform", "link", text, url)
	return "a[" + text + "|" + url + "]", nil
}

func (r *recorder) PeekReferenceLink(text, slug string) { r.log("peek", "reference-link", text, slug) }
func (r *recorder) TransformReferenceLink(text, slug string) (string, error) {
	r.log("transform", "reference-link", text, slug)
	return "ref[" + text + "|" + slug + "]", nil
}

func (r *recorder) PeekReferenceDefinition(slug, url string) {
	r.log("peek", "reference-definition", slug, url)
}

func (r *recorder) PeekImage(alt, url string, meta map[string]string) {
	r.log("peek", "image", alt, url, len(meta))
}
func (r *recorder) TransformImage(alt, url string, meta map[string]string) (string, error) {
	r.log("transform", "image", alt, url, len(meta))
	return "img[" + alt + "|" + url + "]", nil
}

func (r *recorder) PeekQuote(text string) { r.log("peek", "quote", text) }
func (r *recorder) TransformQuote(text string) (string, error) {
	r.log("transform", "quote", text)
	return "q[" + text + "]", nil
}

func (r *recorder) PeekCodeBlock(lang, code string) { r.log("peek", "code-block", lang, code) }
func (r *recorder) TransformCodeBlock(lang, code string) (string, error) {
	r.log("transform", "code-block", lang, code)
	return "code[" + lang + "|" + code + "]", nil
}

func (r *recorder) PeekInlineCode(code string) { r.log("peek", "inline-code", code) }
func (r *recorder) TransformInlineCode(code string) (string, error) {
	r.log("transform", "inline-code", code)
	return "c[" + code + "]", nil
}

func (r *recorder) PeekHorizontalSeparator() { r.log("peek", "horizontal-separator") }
func (r *recorder) TransformHorizontalSeparator() (string, error) {
	r.log("transform", "horizontal-separator")
	return "hr", nil
}

func (r *recorder) PeekVerticalSpace() { r.log("peek", "vertical-space") }

func (r *recorder) PeekList(items []string) { r.log("peek", "list", strings.Join(items, "|")) }
func (r *recorder) TransformList(items []string) (string, error) {
	r.log("transform", "list", strings.Join(items, "|"))
	return strings.Join(items, ", "), nil
}

func (r *recorder) PeekListElement(text string) { r.log("peek", "list-element", text) }

func (r *recorder) PeekParagraph(text string) { r.log("peek", "paragraph", text) }

func (r *recorder) PeekComment(text string) { r.log("peek", "comment", text) }
func (r *recorder) TransformComment(text string) (string, error) {
	r.log("transform", "comment", text)
	return "", nil
}
