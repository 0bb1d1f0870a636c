package mdtrans

import "pkt.systems/mdtrans/ast"

// Transformer is the capability contract implemented by renderers.
//
// Every construct has a Peek method, invoked during the first pass with the
// construct's plain text arguments, and a Transform method, invoked during the
// second pass with already rendered arguments, which returns the construct's
// output. All Peek calls for a document complete before the first Transform
// call.
//
// Embed Base to inherit defaults and override only the constructs the target
// format supports.
type Transformer interface {
	PeekText(text string)
	TransformText(text string) (string, error)

	PeekHeader(level int, text string)
	TransformHeader(level int, text string) (string, error)

	PeekBold(text string)
	TransformBold(text string) (string, error)

	PeekItalic(text string)
	TransformItalic(text string) (string, error)

	PeekLink(text, url string)
	TransformLink(text, url string) (string, error)

	PeekReferenceLink(text, slug string)
	TransformReferenceLink(text, slug string) (string, error)

	PeekReferenceDefinition(slug, url string)
	TransformReferenceDefinition(slug, url string) (string, error)

	PeekImage(alt, url string, meta map[string]string)
	TransformImage(alt, url string, meta map[string]string) (string, error)

	PeekQuote(text string)
	TransformQuote(text string) (string, error)

	// lang is empty when the block has no language tag.
	PeekCodeBlock(lang, code string)
	TransformCodeBlock(lang, code string) (string, error)

	PeekInlineCode(code string)
	TransformInlineCode(code string) (string, error)

	PeekHorizontalSeparator()
	TransformHorizontalSeparator() (string, error)

	PeekVerticalSpace()
	TransformVerticalSpace() (string, error)

	PeekList(items []string)
	TransformList(items []string) (string, error)

	PeekListElement(text string)
	TransformListElement(text string) (string, error)

	PeekParagraph(text string)
	TransformParagraph(text string) (string, error)

	PeekComment(text string)
	TransformComment(text string) (string, error)
}

// FrontMatterPeeker is implemented by transformers that want the decoded front
// matter of a document. PeekFrontMatter runs before any other peek hook and
// only when the document starts with front matter.
type FrontMatterPeeker interface {
	PeekFrontMatter(meta map[string]any)
}

// DocumentFinisher is implemented by transformers that post-process the
// complete output. FinishDocument runs once, after the transform pass.
type DocumentFinisher interface {
	FinishDocument(out string) string
}

// Base provides the default behaviour of every hook. Text, paragraphs and list
// elements pass through, vertical space renders as a newline and reference
// definitions render as nothing. Every other construct reports
// ErrUnsupported.
type Base struct{}

var _ Transformer = Base{}

func (Base) PeekText(string) {}

func (Base) TransformText(text string) (string, error) { return text, nil }

func (Base) PeekHeader(int, string) {}

func (Base) TransformHeader(int, string) (string, error) {
	return "", unsupported(ast.KindHeader)
}

func (Base) PeekBold(string) {}

func (Base) TransformBold(string) (string, error) {
	return "", unsupported(ast.KindBold)
}

func (Base) PeekItalic(string) {}

func (Base) TransformItalic(string) (string, error) {
	return "", unsupported(ast.KindItalic)
}

func (Base) PeekLink(string, string) {}

func (Base) TransformLink(string, string) (string, error) {
	return "", unsupported(ast.KindLink)
}

func (Base) PeekReferenceLink(string, string) {}

func (Base) TransformReferenceLink(string, string) (string, error) {
	return "", unsupported(ast.KindReferenceLink)
}

func (Base) PeekReferenceDefinition(string, string) {}

func (Base) TransformReferenceDefinition(string, string) (string, error) { return "", nil }

func (Base) PeekImage(string, string, map[string]string) {}

func (Base) TransformImage(string, string, map[string]string) (string, error) {
	return "", unsupported(ast.KindImage)
}

func (Base) PeekQuote(string) {}

func (Base) TransformQuote(string) (string, error) {
	return "", unsupported(ast.KindQuote)
}

func (Base) PeekCodeBlock(string, string) {}

func (Base) TransformCodeBlock(string, string) (string, error) {
	return "", unsupported(ast.KindCodeBlock)
}

func (Base) PeekInlineCode(string) {}

func (Base) TransformInlineCode(string) (string, error) {
	return "", unsupported(ast.KindInlineCode)
}

func (Base) PeekHorizontalSeparator() {}

func (Base) TransformHorizontalSeparator() (string, error) {
	return "", unsupported(ast.KindHorizontalSeparator)
}

func (Base) PeekVerticalSpace() {}

func (Base) TransformVerticalSpace() (string, error) { return "\n", nil }

func (Base) PeekList([]string) {}

func (Base) TransformList([]string) (string, error) {
	return "", unsupported(ast.KindList)
}

func (Base) PeekListElement(string) {}

func (Base) TransformListElement(text string) (string, error) { return text, nil }

func (Base) PeekParagraph(string) {}

func (Base) TransformParagraph(text string) (string, error) { return text, nil }

func (Base) PeekComment(string) {}

func (Base) TransformComment(string) (string, error) {
	return "", unsupported(ast.KindComment)
}
