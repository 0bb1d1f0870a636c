// Package parser turns lightweight markup text into an ast tree.
//
// Parsing runs in two steps: a line-oriented block pass that recognises
// headers, fenced code, comments, separators, reference definitions, quotes,
// lists and paragraphs, followed by an inline pass over the text of each block.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"pkt.systems/mdtrans/ast"
)

// Error describes a location the grammar could not derive a tree from.
type Error struct {
	Line     int
	Column   int
	Message  string
	Expected []string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	if len(e.Expected) == 0 {
		return msg
	}
	quoted := make([]string, len(e.Expected))
	for i, exp := range e.Expected {
		quoted[i] = strconv.Quote(exp)
	}
	return msg + " (expected " + strings.Join(quoted, " or ") + ")"
}

// Parse parses a whole document. The returned root is a KindDocument node
// whose last child is a KindEndMarker.
func Parse(src string) (*ast.Node, error) {
	p := &blockParser{lines: splitLines(src)}
	doc := &ast.Node{Kind: ast.KindDocument, Text: src, Line: 1}
	for p.i < len(p.lines) {
		node, err := p.block()
		if err != nil {
			return nil, err
		}
		doc.Children = append(doc.Children, node)
	}
	doc.Children = append(doc.Children, &ast.Node{Kind: ast.KindEndMarker, Line: len(p.lines) + 1})
	return doc, nil
}

type blockParser struct {
	lines []string
	i     int
}

func (p *blockParser) block() (*ast.Node, error) {
	line := p.lines[p.i]
	if isBlank(line) {
		return p.verticalSpace(), nil
	}
	trimmed := strings.TrimLeft(line, " \t")
	if fence := fenceRun(trimmed); fence != "" {
		return p.codeBlock(fence)
	}
	if isCommentStart(trimmed) {
		return p.comment()
	}
	if isThematicBreak(trimmed) {
		p.i++
		return &ast.Node{Kind: ast.KindHorizontalSeparator, Text: line, Line: p.i}, nil
	}
	if level, content, ok := parseHeading(trimmed); ok {
		p.i++
		label := &ast.Node{Kind: ast.KindRichText, Text: content, Line: p.i, Children: parseInline(content, p.i)}
		return &ast.Node{Kind: ast.KindHeader, Level: level, Text: line, Line: p.i, Children: []*ast.Node{label}}, nil
	}
	if slug, url, ok := parseReferenceDefinition(trimmed); ok {
		p.i++
		return &ast.Node{
			Kind: ast.KindReferenceDefinition,
			Text: line,
			Line: p.i,
			Children: []*ast.Node{
				{Kind: ast.KindSlug, Text: slug, Line: p.i},
				{Kind: ast.KindURL, Text: url, Line: p.i},
			},
		}, nil
	}
	if _, _, explicit := parseQuotePrefix(line); explicit {
		return p.quote(), nil
	}
	if _, _, content, ok := parseListMarker(trimmed); ok && !isBlank(content) {
		return p.list(), nil
	}
	return p.paragraph(), nil
}

// startsBlock reports whether line interrupts a running paragraph.
func (p *blockParser) startsBlock(line string) bool {
	if isBlank(line) {
		return true
	}
	trimmed := strings.TrimLeft(line, " \t")
	if fenceRun(trimmed) != "" || isCommentStart(trimmed) || isThematicBreak(trimmed) {
		return true
	}
	if _, _, ok := parseHeading(trimmed); ok {
		return true
	}
	if _, _, ok := parseReferenceDefinition(trimmed); ok {
		return true
	}
	if _, _, explicit := parseQuotePrefix(line); explicit {
		return true
	}
	if _, _, content, ok := parseListMarker(trimmed); ok && !isBlank(content) {
		return true
	}
	return false
}

func (p *blockParser) verticalSpace() *ast.Node {
	start := p.i
	for p.i < len(p.lines) && isBlank(p.lines[p.i]) {
		p.i++
	}
	return &ast.Node{
		Kind: ast.KindVerticalSpace,
		Text: strings.Join(p.lines[start:p.i], "\n"),
		Line: start + 1,
	}
}

func (p *blockParser) codeBlock(fence string) (*ast.Node, error) {
	openLine := p.i + 1
	open := p.lines[p.i]
	indent, _ := leadingIndentCount(open)
	lang := strings.TrimSpace(strings.TrimSpace(open)[len(fence):])
	node := &ast.Node{Kind: ast.KindCodeBlock, Line: openLine}
	if lang != "" {
		node.Children = append(node.Children, &ast.Node{Kind: ast.KindCodeLanguage, Text: lang, Line: openLine})
	}
	p.i++
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		if isClosingFence(line, fence) {
			p.i++
			node.Text = strings.Join(p.lines[openLine-1:p.i], "\n")
			return node, nil
		}
		node.Children = append(node.Children, &ast.Node{Kind: ast.KindCodeLine, Text: line, Line: p.i + 1})
		p.i++
	}
	return nil, &Error{
		Line:     openLine,
		Column:   indent + 1,
		Message:  "unterminated code block",
		Expected: []string{fence},
	}
}

func (p *blockParser) comment() (*ast.Node, error) {
	openLine := p.i + 1
	first := p.lines[p.i]
	indent, _ := leadingIndentCount(first)
	rest := strings.TrimLeft(first, " \t")[len("<!--"):]
	var body []string
	for {
		if idx := strings.Index(rest, "-->"); idx >= 0 {
			body = append(body, rest[:idx])
			p.i++
			return &ast.Node{
				Kind: ast.KindComment,
				Text: strings.Join(body, "\n"),
				Line: openLine,
			}, nil
		}
		body = append(body, rest)
		p.i++
		if p.i >= len(p.lines) {
			break
		}
		rest = p.lines[p.i]
	}
	return nil, &Error{
		Line:     openLine,
		Column:   indent + 1,
		Message:  "unterminated comment",
		Expected: []string{"-->"},
	}
}

func (p *blockParser) quote() *ast.Node {
	node := &ast.Node{Kind: ast.KindQuote, Line: p.i + 1}
	start := p.i
	for p.i < len(p.lines) {
		_, rest, explicit := parseQuotePrefix(p.lines[p.i])
		if !explicit {
			break
		}
		p.i++
		content := strings.TrimSpace(rest)
		node.Children = append(node.Children, &ast.Node{
			Kind:     ast.KindQuoteLine,
			Text:     content,
			Line:     p.i,
			Children: parseInline(content, p.i),
		})
	}
	node.Text = strings.Join(p.lines[start:p.i], "\n")
	return node
}

func (p *blockParser) list() *ast.Node {
	node := &ast.Node{Kind: ast.KindList, Line: p.i + 1}
	start := p.i
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		indent, _ := leadingIndentCount(line)
		markerLen, padding, content, ok := parseListMarker(strings.TrimLeft(line, " \t"))
		if !ok || isBlank(content) {
			break
		}
		itemStart := p.i
		contentIndent := indent + markerLen + padding
		content = strings.TrimSpace(content)
		item := &ast.Node{Kind: ast.KindListElement, Line: p.i + 1, Children: parseInline(content, p.i+1)}
		p.i++
		for p.i < len(p.lines) {
			next := p.lines[p.i]
			if isBlank(next) {
				break
			}
			nextIndent, _ := leadingIndentCount(next)
			if nextIndent < contentIndent {
				break
			}
			trimmed := strings.TrimSpace(next)
			if _, _, nested, ok := parseListMarker(trimmed); ok && !isBlank(nested) {
				break
			}
			p.i++
			item.Children = append(item.Children, &ast.Node{Kind: ast.KindSoftBreak, Text: "\n", Line: p.i})
			item.Children = append(item.Children, parseInline(trimmed, p.i)...)
		}
		item.Text = strings.Join(p.lines[itemStart:p.i], "\n")
		node.Children = append(node.Children, item)
	}
	node.Text = strings.Join(p.lines[start:p.i], "\n")
	return node
}

func (p *blockParser) paragraph() *ast.Node {
	node := &ast.Node{Kind: ast.KindParagraph, Line: p.i + 1}
	start := p.i
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		if p.i > start && p.startsBlock(line) {
			break
		}
		p.i++
		if p.i-1 > start {
			node.Children = append(node.Children, &ast.Node{Kind: ast.KindSoftBreak, Text: "\n", Line: p.i})
		}
		node.Children = append(node.Children, parseInline(strings.TrimSpace(line), p.i)...)
	}
	node.Text = strings.Join(p.lines[start:p.i], "\n")
	return node
}
