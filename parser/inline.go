package parser

import (
	"strings"

	"pkt.systems/mdtrans/ast"
)

type inlineParser struct {
	line int
	// textKind is the kind given to plain text runs; link labels use
	// ast.KindLinkText.
	textKind ast.Kind
}

func parseInline(s string, line int) []*ast.Node {
	p := inlineParser{line: line, textKind: ast.KindText}
	return p.parse(s)
}

func (p inlineParser) label() inlineParser {
	p.textKind = ast.KindLinkText
	return p
}

func (p inlineParser) leaf(kind ast.Kind, text string) *ast.Node {
	return &ast.Node{Kind: kind, Text: text, Line: p.line}
}

func (p inlineParser) parse(s string) []*ast.Node {
	var nodes []*ast.Node
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, p.leaf(p.textKind, text.String()))
			text.Reset()
		}
	}
	emit := func(n *ast.Node) {
		flush()
		nodes = append(nodes, n)
	}
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '\\':
			if i+1 < len(s) && isASCIIPunct(s[i+1]) {
				text.WriteByte(s[i+1])
				i += 2
				continue
			}
		case '`':
			if n, end, ok := p.codeSpan(s, i); ok {
				emit(n)
				i = end
				continue
			}
			run := countRun(s, i, '`')
			text.WriteString(s[i : i+run])
			i += run
			continue
		case '!':
			if i+1 < len(s) && s[i+1] == '[' {
				if n, end, ok := p.image(s, i); ok {
					emit(n)
					i = end
					continue
				}
			}
		case '[':
			if n, end, ok := p.link(s, i); ok {
				emit(n)
				i = end
				continue
			}
		case '*', '_':
			if n, end, ok := p.emphasis(s, i); ok {
				emit(n)
				i = end
				continue
			}
			run := countRun(s, i, c)
			text.WriteString(s[i : i+run])
			i += run
			continue
		}
		text.WriteByte(c)
		i++
	}
	flush()
	return nodes
}

func (p inlineParser) codeSpan(s string, i int) (*ast.Node, int, bool) {
	n := countRun(s, i, '`')
	for j := i + n; j < len(s); {
		if s[j] != '`' {
			j++
			continue
		}
		run := countRun(s, j, '`')
		if run == n {
			content := s[i+n : j]
			if len(content) >= 2 && content[0] == ' ' && content[len(content)-1] == ' ' && strings.TrimSpace(content) != "" {
				content = content[1 : len(content)-1]
			}
			end := j + run
			return &ast.Node{
				Kind:     ast.KindInlineCode,
				Text:     s[i:end],
				Line:     p.line,
				Children: []*ast.Node{p.leaf(ast.KindCode, content)},
			}, end, true
		}
		j += run
	}
	return nil, 0, false
}

func (p inlineParser) emphasis(s string, i int) (*ast.Node, int, bool) {
	c := s[i]
	n := countRun(s, i, c)
	if n > 3 {
		return nil, 0, false
	}
	open := i + n
	if open >= len(s) || isSpace(s[open]) {
		return nil, 0, false
	}
	if c == '_' && i > 0 && isAlnum(s[i-1]) {
		return nil, 0, false
	}
	closeAt := findCloser(s, open, c, n)
	if closeAt < 0 {
		return nil, 0, false
	}
	end := closeAt + n
	children := p.parse(s[open:closeAt])
	switch n {
	case 1:
		return &ast.Node{Kind: ast.KindItalic, Text: s[i:end], Line: p.line, Children: children}, end, true
	case 2:
		return &ast.Node{Kind: ast.KindBold, Text: s[i:end], Line: p.line, Children: children}, end, true
	default:
		italic := &ast.Node{Kind: ast.KindItalic, Text: s[i+2 : end-2], Line: p.line, Children: children}
		return &ast.Node{Kind: ast.KindBold, Text: s[i:end], Line: p.line, Children: []*ast.Node{italic}}, end, true
	}
}

// findCloser returns the index of a delimiter run of exactly n c's closing an
// emphasis opened before from, skipping escapes and code spans.
func findCloser(s string, from int, c byte, n int) int {
	for j := from; j < len(s); {
		switch s[j] {
		case '\\':
			j += 2
			continue
		case '`':
			run := countRun(s, j, '`')
			if end := strings.Index(s[j+run:], strings.Repeat("`", run)); end >= 0 {
				j += run + end + run
				continue
			}
			j += run
			continue
		}
		if s[j] != c {
			j++
			continue
		}
		run := countRun(s, j, c)
		if run == n && j > from && !isSpace(s[j-1]) {
			if c != '_' || j+run == len(s) || !isAlnum(s[j+run]) {
				return j
			}
		}
		j += run
	}
	return -1
}

func (p inlineParser) link(s string, i int) (*ast.Node, int, bool) {
	closeAt := matchDelim(s, i, '[', ']')
	if closeAt < 0 || closeAt+1 >= len(s) {
		return nil, 0, false
	}
	label := s[i+1 : closeAt]
	switch s[closeAt+1] {
	case '(':
		end := matchDelim(s, closeAt+1, '(', ')')
		if end < 0 {
			return nil, 0, false
		}
		dest := strings.TrimSpace(s[closeAt+2 : end])
		children := append(p.label().parse(label), p.leaf(ast.KindURL, dest))
		return &ast.Node{Kind: ast.KindLink, Text: s[i : end+1], Line: p.line, Children: children}, end + 1, true
	case '[':
		rel := strings.IndexByte(s[closeAt+2:], ']')
		if rel < 0 {
			return nil, 0, false
		}
		end := closeAt + 2 + rel
		slug := s[closeAt+2 : end]
		if slug == "" {
			slug = label
		}
		if slug == "" || strings.Contains(slug, "[") {
			return nil, 0, false
		}
		children := append(p.label().parse(label), p.leaf(ast.KindSlug, slug))
		return &ast.Node{Kind: ast.KindReferenceLink, Text: s[i : end+1], Line: p.line, Children: children}, end + 1, true
	}
	return nil, 0, false
}

func (p inlineParser) image(s string, i int) (*ast.Node, int, bool) {
	closeAt := matchDelim(s, i+1, '[', ']')
	if closeAt < 0 || closeAt+1 >= len(s) || s[closeAt+1] != '(' {
		return nil, 0, false
	}
	end := matchDelim(s, closeAt+1, '(', ')')
	if end < 0 {
		return nil, 0, false
	}
	node := &ast.Node{
		Kind: ast.KindImage,
		Line: p.line,
		Children: []*ast.Node{
			p.leaf(ast.KindText, s[i+2:closeAt]),
			p.leaf(ast.KindURL, strings.TrimSpace(s[closeAt+2:end])),
		},
	}
	end++
	if end < len(s) && s[end] == '[' {
		if rel := strings.IndexByte(s[end+1:], ']'); rel >= 0 {
			if meta, ok := p.metadata(s[end+1 : end+1+rel]); ok {
				node.Children = append(node.Children, meta)
				end += rel + 2
			}
		}
	}
	node.Text = s[i:end]
	return node, end, true
}

// metadata parses "key: value, key: value". Keys and values keep the
// whitespace around them.
func (p inlineParser) metadata(body string) (*ast.Node, bool) {
	meta := &ast.Node{Kind: ast.KindMetadata, Text: body, Line: p.line}
	for _, part := range strings.Split(body, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		idx := strings.IndexByte(part, ':')
		if idx < 0 || strings.TrimSpace(part[:idx]) == "" {
			return nil, false
		}
		meta.Children = append(meta.Children, &ast.Node{
			Kind: ast.KindMetadataEntry,
			Text: part,
			Line: p.line,
			Children: []*ast.Node{
				p.leaf(ast.KindMetadataKey, part[:idx]),
				p.leaf(ast.KindMetadataValue, part[idx+1:]),
			},
		})
	}
	if len(meta.Children) == 0 {
		return nil, false
	}
	return meta, true
}

// matchDelim returns the index of the delimiter closing the one at s[i].
func matchDelim(s string, i int, open, close byte) int {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

func countRun(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
