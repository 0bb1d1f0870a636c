package mdtrans

import (
	"strings"

	"pkt.systems/mdtrans/ast"
)

// The helpers below pull hook arguments out of a construct's children. Both
// passes share them so that a malformed tree fails the same way in each.

func headerLabel(n *ast.Node, visit visitFunc) (string, error) {
	if n.Level < 1 || n.Level > 6 {
		return "", invariant(n, "header level %d outside 1..6", n.Level)
	}
	if len(n.Children) != 1 {
		return "", invariant(n, "expected exactly one label, found %d children", len(n.Children))
	}
	return visit(n.Children[0], state{})
}

// linkParts resolves the label children of a link and returns them with the
// raw text of the trailing destination, a URL or a slug.
func linkParts(n *ast.Node, dest ast.Kind, visit visitFunc) (string, string, error) {
	if len(n.Children) < 2 {
		return "", "", invariant(n, "expected a label and a %s, found %d children", dest, len(n.Children))
	}
	last := n.Children[len(n.Children)-1]
	if last.Kind != dest {
		return "", "", invariant(n, "last child is %s, want %s", last.Kind, dest)
	}
	label, err := joinRich(n.Children[:len(n.Children)-1], visit)
	if err != nil {
		return "", "", err
	}
	return label, last.Text, nil
}

func definitionParts(n *ast.Node) (string, string, error) {
	if len(n.Children) != 2 || n.Children[0].Kind != ast.KindSlug || n.Children[1].Kind != ast.KindURL {
		return "", "", invariant(n, "expected slug and url children")
	}
	return n.Children[0].Text, n.Children[1].Text, nil
}

func codeBlockParts(n *ast.Node) (string, string, error) {
	lines := n.Children
	lang := ""
	if len(lines) > 0 && lines[0].Kind == ast.KindCodeLanguage {
		lang = lines[0].Text
		lines = lines[1:]
	}
	code := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Kind != ast.KindCodeLine {
			return "", "", invariant(n, "unexpected %s child", line.Kind)
		}
		code = append(code, line.Text)
	}
	return lang, strings.Join(code, "\n"), nil
}

func inlineCodePart(n *ast.Node) (string, error) {
	if len(n.Children) != 1 || !n.Children[0].Kind.IsRawTextLeaf() {
		return "", invariant(n, "expected exactly one code child")
	}
	return n.Children[0].Text, nil
}

func imageParts(n *ast.Node) (string, string, map[string]string, error) {
	if len(n.Children) != 2 && len(n.Children) != 3 {
		return "", "", nil, invariant(n, "expected 2 or 3 children, found %d", len(n.Children))
	}
	alt, url := n.Children[0], n.Children[1]
	if url.Kind != ast.KindURL {
		return "", "", nil, invariant(n, "second child is %s, want url", url.Kind)
	}
	meta := map[string]string{}
	if len(n.Children) == 3 {
		if n.Children[2].Kind != ast.KindMetadata {
			return "", "", nil, invariant(n, "third child is %s, want metadata", n.Children[2].Kind)
		}
		if err := extractMetadata(n.Children[2], meta); err != nil {
			return "", "", nil, err
		}
	}
	return alt.Text, url.Text, meta, nil
}

// extractMetadata copies key/value entries into meta with surrounding
// whitespace removed. A later entry wins over an earlier one with the same key.
func extractMetadata(n *ast.Node, meta map[string]string) error {
	for _, entry := range n.Children {
		if entry.Kind != ast.KindMetadataEntry || len(entry.Children) != 2 ||
			entry.Children[0].Kind != ast.KindMetadataKey || entry.Children[1].Kind != ast.KindMetadataValue {
			return invariant(n, "malformed metadata entry")
		}
		meta[strings.TrimSpace(entry.Children[0].Text)] = strings.TrimSpace(entry.Children[1].Text)
	}
	return nil
}

func quoteLines(n *ast.Node, visit visitFunc) ([]string, error) {
	lines := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Kind != ast.KindQuoteLine {
			return nil, invariant(n, "unexpected %s child", child.Kind)
		}
		line, err := visit(child, state{})
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func listItems(n *ast.Node, visit visitFunc) ([]string, error) {
	items := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if child.Kind != ast.KindListElement {
			return nil, invariant(n, "unexpected %s child", child.Kind)
		}
		item, err := visit(child, state{})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
