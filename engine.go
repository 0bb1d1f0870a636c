package mdtrans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pkt.systems/mdtrans/ast"
)

// state is threaded through the recursive walk. Children start from a fresh
// state; only joinRich carries the soft space flag across siblings.
type state struct {
	pendingSoftSpace bool
}

type visitFunc func(n *ast.Node, st state) (string, error)

// Transform runs both passes over an already parsed document.
func Transform(doc *ast.Node, t Transformer, opts ...RenderOption) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("transform: document is nil")
	}
	if t == nil {
		return "", fmt.Errorf("transform: transformer is nil")
	}
	return transform(doc, t, newRenderConfig(opts))
}

func transform(doc *ast.Node, t Transformer, cfg renderConfig) (string, error) {
	log := cfg.logger
	start := time.Now()
	peek := &peekWalker{t: t, log: log}
	if _, err := peek.visit(doc, state{}); err != nil {
		return "", err
	}
	log.Debug("peek pass complete", "visited", peek.visited, "elapsed", time.Since(start))

	start = time.Now()
	tw := &transformWalker{t: t, log: log, panicOnUnsupported: cfg.panicOnUnsupported}
	out, err := tw.visit(doc, state{})
	if err != nil {
		return "", err
	}
	log.Debug("transform pass complete", "visited", tw.visited, "bytes", len(out), "elapsed", time.Since(start))
	if f, ok := t.(DocumentFinisher); ok {
		out = f.FinishDocument(out)
	}
	return out, nil
}

// joinRich resolves nodes in order and concatenates the results. A soft break
// produces no output of its own; it makes the next inline node start with a
// single space.
func joinRich(nodes []*ast.Node, visit visitFunc) (string, error) {
	var b strings.Builder
	st := state{}
	for _, n := range nodes {
		if n.Kind == ast.KindSoftBreak {
			st.pendingSoftSpace = true
			continue
		}
		out, err := visit(n, st)
		if err != nil {
			return "", err
		}
		if n.Kind.IsInline() {
			st.pendingSoftSpace = false
		}
		b.WriteString(out)
	}
	return b.String(), nil
}

func traceVisit(log *slog.Logger, pass string, n *ast.Node) {
	if !log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	log.Debug("visit", "pass", pass, "kind", n.Kind.String(), "line", n.Line)
}

type peekWalker struct {
	t       Transformer
	log     *slog.Logger
	visited int
}

// visit invokes the peek hooks of n's subtree and returns the subtree's plain
// text, which is what the hooks of enclosing constructs receive.
func (w *peekWalker) visit(n *ast.Node, st state) (string, error) {
	w.visited++
	traceVisit(w.log, "peek", n)
	out, err := w.dispatch(n)
	if err != nil {
		return "", err
	}
	if st.pendingSoftSpace && n.Kind.IsInline() {
		out = " " + out
	}
	return out, nil
}

func (w *peekWalker) dispatch(n *ast.Node) (string, error) {
	t := w.t
	if n.Kind.IsRawTextLeaf() {
		t.PeekText(n.Text)
		return n.Text, nil
	}
	switch n.Kind {
	case ast.KindDocument, ast.KindRichText, ast.KindQuoteLine:
		if len(n.Children) == 0 {
			t.PeekText(n.Text)
			return n.Text, nil
		}
		return joinRich(n.Children, w.visit)
	case ast.KindHeader:
		label, err := headerLabel(n, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekHeader(n.Level, label)
		return label, nil
	case ast.KindBold:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekBold(inner)
		return inner, nil
	case ast.KindItalic:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekItalic(inner)
		return inner, nil
	case ast.KindLink:
		label, url, err := linkParts(n, ast.KindURL, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekLink(label, url)
		return label, nil
	case ast.KindReferenceLink:
		label, slug, err := linkParts(n, ast.KindSlug, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekReferenceLink(label, slug)
		return label, nil
	case ast.KindReferenceDefinition:
		slug, url, err := definitionParts(n)
		if err != nil {
			return "", err
		}
		t.PeekReferenceDefinition(slug, url)
		return "", nil
	case ast.KindQuote:
		lines, err := quoteLines(n, w.visit)
		if err != nil {
			return "", err
		}
		text := strings.Join(lines, "\n")
		t.PeekQuote(text)
		return text, nil
	case ast.KindCodeBlock:
		lang, code, err := codeBlockParts(n)
		if err != nil {
			return "", err
		}
		t.PeekCodeBlock(lang, code)
		return code, nil
	case ast.KindInlineCode:
		code, err := inlineCodePart(n)
		if err != nil {
			return "", err
		}
		t.PeekInlineCode(code)
		return code, nil
	case ast.KindHorizontalSeparator:
		t.PeekHorizontalSeparator()
		return "", nil
	case ast.KindImage:
		alt, url, meta, err := imageParts(n)
		if err != nil {
			return "", err
		}
		t.PeekImage(alt, url, meta)
		return alt, nil
	case ast.KindList:
		items, err := listItems(n, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekList(items)
		return strings.Join(items, "\n"), nil
	case ast.KindListElement:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekListElement(inner)
		return inner, nil
	case ast.KindParagraph:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		t.PeekParagraph(inner)
		return inner, nil
	case ast.KindVerticalSpace:
		t.PeekVerticalSpace()
		return "\n", nil
	case ast.KindComment:
		t.PeekComment(n.Text)
		return "", nil
	case ast.KindSoftBreak, ast.KindEndMarker:
		return "", nil
	}
	return "", invariant(n, "no handling rule for this node kind")
}

type transformWalker struct {
	t                  Transformer
	log                *slog.Logger
	panicOnUnsupported bool
	visited            int
}

func (w *transformWalker) visit(n *ast.Node, st state) (string, error) {
	w.visited++
	traceVisit(w.log, "transform", n)
	out, err := w.dispatch(n)
	if err != nil {
		return "", err
	}
	if n.Kind.RequiresBlockWrapping() {
		out = "\n" + out + "\n"
	}
	if st.pendingSoftSpace && n.Kind.IsInline() {
		out = " " + out
	}
	return out, nil
}

// hook wraps the result of a transform hook with the node's location.
func (w *transformWalker) hook(n *ast.Node, out string, err error) (string, error) {
	if err == nil {
		return out, nil
	}
	if w.panicOnUnsupported && errors.Is(err, ErrUnsupported) {
		panic(err)
	}
	if n.Line > 0 {
		return "", fmt.Errorf("line %d: %w", n.Line, err)
	}
	return "", err
}

func (w *transformWalker) dispatch(n *ast.Node) (string, error) {
	t := w.t
	if n.Kind.IsRawTextLeaf() {
		out, err := t.TransformText(n.Text)
		return w.hook(n, out, err)
	}
	switch n.Kind {
	case ast.KindDocument, ast.KindRichText, ast.KindQuoteLine:
		if len(n.Children) == 0 {
			out, err := t.TransformText(n.Text)
			return w.hook(n, out, err)
		}
		return joinRich(n.Children, w.visit)
	case ast.KindHeader:
		label, err := headerLabel(n, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformHeader(n.Level, label)
		return w.hook(n, out, err)
	case ast.KindBold:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformBold(inner)
		return w.hook(n, out, err)
	case ast.KindItalic:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformItalic(inner)
		return w.hook(n, out, err)
	case ast.KindLink:
		label, url, err := linkParts(n, ast.KindURL, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformLink(label, url)
		return w.hook(n, out, err)
	case ast.KindReferenceLink:
		label, slug, err := linkParts(n, ast.KindSlug, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformReferenceLink(label, slug)
		return w.hook(n, out, err)
	case ast.KindReferenceDefinition:
		slug, url, err := definitionParts(n)
		if err != nil {
			return "", err
		}
		out, err := t.TransformReferenceDefinition(slug, url)
		return w.hook(n, out, err)
	case ast.KindQuote:
		lines, err := quoteLines(n, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformQuote(strings.Join(lines, "\n"))
		return w.hook(n, out, err)
	case ast.KindCodeBlock:
		lang, code, err := codeBlockParts(n)
		if err != nil {
			return "", err
		}
		out, err := t.TransformCodeBlock(lang, code)
		return w.hook(n, out, err)
	case ast.KindInlineCode:
		code, err := inlineCodePart(n)
		if err != nil {
			return "", err
		}
		out, err := t.TransformInlineCode(code)
		return w.hook(n, out, err)
	case ast.KindHorizontalSeparator:
		out, err := t.TransformHorizontalSeparator()
		return w.hook(n, out, err)
	case ast.KindImage:
		alt, url, meta, err := imageParts(n)
		if err != nil {
			return "", err
		}
		out, err := t.TransformImage(alt, url, meta)
		return w.hook(n, out, err)
	case ast.KindList:
		items, err := listItems(n, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformList(items)
		return w.hook(n, out, err)
	case ast.KindListElement:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformListElement(inner)
		return w.hook(n, out, err)
	case ast.KindParagraph:
		inner, err := joinRich(n.Children, w.visit)
		if err != nil {
			return "", err
		}
		out, err := t.TransformParagraph(inner)
		return w.hook(n, out, err)
	case ast.KindVerticalSpace:
		out, err := t.TransformVerticalSpace()
		return w.hook(n, out, err)
	case ast.KindComment:
		out, err := t.TransformComment(n.Text)
		return w.hook(n, out, err)
	case ast.KindSoftBreak, ast.KindEndMarker:
		return "", nil
	}
	return "", invariant(n, "no handling rule for this node kind")
}
