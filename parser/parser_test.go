package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"pkt.systems/mdtrans/ast"
)

// shape strips source positions and container spans so trees can be compared
// by structure and leaf text.
func shape(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	out := &ast.Node{Kind: n.Kind, Level: n.Level}
	if len(n.Children) == 0 {
		out.Text = n.Text
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, shape(child))
	}
	return out
}

func doc(children ...*ast.Node) *ast.Node {
	return ast.New(ast.KindDocument, "", append(children, ast.Leaf(ast.KindEndMarker, ""))...)
}

func text(s string) *ast.Node { return ast.Leaf(ast.KindText, s) }

func softBreak() *ast.Node { return ast.Leaf(ast.KindSoftBreak, "\n") }

func para(children ...*ast.Node) *ast.Node { return ast.New(ast.KindParagraph, "", children...) }

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return tree
}

func TestParseHeaders(t *testing.T) {
	t.Parallel()
	for level := 1; level <= 6; level++ {
		src := strings.Repeat("#", level) + " text"
		got := shape(mustParse(t, src))
		want := doc(ast.Header(level, text("text")))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("level %d (-want +got):\n%s", level, diff)
		}
	}
}

func TestParseHeaderEdgeCases(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "####### seven\n## closed ##\n#tag"))
	want := doc(
		para(text("####### seven")),
		ast.Header(2, text("closed")),
		para(text("#tag")),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseParagraphSoftBreaks(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "a\nb\nc\n"))
	want := doc(para(text("a"), softBreak(), text("b"), softBreak(), text("c")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseVerticalSpaceCollapsesBlankRun(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "a\n\n\n  \nb"))
	want := doc(
		para(text("a")),
		ast.Leaf(ast.KindVerticalSpace, "\n\n  "),
		para(text("b")),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseReferenceLinkAndDefinition(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "[a][b]\n[b]: site_(c)"))
	want := doc(
		para(ast.New(ast.KindReferenceLink, "",
			ast.Leaf(ast.KindLinkText, "a"),
			ast.Leaf(ast.KindSlug, "b"),
		)),
		ast.New(ast.KindReferenceDefinition, "",
			ast.Leaf(ast.KindSlug, "b"),
			ast.Leaf(ast.KindURL, "site_(c)"),
		),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseCollapsedReferenceUsesLabel(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "see [docs][]"))
	want := doc(para(
		text("see "),
		ast.New(ast.KindReferenceLink, "",
			ast.Leaf(ast.KindLinkText, "docs"),
			ast.Leaf(ast.KindSlug, "docs"),
		),
	))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseLinkWithNestedLabel(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "go [to **the** site](http://x/(y)) now"))
	want := doc(para(
		text("go "),
		ast.New(ast.KindLink, "",
			ast.Leaf(ast.KindLinkText, "to "),
			ast.New(ast.KindBold, "", ast.Leaf(ast.KindLinkText, "the")),
			ast.Leaf(ast.KindLinkText, " site"),
			ast.Leaf(ast.KindURL, "http://x/(y)"),
		),
		text(" now"),
	))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseImageMetadata(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "![image alt](url)[upper: true, size : big ]"))
	want := doc(para(ast.New(ast.KindImage, "",
		text("image alt"),
		ast.Leaf(ast.KindURL, "url"),
		ast.New(ast.KindMetadata, "",
			ast.New(ast.KindMetadataEntry, "",
				ast.Leaf(ast.KindMetadataKey, "upper"),
				ast.Leaf(ast.KindMetadataValue, " true"),
			),
			ast.New(ast.KindMetadataEntry, "",
				ast.Leaf(ast.KindMetadataKey, " size "),
				ast.Leaf(ast.KindMetadataValue, " big "),
			),
		),
	)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseImageWithoutMetadataKeepsBracketText(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "start\n![image alt](url)[not meta]\nend"))
	want := doc(para(
		text("start"),
		softBreak(),
		ast.New(ast.KindImage, "", text("image alt"), ast.Leaf(ast.KindURL, "url")),
		text("[not meta]"),
		softBreak(),
		text("end"),
	))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseEmphasisNesting(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "*a **b** c* ***d*** snake_case_name"))
	want := doc(para(
		ast.New(ast.KindItalic, "",
			text("a "),
			ast.New(ast.KindBold, "", text("b")),
			text(" c"),
		),
		text(" "),
		ast.New(ast.KindBold, "", ast.New(ast.KindItalic, "", text("d"))),
		text(" snake_case_name"),
	))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseInlineCodeAndEscapes(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "use `` a*b` `` not \\*this\\*"))
	want := doc(para(
		text("use "),
		ast.New(ast.KindInlineCode, "", ast.Leaf(ast.KindCode, "a*b`")),
		text(" not *this*"),
	))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseCodeBlockVerbatim(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, "start\n```lang\ncode\n  *kept*  \n```\nend"))
	want := doc(
		para(text("start")),
		ast.New(ast.KindCodeBlock, "",
			ast.Leaf(ast.KindCodeLanguage, "lang"),
			ast.Leaf(ast.KindCodeLine, "code"),
			ast.Leaf(ast.KindCodeLine, "  *kept*  "),
		),
		para(text("end")),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseQuoteListSeparatorComment(t *testing.T) {
	t.Parallel()
	src := strings.Join([]string{
		"> one *x*",
		"> two",
		"---",
		"- a",
		"  more",
		"* b",
		"<!-- note",
		"end -->",
	}, "\n")
	got := shape(mustParse(t, src))
	want := doc(
		ast.New(ast.KindQuote, "",
			ast.New(ast.KindQuoteLine, "", text("one "), ast.New(ast.KindItalic, "", text("x"))),
			ast.New(ast.KindQuoteLine, "", text("two")),
		),
		ast.Leaf(ast.KindHorizontalSeparator, "---"),
		ast.New(ast.KindList, "",
			ast.New(ast.KindListElement, "", text("a"), softBreak(), text("more")),
			ast.New(ast.KindListElement, "", text("b")),
		),
		ast.Leaf(ast.KindComment, " note\nend "),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	t.Parallel()
	got := shape(mustParse(t, ""))
	if diff := cmp.Diff(doc(), got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParseFailures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		src      string
		line     int
		expected string
	}{
		{name: "fence", src: "text\n\n```go\nfmt.Println()\n", line: 3, expected: "```"},
		{name: "tilde", src: "~~~~\ncode\n~~~", line: 1, expected: "~~~~"},
		{name: "comment", src: "<!-- open\nnever closed", line: 1, expected: "-->"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tc.src)
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if perr.Line != tc.line || perr.Column != 1 {
				t.Fatalf("unexpected location %d:%d", perr.Line, perr.Column)
			}
			if len(perr.Expected) != 1 || perr.Expected[0] != tc.expected {
				t.Fatalf("unexpected expectation %v", perr.Expected)
			}
			if !strings.Contains(perr.Error(), "expected") {
				t.Fatalf("diagnostic lacks expectation: %q", perr.Error())
			}
		})
	}
}
