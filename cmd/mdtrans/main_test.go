package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/mdtrans"
	"pkt.systems/mdtrans/ansi"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path})
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL})
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# remote"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ = io.ReadAll(reader)
	if string(buf) != "# remote" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsRejectsEmptyArgument(t *testing.T) {
	if _, _, err := openInputs([]string{"  "}); err == nil {
		t.Fatalf("expected error for empty input argument")
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"off": false,
		"1":   true,
		"0":   false,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		if err != nil {
			t.Fatalf("resolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("resolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := resolveOSC8("nope"); err == nil {
		t.Fatalf("expected error for invalid osc8 value")
	}
}

func TestResolveWidthPrefersFlag(t *testing.T) {
	if got := resolveWidth(42); got != 42 {
		t.Fatalf("resolveWidth(42)=%d", got)
	}
}

func TestBoringThemeHasNoPrefixes(t *testing.T) {
	styles := boringTheme().Styles()
	if styles.Text.Prefix != "" {
		t.Fatalf("expected empty text prefix")
	}
	for i, h := range styles.Heading {
		if h.Prefix != "" {
			t.Fatalf("expected empty heading %d prefix", i+1)
		}
	}
	others := []string{
		styles.Emphasis.Prefix,
		styles.Strong.Prefix,
		styles.CodeInline.Prefix,
		styles.CodeBlock.Prefix,
		styles.Quote.Prefix,
		styles.ListMarker.Prefix,
		styles.LinkText.Prefix,
		styles.LinkURL.Prefix,
		styles.ThematicBreak.Prefix,
		styles.Comment.Prefix,
	}
	for i, prefix := range others {
		if prefix != "" {
			t.Fatalf("expected empty style prefix at %d", i)
		}
	}
}

func TestNewRendererFormats(t *testing.T) {
	t.Parallel()

	src := "# Title\n\nSee [docs](https://example.com).\n"
	tests := []struct {
		format string
		want   string
	}{
		{format: "html", want: `<a href="https://example.com">docs</a>`},
		{format: "text", want: "docs (https://example.com)"},
		{format: "ansi", want: "docs"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.format, func(t *testing.T) {
			t.Parallel()
			renderer, err := newRenderer(rendererConfig{
				format: tc.format,
				theme:  boringTheme(),
				width:  80,
			})
			if err != nil {
				t.Fatalf("newRenderer: %v", err)
			}
			var out bytes.Buffer
			n, err := renderDocument(&out, strings.NewReader(src), renderer, nil)
			if err != nil {
				t.Fatalf("renderDocument: %v", err)
			}
			if n != out.Len() {
				t.Fatalf("byte count %d, buffer holds %d", n, out.Len())
			}
			if !strings.Contains(out.String(), tc.want) {
				t.Fatalf("output missing %q:\n%s", tc.want, out.String())
			}
		})
	}
}

func TestNewRendererUnknownFormat(t *testing.T) {
	if _, err := newRenderer(rendererConfig{format: "pdf", theme: ansi.DefaultTheme()}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRenderDocumentWritesNothingOnFailure(t *testing.T) {
	renderer, err := newRenderer(rendererConfig{format: "text", theme: boringTheme()})
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	var out bytes.Buffer
	_, err = renderDocument(&out, strings.NewReader("intro\n\n```go\nnever closed\n"), renderer, []mdtrans.RenderOption{
		mdtrans.WithFrontMatter(false),
	})
	if err == nil {
		t.Fatalf("expected error for unterminated fence")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestPrintThemes(t *testing.T) {
	var out bytes.Buffer
	printThemes(&out)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(ansi.AvailableThemes()) {
		t.Fatalf("listed %d themes, want %d", len(lines), len(ansi.AvailableThemes()))
	}
	if !strings.Contains(out.String(), defaultThemeName) {
		t.Fatalf("default theme missing from list")
	}
}
