package ansi

import (
	"strings"
	"testing"

	"pkt.systems/mdtrans"
	"pkt.systems/mdtrans/internal/palette"
)

func plain(opts ...Option) *Renderer {
	theme, _ := ThemeByName("plain")
	return New(append([]Option{WithTheme(theme)}, opts...)...)
}

func TestRenderPlainStructure(t *testing.T) {
	t.Parallel()
	src := strings.Join([]string{
		"# Title",
		"",
		"See [docs](https://example.com/docs) and **bold**.",
		"",
		"> quoted",
		"",
		"- one",
		"- two",
		"",
		"```go",
		"x := 1",
		"```",
		"",
		"---",
	}, "\n")
	out, err := plain().Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := strings.Join([]string{
		"# Title",
		"",
		"See docs (https://example.com/docs) and bold.",
		"",
		"│ quoted",
		"",
		"• one",
		"• two",
		"",
		"  go",
		"    x := 1",
		"",
		strings.Repeat("─", defaultRuleWidth),
		"",
	}, "\n")
	if out != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestRenderDefaultThemeStyles(t *testing.T) {
	t.Parallel()
	src := "# Title\n\n*em* **strong** `code` [site](https://example.com)\n\n> quote\n\n- item"
	out, err := New(WithOSC8(false)).Render(src)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	p := palette.PaletteDefault
	for _, want := range []string{p.H1, p.Emphasis, p.Strong, p.CodeInline, p.Quote, p.ListMarker, p.LinkText, p.LinkURL} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing style %q in output %q", want, out)
		}
	}
}

func TestOSC8Links(t *testing.T) {
	t.Parallel()
	out, err := plain(WithOSC8(true)).Render("[a](http://x)")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "\x1b]8;;http://x\x1b\\a\x1b]8;;\x1b\\\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestWrapAndFit(t *testing.T) {
	t.Parallel()
	out, err := plain(WithWidth(12)).Render("- alpha beta gamma\n\n> one two three")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "• alpha beta\n  gamma\n\n│ one two\n│ three\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestFitURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		url   string
		limit int
		want  string
	}{
		{url: "https://example.com/a", limit: 0, want: "https://example.com/a"},
		{url: "https://example.com/a", limit: 30, want: "https://example.com/a"},
		{url: "https://example.com/a", limit: 15, want: "example.com/a"},
		{url: "https://example.com/abcdef", limit: 10, want: "https://e…"},
	}
	for _, tc := range tests {
		if got := fitURL(tc.url, tc.limit); got != tc.want {
			t.Fatalf("fitURL(%q, %d): expected %q, got %q", tc.url, tc.limit, tc.want, got)
		}
	}
}

func TestDetectOSC8(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "nothing", env: map[string]string{}, want: false},
		{name: "forced off", env: map[string]string{"OSC8": "0", "WT_SESSION": "1"}, want: false},
		{name: "windows terminal", env: map[string]string{"WT_SESSION": "1"}, want: true},
		{name: "wezterm", env: map[string]string{"TERM_PROGRAM": "WezTerm"}, want: true},
		{name: "kitty", env: map[string]string{"TERM": "xterm-kitty"}, want: true},
		{name: "old vte", env: map[string]string{"VTE_VERSION": "4800"}, want: false},
		{name: "new vte", env: map[string]string{"VTE_VERSION": "6003"}, want: true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := detectOSC8(func(k string) string { return tc.env[k] })
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestReferenceLinks(t *testing.T) {
	t.Parallel()
	r := plain()
	out, err := r.Render("[a][s] [b][missing]\n\n[s]: http://s")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "a (http://s) b\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRendersEveryConstruct(t *testing.T) {
	t.Parallel()
	src := "# h\n\n**b** _i_ [l](u) [r][r] ![a](u)[width: 1, height: 2] `c`\n\n> q\n\n- x\n\n```\ncode\n```\n\n<!-- c -->\n\n---\n\n[r]: u"
	out, err := New(WithComments(true)).Render(src, mdtrans.WithPanicOnUnsupported(true))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<!-- c -->") || !strings.Contains(out, "1x2") {
		t.Fatalf("missing comment or image size in %q", out)
	}
}

func TestCodeBlockKeptVerbatim(t *testing.T) {
	t.Parallel()
	out, err := plain().Render("```sh\na  \n\n\n\nb\n```")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "  sh\n    a  \n\n\n\n    b\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestFirstReferenceDefinitionWins(t *testing.T) {
	t.Parallel()
	out, err := plain().Render("[x][R]\n\n[r]: first\n[R]: second")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "x (first)\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
