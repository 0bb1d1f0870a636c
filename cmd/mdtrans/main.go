package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdtrans"
	"pkt.systems/mdtrans/ansi"
	"pkt.systems/mdtrans/html"
	"pkt.systems/mdtrans/text"
	"pkt.systems/version"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/mdtrans")
}

// documentRenderer is implemented by the html, text and ansi renderers.
type documentRenderer interface {
	mdtrans.Transformer
	Render(src string, opts ...mdtrans.RenderOption) (string, error)
}

type rendererConfig struct {
	format     string
	theme      ansi.Theme
	width      int
	osc8       bool
	comments   bool
	headingIDs bool
	lenient    bool
}

func main() {
	var (
		format        string
		themeName     string
		widthFlag     int
		osc8Flag      string
		listThemes    bool
		outPath       string
		boring        bool
		comments      bool
		headingIDs    bool
		lenient       bool
		noFrontMatter bool
		strict        bool
		debug         bool
		showVersion   bool
	)

	flags := pflag.NewFlagSet("mdtrans", pflag.ExitOnError)
	flags.StringVarP(&format, "format", "f", "ansi", "Output format: ansi|text|html")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name (ansi)")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&comments, "comments", false, "Keep HTML comments in the output")
	flags.BoolVar(&headingIDs, "heading-ids", false, "Add id attributes to HTML headers")
	flags.BoolVar(&lenient, "lenient", false, "Render undefined reference links as plain text (html)")
	flags.BoolVar(&noFrontMatter, "no-front-matter", false, "Treat leading front matter as Markdown")
	flags.BoolVar(&strict, "strict", false, "Panic on constructs the renderer does not support")
	flags.BoolVar(&debug, "debug", false, "Trace rendering to stderr")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdtrans [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}
	if listThemes {
		printThemes(os.Stdout)
		return
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	theme, ok := ansi.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", themeName)
		printThemes(os.Stderr)
		os.Exit(2)
	}
	if boring {
		theme = boringTheme()
		osc8Flag = "off"
	}
	osc8, err := resolveOSC8(osc8Flag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		os.Exit(2)
	}
	renderer, err := newRenderer(rendererConfig{
		format:     format,
		theme:      theme,
		width:      resolveWidth(widthFlag),
		osc8:       osc8,
		comments:   comments,
		headingIDs: headingIDs,
		lenient:    lenient,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	opts := []mdtrans.RenderOption{
		mdtrans.WithLogger(logger),
		mdtrans.WithFrontMatter(!noFrontMatter),
		mdtrans.WithPanicOnUnsupported(strict),
	}
	n, err := renderDocument(writer, reader, renderer, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("rendered", "format", format, "bytes", n)
}

func newRenderer(cfg rendererConfig) (documentRenderer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.format)) {
	case "ansi", "":
		return ansi.New(
			ansi.WithTheme(cfg.theme),
			ansi.WithWidth(cfg.width),
			ansi.WithOSC8(cfg.osc8),
			ansi.WithComments(cfg.comments),
		), nil
	case "text", "txt", "plain":
		return text.New(text.WithWidth(cfg.width), text.WithComments(cfg.comments)), nil
	case "html":
		return html.New(
			html.WithComments(cfg.comments),
			html.WithHeadingIDs(cfg.headingIDs),
			html.WithLenientReferences(cfg.lenient),
		), nil
	default:
		return nil, fmt.Errorf("unknown format %q (expected ansi|text|html)", cfg.format)
	}
}

func renderDocument(w io.Writer, r io.Reader, renderer documentRenderer, opts []mdtrans.RenderOption) (int, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}
	out, err := renderer.Render(string(src), opts...)
	if err != nil {
		return 0, err
	}
	return io.WriteString(w, out)
}

func boringTheme() ansi.Theme {
	return ansi.NewTheme("boring", ansi.Styles{})
}

func printThemes(w io.Writer) {
	for _, name := range ansi.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return ansi.DetectOSC8Support() && term.IsTerminal(int(os.Stdout.Fd())), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}
