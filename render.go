package mdtrans

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"pkt.systems/mdtrans/ast"
	"pkt.systems/mdtrans/parser"
)

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader      io.Reader
	Writer      io.Writer
	Transformer Transformer
	Options     []RenderOption
}

// RenderString parses src and renders it with t.
//
// Parse failures are returned as *parser.Error. Hook failures carry the line
// of the construct that raised them and can be matched with errors.Is against
// ErrUnsupported.
func RenderString(src string, t Transformer, opts ...RenderOption) (string, error) {
	if t == nil {
		return "", fmt.Errorf("render: transformer is nil")
	}
	return renderBytes([]byte(src), t, newRenderConfig(opts))
}

// Render reads the whole document from req.Reader, renders it and writes the
// result to req.Writer. It returns the number of bytes written.
func Render(req RenderRequest) (int64, error) {
	if req.Reader == nil {
		return 0, fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return 0, fmt.Errorf("render: writer is nil")
	}
	if req.Transformer == nil {
		return 0, fmt.Errorf("render: transformer is nil")
	}
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)
	if _, err := buf.ReadFrom(req.Reader); err != nil {
		return 0, fmt.Errorf("render: read: %w", err)
	}
	out, err := renderBytes(buf.Bytes(), req.Transformer, newRenderConfig(req.Options))
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(req.Writer, out)
	if err != nil {
		return int64(n), fmt.Errorf("render: write: %w", err)
	}
	return int64(n), nil
}

func renderBytes(src []byte, t Transformer, cfg renderConfig) (string, error) {
	if err := ValidateInput(src); err != nil {
		return "", err
	}
	body := src
	var fm *FrontMatter
	if cfg.frontMatter {
		var err error
		if fm, body, err = SplitFrontMatter(src); err != nil {
			return "", err
		}
	}
	offset := bytes.Count(src[:len(src)-len(body)], []byte("\n"))
	doc, err := parser.Parse(string(body))
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			perr.Line += offset
		}
		return "", err
	}
	if offset > 0 {
		ast.Walk(doc, func(n *ast.Node) bool {
			if n.Line > 0 {
				n.Line += offset
			}
			return true
		})
	}
	if fm != nil {
		cfg.logger.Debug("front matter", "format", fm.Format, "keys", len(fm.Data))
		if p, ok := t.(FrontMatterPeeker); ok {
			p.PeekFrontMatter(fm.Data)
		}
	}
	return transform(doc, t, cfg)
}
