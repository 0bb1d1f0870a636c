// Package mdtrans turns Markdown into any output format through a small
// capability contract.
//
// A document is parsed into an ast.Node tree and walked twice. The peek pass
// calls every Peek hook of the Transformer with plain text arguments so the
// renderer can collect document-wide facts such as reference definitions. The
// transform pass then calls the Transform hooks bottom-up and concatenates
// their output. Every peek completes before the first transform.
//
// Renderers embed Base and override the constructs their format supports.
// Anything left unimplemented fails the render with ErrUnsupported.
//
// Example:
//
//	out, err := mdtrans.RenderString("# Hello\n\nMarkdown in, HTML out.\n", html.New())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
//
// The html, text and ansi subpackages provide ready-made renderers.
package mdtrans
