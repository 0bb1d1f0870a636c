package mdtrans

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL         string
	Client      *http.Client
	Writer      io.Writer
	Transformer Transformer
	Options     []RenderOption
}

// HTTPRender fetches Markdown over HTTP(S) and renders it to req.Writer.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) (int64, error) {
	if req.URL == "" {
		return 0, fmt.Errorf("render http: URL is required")
	}
	if req.Writer == nil {
		return 0, fmt.Errorf("render http: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return 0, fmt.Errorf("render http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return 0, fmt.Errorf("render http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")
	resp, err := client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("render http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("render http: status %s", resp.Status)
	}
	return Render(RenderRequest{
		Reader:      resp.Body,
		Writer:      req.Writer,
		Transformer: req.Transformer,
		Options:     req.Options,
	})
}
