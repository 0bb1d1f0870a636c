package mdtrans

import (
	"io"
	"log/slog"
)

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	logger             *slog.Logger
	panicOnUnsupported bool
	frontMatter        bool
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{frontMatter: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger
	}
	return cfg
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger traces both passes at debug level.
func WithLogger(logger *slog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}

// WithPanicOnUnsupported makes an unsupported construct panic instead of
// failing the render. Meant for checking renderer completeness in tests.
func WithPanicOnUnsupported(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.panicOnUnsupported = enabled
	}
}

// WithFrontMatter enables or disables front matter detection at the start of
// the document. Enabled by default.
func WithFrontMatter(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.frontMatter = enabled
	}
}
