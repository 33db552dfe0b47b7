package curly

// Option adjusts converter behavior.
type Option func(*config)

type config struct {
	markdown    bool
	frontMatter bool
}

func defaultConfig() config {
	return config{
		markdown:    true,
		frontMatter: true,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMarkdown toggles Markdown awareness. When disabled, code regions
// receive no special treatment and every straight quote in the input is
// converted. Enabled by default.
func WithMarkdown(enabled bool) Option {
	return func(cfg *config) {
		cfg.markdown = enabled
	}
}

// WithFrontMatter toggles front matter passthrough. Only meaningful with
// Markdown awareness enabled. Enabled by default.
func WithFrontMatter(enabled bool) Option {
	return func(cfg *config) {
		cfg.frontMatter = enabled
	}
}
