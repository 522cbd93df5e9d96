package mdtree

import (
	"io"
	"net/url"

	"github.com/charmbracelet/log"
)

const (
	// DefaultLangPrefix is prepended to a code block's language to form its class.
	DefaultLangPrefix = "language-"
	// DefaultMaxDepth bounds token nesting during tree building.
	DefaultMaxDepth = 256
)

// Option configures lexing and rendering.
type Option func(*config)

type config struct {
	inline     bool
	breaks     bool
	gfm        bool
	baseURL    string
	newTab     bool
	langPrefix string
	maxDepth   int
	logger     *log.Logger
}

func defaultConfig() config {
	return config{
		gfm:        true,
		newTab:     true,
		langPrefix: DefaultLangPrefix,
		maxDepth:   DefaultMaxDepth,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	return cfg
}

// WithInline treats the source as a single inline run instead of a document.
func WithInline(enabled bool) Option {
	return func(cfg *config) {
		cfg.inline = enabled
	}
}

// WithBreaks turns soft line breaks into hard breaks.
func WithBreaks(enabled bool) Option {
	return func(cfg *config) {
		cfg.breaks = enabled
	}
}

// WithGFM enables or disables the GitHub Flavored Markdown extensions.
func WithGFM(enabled bool) Option {
	return func(cfg *config) {
		cfg.gfm = enabled
	}
}

// WithBaseURL resolves relative link and image references against base.
// An empty base leaves references untouched.
func WithBaseURL(base string) Option {
	return func(cfg *config) {
		cfg.baseURL = base
	}
}

// WithOpenLinksInNewTab sets target and rel attributes on links.
func WithOpenLinksInNewTab(enabled bool) Option {
	return func(cfg *config) {
		cfg.newTab = enabled
	}
}

// WithLangPrefix sets the class prefix of code block languages.
func WithLangPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.langPrefix = prefix
	}
}

// WithMaxDepth bounds token nesting. Values below 1 restore the default.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth < 1 {
			depth = DefaultMaxDepth
		}
		cfg.maxDepth = depth
	}
}

// WithLogger receives lexer warnings and registry debug output.
func WithLogger(logger *log.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

func (cfg config) lexOptions() LexOptions {
	return LexOptions{Breaks: cfg.breaks, GFM: cfg.gfm, Logger: cfg.logger}
}

// parsedBase returns the base URL when it is usable for resolution.
func (cfg config) parsedBase() *url.URL {
	if cfg.baseURL == "" {
		return nil
	}
	u, err := url.Parse(cfg.baseURL)
	if err != nil || !u.IsAbs() {
		return nil
	}
	return u
}
