package mdtree

import "fmt"

// Request describes one render call.
type Request[N any] struct {
	Source    string
	Host      Host[N]
	Renderers Renderers[N]
	Options   []Option
}

// Render lexes the source, builds the node tree and wraps it in a fragment.
func Render[N any](req Request[N]) (N, error) {
	var zero N
	if req.Host == nil {
		return zero, fmt.Errorf("mdtree: render: Host is nil")
	}
	cfg := newConfig(req.Options)
	var tokens []Token
	if cfg.inline {
		tokens = LexInline(req.Source, cfg.lexOptions())
	} else {
		tokens = Lex(req.Source, cfg.lexOptions())
	}
	reg := newRegistry(req.Host, req.Renderers, cfg)
	nodes, err := Build(tokens, reg)
	if err != nil {
		return zero, err
	}
	return req.Host.Fragment(nodes), nil
}

// RenderProps validates dynamically typed props and renders them. opts are
// applied after the options derived from props.
func RenderProps[N any](host Host[N], props Props, renderers Renderers[N], opts ...Option) (N, error) {
	src, err := props.Source()
	if err != nil {
		var zero N
		return zero, err
	}
	return Render(Request[N]{
		Source:    src,
		Host:      host,
		Renderers: renderers,
		Options:   append(props.Options(), opts...),
	})
}
