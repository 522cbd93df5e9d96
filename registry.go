package mdtree

import (
	"fmt"
	"net/url"
	"strconv"
)

// Host constructs the nodes of the target UI framework.
type Host[N any] interface {
	// Element builds a named node. key is stable across renders of the same
	// token layout and may be ignored by hosts without reconciliation.
	Element(name string, attrs Attrs, key string, children []N) N
	Text(text string) N
	// Fragment groups nodes without contributing a node of its own.
	Fragment(children []N) N
}

// RenderFunc renders one token from its fields and its rendered children.
// A nil or empty result emits nothing for the token.
type RenderFunc[N any] func(s Scope[N], f Fields, children []N) []N

// Renderers maps kinds to caller-supplied render functions. An entry fully
// replaces the built-in renderer for its kind.
type Renderers[N any] map[Kind]RenderFunc[N]

// Registry resolves the render function for every kind. It is built once per
// render call and never modified afterwards.
type Registry[N any] struct {
	host  Host[N]
	cfg   config
	base  *url.URL
	funcs [kindCount]RenderFunc[N]
}

// NewRegistry combines the built-in renderers with overrides. Override keys
// outside the known kinds and nil functions are ignored.
func NewRegistry[N any](host Host[N], overrides Renderers[N], opts ...Option) *Registry[N] {
	cfg := newConfig(opts)
	return newRegistry(host, overrides, cfg)
}

func newRegistry[N any](host Host[N], overrides Renderers[N], cfg config) *Registry[N] {
	r := &Registry[N]{
		host:  host,
		cfg:   cfg,
		base:  cfg.parsedBase(),
		funcs: builtins[N](),
	}
	for kind, fn := range overrides {
		if !kind.valid() {
			cfg.logger.Debug("ignoring renderer override", "kind", int(kind))
			continue
		}
		if fn == nil {
			continue
		}
		r.funcs[kind] = fn
	}
	return r
}

// Resolve returns the render function for kind. It panics for a kind outside
// the enumeration: the lexer only emits known kinds.
func (r *Registry[N]) Resolve(kind Kind) RenderFunc[N] {
	if !kind.valid() || r.funcs[kind] == nil {
		panic(fmt.Sprintf("mdtree: no renderer for token kind %d", kind))
	}
	return r.funcs[kind]
}

func (r *Registry[N]) scope(kind Kind, depth, index int) Scope[N] {
	return Scope[N]{reg: r, kind: kind, depth: depth, index: index}
}

// Scope describes the token being rendered and constructs its nodes.
type Scope[N any] struct {
	reg   *Registry[N]
	kind  Kind
	depth int
	index int
}

func (s Scope[N]) Kind() Kind { return s.kind }

// Depth is the nesting level of the token; top-level tokens have depth 0.
func (s Scope[N]) Depth() int { return s.depth }

// Index is the position of the token among its siblings.
func (s Scope[N]) Index() int { return s.index }

// Key returns the stable identity of the token's node.
func (s Scope[N]) Key() string {
	return nodeKey(s.kind, s.depth, s.index)
}

// Host returns the node factory.
func (s Scope[N]) Host() Host[N] { return s.reg.host }

// Element builds a node keyed with the token's key.
func (s Scope[N]) Element(name string, attrs Attrs, children ...N) N {
	return s.reg.host.Element(name, attrs, s.Key(), children)
}

// Text builds a text node.
func (s Scope[N]) Text(text string) N {
	return s.reg.host.Text(text)
}

// ResolveURL resolves a relative reference against the configured base URL.
func (s Scope[N]) ResolveURL(href string) string {
	return resolveURL(s.reg.base, href)
}

// LangClass returns the class of a code block in lang, or "" without a language.
func (s Scope[N]) LangClass(lang string) string {
	return langClass(s.reg.cfg.langPrefix, lang)
}

// NewTab reports whether links open in a new browsing context.
func (s Scope[N]) NewTab() bool { return s.reg.cfg.newTab }

func nodeKey(kind Kind, depth, index int) string {
	b := make([]byte, 0, 24)
	b = append(b, kind.String()...)
	b = append(b, '-')
	b = strconv.AppendInt(b, int64(depth), 10)
	b = append(b, '-')
	b = strconv.AppendInt(b, int64(index), 10)
	return string(b)
}

// resolveURL resolves href against base. Absolute hrefs pass through, as do
// hrefs that are empty or start with a query or fragment.
func resolveURL(base *url.URL, href string) string {
	if base == nil || href == "" || href[0] == '?' || href[0] == '#' {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}

func langClass(prefix, lang string) string {
	if lang == "" {
		return ""
	}
	return prefix + lang
}
