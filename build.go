package mdtree

import (
	"errors"
	"fmt"
)

// ErrMaxDepth reports token nesting beyond the configured limit.
var ErrMaxDepth = errors.New("token nesting exceeds max depth")

// Build renders tokens into nodes, one output position per token in token
// order. Children are rendered before their parent so the parent's render
// function receives finished nodes.
func Build[N any](tokens []Token, reg *Registry[N]) ([]N, error) {
	return reg.build(tokens, 0)
}

func (r *Registry[N]) build(tokens []Token, depth int) ([]N, error) {
	if depth >= r.cfg.maxDepth {
		return nil, fmt.Errorf("mdtree: build: %w (limit %d)", ErrMaxDepth, r.cfg.maxDepth)
	}
	out := make([]N, 0, len(tokens))
	for i := range tokens {
		tok := &tokens[i]
		var children []N
		if len(tok.Children) > 0 {
			var err error
			children, err = r.build(tok.Children, depth+1)
			if err != nil {
				return nil, err
			}
		}
		render := r.Resolve(tok.Kind)
		out = append(out, render(r.scope(tok.Kind, depth, i), tok.Fields, children)...)
	}
	return out, nil
}
