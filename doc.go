// Package mdtree converts Markdown into a tree of host UI nodes.
//
// Markdown is lexed into a sequence of Tokens (backed by goldmark), and the
// token tree is walked depth-first: every token's children are rendered
// before the token itself, and the render function registered for the
// token's Kind receives the already-rendered children. The node type is
// chosen by the caller through a Host, so the same pipeline can produce
// golang.org/x/net/html nodes (package dom), terminal nodes (package tty) or
// any other tree.
//
// Core properties:
//   - One render function per Kind; caller overrides replace built-ins
//   - Deterministic node keys derived from depth, sibling index and kind
//   - Base URL resolution, new-tab link policy and code language classes
//   - No shared mutable state between calls
//
// Example:
//
//	root, err := mdtree.Render(mdtree.Request[*html.Node]{
//		Source: "**hi** [x](y)",
//		Host:   dom.Host{},
//		Options: []mdtree.Option{
//			mdtree.WithBaseURL("https://a.test/"),
//			mdtree.WithOpenLinksInNewTab(false),
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(dom.String(root))
//
// Rendering of a single kind is replaced with Request.Renderers:
//
//	renderers := mdtree.Renderers[*html.Node]{
//		mdtree.KindHR: func(s mdtree.Scope[*html.Node], _ mdtree.Fields, _ []*html.Node) []*html.Node {
//			return nil // drop thematic breaks
//		},
//	}
package mdtree
