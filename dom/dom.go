// Package dom builds mdtree output as golang.org/x/net/html nodes.
//
// Host implements mdtree.Host[*html.Node]. The fragment returned by
// mdtree.Render is an html.DocumentNode whose children are the rendered
// blocks, so it serializes without a wrapping element:
//
//	root, err := mdtree.Render(mdtree.Request[*html.Node]{
//		Source: "# Hello\n\nWorld",
//		Host:   dom.Host{},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = dom.Render(os.Stdout, root)
//
// Raw HTML is rendered as escaped text by default. Sanitized replaces that
// with markup filtered through a bluemonday policy.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"pkt.systems/mdtree"
)

// Host constructs html.Node trees.
type Host struct {
	// KeyAttr, when set, stores each element's key in this attribute.
	KeyAttr string
}

var _ mdtree.Host[*html.Node] = Host{}

// Element returns an element node with the given children appended.
func (h Host) Element(name string, attrs mdtree.Attrs, key string, children []*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
	}
	if len(attrs) > 0 || h.KeyAttr != "" {
		n.Attr = make([]html.Attribute, 0, len(attrs)+1)
		for _, a := range attrs {
			n.Attr = append(n.Attr, html.Attribute{Key: a.Name, Val: a.Value})
		}
		if h.KeyAttr != "" && key != "" {
			n.Attr = append(n.Attr, html.Attribute{Key: h.KeyAttr, Val: key})
		}
	}
	appendChildren(n, children)
	return n
}

// Text returns a text node.
func (Host) Text(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Fragment returns a document node holding children.
func (Host) Fragment(children []*html.Node) *html.Node {
	n := &html.Node{Type: html.DocumentNode}
	appendChildren(n, children)
	return n
}

func appendChildren(parent *html.Node, children []*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}

// Render writes n as HTML.
func Render(w io.Writer, n *html.Node) error {
	if n == nil {
		return nil
	}
	if err := html.Render(w, n); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

// RenderBlocks writes each child of n as HTML on its own line.
func RenderBlocks(w io.Writer, n *html.Node) error {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := Render(w, c); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
	}
	return nil
}

// String returns n as HTML.
func String(n *html.Node) string {
	var b bytes.Buffer
	if err := Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

// Sanitized returns an html-kind renderer that keeps raw HTML as markup after
// filtering it through policy. A nil policy uses bluemonday.UGCPolicy.
func Sanitized(policy *bluemonday.Policy) mdtree.RenderFunc[*html.Node] {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return func(s mdtree.Scope[*html.Node], f mdtree.Fields, _ []*html.Node) []*html.Node {
		clean := policy.Sanitize(f.Text)
		if strings.TrimSpace(clean) == "" {
			return nil
		}
		context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
		if !f.Block {
			context = &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
		}
		nodes, err := html.ParseFragment(strings.NewReader(clean), context)
		if err != nil {
			return []*html.Node{s.Text(clean)}
		}
		return nodes
	}
}
