// Package tty renders mdtree output as styled terminal text.
//
// Host implements mdtree.Host[*tty.Node]; Render writes a node tree as ANSI
// text using a Theme, wrapping paragraphs to the configured width:
//
//	root, err := mdtree.Render(mdtree.Request[*tty.Node]{
//		Source: "# Hello\n\nMarkdown in, ANSI out.\n",
//		Host:   tty.Host{},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = tty.Render(os.Stdout, root, tty.WithWidth(80), tty.WithTheme(tty.DefaultTheme()))
package tty

import "pkt.systems/mdtree"

// NodeType distinguishes elements, text and fragments.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
	FragmentNode
)

// Node is one element of a terminal document.
type Node struct {
	Type     NodeType
	Tag      string
	Attrs    mdtree.Attrs
	Key      string
	Text     string
	Children []*Node
}

// Attr returns the named attribute value or "".
func (n *Node) Attr(name string) string {
	v, _ := n.Attrs.Get(name)
	return v
}

// Host constructs tty nodes.
type Host struct{}

var _ mdtree.Host[*Node] = Host{}

func (Host) Element(name string, attrs mdtree.Attrs, key string, children []*Node) *Node {
	return &Node{Type: ElementNode, Tag: name, Attrs: attrs, Key: key, Children: children}
}

func (Host) Text(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

func (Host) Fragment(children []*Node) *Node {
	return &Node{Type: FragmentNode, Children: children}
}
