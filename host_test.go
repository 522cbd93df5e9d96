package mdtree

import "strings"

// testNode is a minimal host node used to observe builder output.
type testNode struct {
	name     string
	attrs    Attrs
	key      string
	text     string
	isText   bool
	children []*testNode
}

type testHost struct{}

func (testHost) Element(name string, attrs Attrs, key string, children []*testNode) *testNode {
	return &testNode{name: name, attrs: attrs, key: key, children: children}
}

func (testHost) Text(text string) *testNode {
	return &testNode{text: text, isText: true}
}

func (testHost) Fragment(children []*testNode) *testNode {
	return &testNode{name: "#fragment", children: children}
}

// String serializes n as compact markup. Text is not escaped and elements
// without children are self-closing.
func (n *testNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *testNode) write(b *strings.Builder) {
	if n == nil {
		return
	}
	if n.isText {
		b.WriteString(n.text)
		return
	}
	if n.name == "#fragment" {
		for _, c := range n.children {
			c.write(b)
		}
		return
	}
	b.WriteString("<" + n.name)
	for _, a := range n.attrs {
		b.WriteString(" " + a.Name + "=\"" + a.Value + "\"")
	}
	if len(n.children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	for _, c := range n.children {
		c.write(b)
	}
	b.WriteString("</" + n.name + ">")
}

func renderString(src string, renderers Renderers[*testNode], opts ...Option) (string, error) {
	root, err := Render(Request[*testNode]{
		Source:    src,
		Host:      testHost{},
		Renderers: renderers,
		Options:   opts,
	})
	if err != nil {
		return "", err
	}
	return root.String(), nil
}

func nest(kind Kind, depth int, leaf Token) Token {
	tok := leaf
	for i := 0; i < depth; i++ {
		tok = Token{Kind: kind, Children: []Token{tok}}
	}
	return tok
}

func collectKeys(n *testNode, keys map[string]int) {
	if n == nil {
		return
	}
	if n.key != "" {
		keys[n.key]++
	}
	for _, c := range n.children {
		collectKeys(c, keys)
	}
}
