package mdtree

// Kind identifies the Markdown construct a Token represents.
type Kind uint8

const (
	KindParagraph Kind = iota
	KindHeading
	KindText
	KindBlockquote
	KindList
	KindListItem
	KindCheckbox
	KindCode
	KindHTML
	KindTable
	KindTableHead
	KindTableBody
	KindTableRow
	KindTableCell
	KindHR
	KindStrong
	KindEm
	KindDel
	KindCodespan
	KindLink
	KindImage
	KindBr
	KindSoftBreak

	kindCount
)

var kindNames = [kindCount]string{
	KindParagraph:  "paragraph",
	KindHeading:    "heading",
	KindText:       "text",
	KindBlockquote: "blockquote",
	KindList:       "list",
	KindListItem:   "listitem",
	KindCheckbox:   "checkbox",
	KindCode:       "code",
	KindHTML:       "html",
	KindTable:      "table",
	KindTableHead:  "tablehead",
	KindTableBody:  "tablebody",
	KindTableRow:   "tablerow",
	KindTableCell:  "tablecell",
	KindHR:         "hr",
	KindStrong:     "strong",
	KindEm:         "em",
	KindDel:        "del",
	KindCodespan:   "codespan",
	KindLink:       "link",
	KindImage:      "image",
	KindBr:         "br",
	KindSoftBreak:  "softbreak",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if !k.valid() {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return k < kindCount
}

// ParseKind maps a kind name as returned by Kind.String back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Kinds returns every recognized kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Fields holds the kind-specific payload of a token. Only the fields
// relevant to the token's kind are set.
type Fields struct {
	// Text is the literal content of text, code, codespan and html tokens,
	// and the alt text of images.
	Text string
	// Depth is the heading level, 1 through 6.
	Depth int
	// Href is the link destination or image source, unresolved.
	Href  string
	Title string
	// Lang is the code block language, the first word of the info string.
	Lang    string
	Ordered bool
	Start   int
	Checked bool
	// Header marks table cells inside the table head.
	Header bool
	// Align is "left", "center", "right" or empty.
	Align string
	// Block distinguishes an HTML block from inline HTML.
	Block bool
}

// Token is one lexed Markdown construct. Container kinds carry their nested
// tokens in Children. Tokens are never modified after lexing.
type Token struct {
	Kind     Kind
	Fields   Fields
	Children []Token
}

// Attr is a single node attribute.
type Attr struct {
	Name  string
	Value string
}

// Attrs is an ordered attribute list.
type Attrs []Attr

// Get returns the value of the named attribute.
func (a Attrs) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}
