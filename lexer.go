package mdtree

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// LexOptions configures the lexer.
type LexOptions struct {
	// Breaks turns soft line breaks into hard breaks.
	Breaks bool
	// GFM enables tables, strikethrough, autolinks and task lists.
	GFM bool
	// Logger receives warnings about constructs that have no token kind.
	Logger *log.Logger
}

// Lex tokenizes a Markdown document.
func Lex(src string, opts LexOptions) []Token {
	md := newBlockMarkdown(opts.GFM)
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))
	l := newLexer(source, opts)
	return l.children(doc)
}

// LexInline tokenizes src as a single run of inline constructs. Block syntax
// such as headings or lists is kept as literal text.
func LexInline(src string, opts LexOptions) []Token {
	md := newInlineMarkdown(opts.GFM)
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))
	l := newLexer(source, opts)
	var out []Token
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		if block.PreviousSibling() != nil {
			out = append(out, l.lineBreak())
		}
		if _, ok := block.(*ast.Paragraph); ok {
			out = append(out, l.children(block)...)
			continue
		}
		if tok, ok := l.token(block); ok {
			out = append(out, tok)
		}
	}
	return out
}

func newBlockMarkdown(gfm bool) goldmark.Markdown {
	if !gfm {
		return goldmark.New()
	}
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

func newInlineMarkdown(gfm bool) goldmark.Markdown {
	p := parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
	)
	if !gfm {
		return goldmark.New(goldmark.WithParser(p))
	}
	return goldmark.New(
		goldmark.WithParser(p),
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	)
}

type lexer struct {
	source []byte
	breaks bool
	logger *log.Logger
}

func newLexer(source []byte, opts LexOptions) *lexer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &lexer{source: source, breaks: opts.Breaks, logger: logger}
}

func (l *lexer) children(n ast.Node) []Token {
	var out []Token
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			out = append(out, l.text(t)...)
			continue
		}
		if tok, ok := l.token(c); ok {
			out = append(out, tok)
		}
	}
	return out
}

func (l *lexer) lineBreak() Token {
	if l.breaks {
		return Token{Kind: KindBr}
	}
	return Token{Kind: KindSoftBreak}
}

// text splits a goldmark text node into its content and trailing break.
func (l *lexer) text(n *ast.Text) []Token {
	value := n.Segment.Value(l.source)
	if !n.IsRaw() {
		value = unescape(value)
	}
	var out []Token
	if len(value) > 0 {
		out = append(out, Token{Kind: KindText, Fields: Fields{Text: string(value)}})
	}
	switch {
	case n.HardLineBreak():
		out = append(out, Token{Kind: KindBr})
	case n.SoftLineBreak():
		out = append(out, l.lineBreak())
	}
	return out
}

func (l *lexer) token(n ast.Node) (Token, bool) {
	switch n := n.(type) {
	case *ast.Paragraph:
		return Token{Kind: KindParagraph, Children: l.children(n)}, true
	case *ast.TextBlock:
		return Token{Kind: KindText, Children: l.children(n)}, true
	case *ast.Heading:
		return Token{Kind: KindHeading, Fields: Fields{Depth: n.Level}, Children: l.children(n)}, true
	case *ast.ThematicBreak:
		return Token{Kind: KindHR}, true
	case *ast.CodeBlock:
		return Token{Kind: KindCode, Fields: Fields{Text: l.lines(n.Lines())}}, true
	case *ast.FencedCodeBlock:
		var lang string
		if n.Info != nil {
			lang = string(n.Language(l.source))
		}
		return Token{Kind: KindCode, Fields: Fields{Text: l.lines(n.Lines()), Lang: lang}}, true
	case *ast.Blockquote:
		return Token{Kind: KindBlockquote, Children: l.children(n)}, true
	case *ast.List:
		return Token{Kind: KindList, Fields: Fields{Ordered: n.IsOrdered(), Start: n.Start}, Children: l.children(n)}, true
	case *ast.ListItem:
		return Token{Kind: KindListItem, Children: l.children(n)}, true
	case *ast.HTMLBlock:
		raw := string(n.Lines().Value(l.source))
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(l.source))
		}
		return Token{Kind: KindHTML, Fields: Fields{Text: strings.TrimRight(raw, "\n"), Block: true}}, true
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(l.source))
		}
		return Token{Kind: KindHTML, Fields: Fields{Text: b.String()}}, true
	case *ast.String:
		value := n.Value
		if !n.IsRaw() && !n.IsCode() {
			value = unescape(value)
		}
		return Token{Kind: KindText, Fields: Fields{Text: string(value)}}, true
	case *ast.Emphasis:
		kind := KindEm
		if n.Level >= 2 {
			kind = KindStrong
		}
		return Token{Kind: kind, Children: l.children(n)}, true
	case *ast.CodeSpan:
		return Token{Kind: KindCodespan, Fields: Fields{Text: l.plain(n, " ", false)}}, true
	case *ast.Link:
		return Token{
			Kind:     KindLink,
			Fields:   Fields{Href: string(unescape(n.Destination)), Title: string(unescape(n.Title))},
			Children: l.children(n),
		}, true
	case *ast.AutoLink:
		href := n.URL(l.source)
		if n.AutoLinkType == ast.AutoLinkEmail && !bytes.HasPrefix(bytes.ToLower(href), []byte("mailto:")) {
			href = append([]byte("mailto:"), href...)
		}
		label := Token{Kind: KindText, Fields: Fields{Text: string(n.Label(l.source))}}
		return Token{Kind: KindLink, Fields: Fields{Href: string(href)}, Children: []Token{label}}, true
	case *ast.Image:
		return Token{Kind: KindImage, Fields: Fields{
			Href:  string(unescape(n.Destination)),
			Title: string(unescape(n.Title)),
			Text:  l.plain(n, "\n", true),
		}}, true
	case *east.Strikethrough:
		return Token{Kind: KindDel, Children: l.children(n)}, true
	case *east.TaskCheckBox:
		return Token{Kind: KindCheckbox, Fields: Fields{Checked: n.IsChecked}}, true
	case *east.Table:
		return l.table(n), true
	}
	l.logger.Warn("markdown node has no token kind", "node", n.Kind().String())
	return Token{}, false
}

func (l *lexer) table(n *east.Table) Token {
	head := Token{Kind: KindTableHead}
	body := Token{Kind: KindTableBody}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch row := c.(type) {
		case *east.TableHeader:
			head.Children = append(head.Children, Token{Kind: KindTableRow, Children: l.cells(row, true)})
		case *east.TableRow:
			body.Children = append(body.Children, Token{Kind: KindTableRow, Children: l.cells(row, false)})
		}
	}
	return Token{Kind: KindTable, Children: []Token{head, body}}
}

func (l *lexer) cells(row ast.Node, header bool) []Token {
	var out []Token
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		cell, ok := c.(*east.TableCell)
		if !ok {
			continue
		}
		out = append(out, Token{
			Kind:     KindTableCell,
			Fields:   Fields{Header: header, Align: alignment(cell.Alignment)},
			Children: l.children(cell),
		})
	}
	return out
}

func alignment(a east.Alignment) string {
	switch a {
	case east.AlignLeft:
		return "left"
	case east.AlignCenter:
		return "center"
	case east.AlignRight:
		return "right"
	default:
		return ""
	}
}

func (l *lexer) lines(lines *text.Segments) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(l.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// plain concatenates the text below n, joining soft breaks with sep.
func (l *lexer) plain(n ast.Node, sep string, resolve bool) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			value := c.Segment.Value(l.source)
			if resolve && !c.IsRaw() {
				value = unescape(value)
			}
			b.Write(value)
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString(sep)
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
