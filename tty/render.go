package tty

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"pkt.systems/mdtree/internal/palette"
)

// RenderOption configures terminal rendering.
type RenderOption func(*renderConfig)

type renderConfig struct {
	width int
	theme Theme
	osc8  bool
}

// WithWidth wraps paragraphs at width cells. Zero disables wrapping.
func WithWidth(width int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.width = width
	}
}

// WithTheme selects the styles used for each element.
func WithTheme(theme Theme) RenderOption {
	return func(cfg *renderConfig) {
		cfg.theme = theme
	}
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}

// Render writes n as styled terminal text followed by a newline.
func Render(w io.Writer, n *Node, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("tty render: writer is nil")
	}
	out := String(n, opts...)
	if out == "" {
		return nil
	}
	if _, err := io.WriteString(w, out+"\n"); err != nil {
		return fmt.Errorf("tty render: %w", err)
	}
	return nil
}

// String returns n as styled terminal text.
func String(n *Node, opts ...RenderOption) string {
	if n == nil {
		return ""
	}
	cfg := renderConfig{theme: DefaultTheme()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.theme == nil {
		cfg.theme = BoringTheme()
	}
	r := &renderer{styles: cfg.theme.Styles(), osc8: cfg.osc8}
	return strings.Join(r.blocks([]*Node{n}, cfg.width), "\n\n")
}

type renderer struct {
	styles Styles
	osc8   bool
}

var blockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "ul": true, "ol": true, "li": true, "pre": true, "hr": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "div": true,
}

func isBlock(n *Node) bool {
	switch n.Type {
	case FragmentNode:
		return true
	case ElementNode:
		return blockTags[n.Tag]
	}
	return false
}

// blocks renders nodes as a list of blocks. Consecutive inline nodes form one
// paragraph.
func (r *renderer) blocks(nodes []*Node, width int) []string {
	var out []string
	var run []*Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		if text := r.paragraph(run, width); strings.TrimSpace(stripStyles(text)) != "" {
			out = append(out, text)
		}
		run = run[:0]
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !isBlock(n) {
			run = append(run, n)
			continue
		}
		flush()
		if n.Type == FragmentNode {
			out = append(out, r.blocks(n.Children, width)...)
			continue
		}
		if text := r.block(n, width); text != "" {
			out = append(out, text)
		}
	}
	flush()
	return out
}

func (r *renderer) block(n *Node, width int) string {
	switch n.Tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := int(n.Tag[1] - '0')
		st := r.styles.Heading[level-1]
		marker := strings.Repeat("#", level) + " "
		body := wrap(r.inline(n.Children, st.Prefix), shrink(width, len(marker)))
		return applyStyle(st, prefixLines(body, marker, strings.Repeat(" ", len(marker))))
	case "p":
		return r.paragraph(n.Children, width)
	case "blockquote":
		inner := strings.Join(r.blocks(n.Children, shrink(width, 2)), "\n\n")
		marker := applyStyle(r.styles.Quote, ">")
		return prefixLines(inner, marker+" ", marker+" ")
	case "ul", "ol":
		return r.list(n, width)
	case "li":
		return r.item(n, width)
	case "pre":
		return r.code(n)
	case "hr":
		return applyStyle(r.styles.ThematicBreak, "---")
	case "table":
		return r.table(n)
	default:
		return strings.Join(r.blocks(n.Children, width), "\n\n")
	}
}

func (r *renderer) paragraph(nodes []*Node, width int) string {
	return wrap(applyStyle(r.styles.Text, r.inline(nodes, r.styles.Text.Prefix)), width)
}

func (r *renderer) list(n *Node, width int) string {
	ordered := n.Tag == "ol"
	num := 1
	if start := n.Attr("start"); start != "" {
		if v, err := strconv.Atoi(start); err == nil {
			num = v
		}
	}
	var items []string
	for _, li := range n.Children {
		if li == nil {
			continue
		}
		marker := "-"
		if ordered {
			marker = strconv.Itoa(num) + "."
			num++
		}
		pad := strings.Repeat(" ", len(marker)+1)
		body := r.item(li, shrink(width, len(pad)))
		items = append(items, prefixLines(body, applyStyle(r.styles.ListMarker, marker)+" ", pad))
	}
	return strings.Join(items, "\n")
}

func (r *renderer) item(li *Node, width int) string {
	children := li.Children
	if li.Type == ElementNode && li.Tag != "li" {
		children = []*Node{li}
	}
	return strings.Join(r.blocks(children, width), "\n")
}

func (r *renderer) code(pre *Node) string {
	text := textContent(pre)
	st := r.styles.CodeBlock
	if st.Prefix == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = st.Prefix + line + palette.Reset
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) table(n *Node) string {
	var headers []string
	var rows [][]string
	var aligns []string
	for _, section := range n.Children {
		if section == nil {
			continue
		}
		for _, tr := range section.Children {
			if tr == nil {
				continue
			}
			var cells []string
			for _, cell := range tr.Children {
				if cell == nil {
					continue
				}
				cells = append(cells, r.inline(cell.Children, ""))
				if cell.Tag == "th" {
					aligns = append(aligns, cell.Attr("align"))
				}
			}
			if section.Tag == "thead" && headers == nil {
				headers = cells
				continue
			}
			rows = append(rows, cells)
		}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := lipgloss.NewStyle().Padding(0, 1)
			if col < len(aligns) {
				switch aligns[col] {
				case "center":
					st = st.Align(lipgloss.Center)
				case "right":
					st = st.Align(lipgloss.Right)
				}
			}
			if row == table.HeaderRow {
				st = st.Bold(true)
			}
			return st
		})
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	t = t.Rows(rows...)
	return t.Render()
}

// inline renders nodes as one run of text. active is the style prefix in
// effect, restored after every nested style ends.
func (r *renderer) inline(nodes []*Node, active string) string {
	var b strings.Builder
	for _, n := range nodes {
		if n == nil {
			continue
		}
		b.WriteString(r.inlineNode(n, active))
	}
	return b.String()
}

func (r *renderer) inlineNode(n *Node, active string) string {
	switch n.Type {
	case TextNode:
		return strings.ReplaceAll(n.Text, "\n", " ")
	case FragmentNode:
		return r.inline(n.Children, active)
	}
	switch n.Tag {
	case "strong", "b":
		return r.styled(r.styles.Strong, n.Children, active)
	case "em", "i":
		if hasAncestorStyle(active, r.styles.Strong) {
			return r.styled(r.styles.EmphasisStrong, n.Children, active)
		}
		return r.styled(r.styles.Emphasis, n.Children, active)
	case "del", "s":
		return r.styled(r.styles.Strike, n.Children, active)
	case "code":
		return restyle(r.styles.CodeInline, textContent(n), active)
	case "a":
		return r.link(n, active)
	case "img":
		return r.image(n, active)
	case "br":
		return "\n"
	case "input":
		if n.Attr("type") != "checkbox" {
			return ""
		}
		if _, checked := n.Attrs.Get("checked"); checked {
			return "[x] "
		}
		return "[ ] "
	default:
		return r.inline(n.Children, active)
	}
}

func (r *renderer) styled(st Style, children []*Node, active string) string {
	return restyle(st, r.inline(children, active+st.Prefix), active)
}

func (r *renderer) link(n *Node, active string) string {
	href := n.Attr("href")
	label := r.styled(r.styles.LinkText, n.Children, active)
	if r.osc8 && href != "" {
		return hyperlink(href, label)
	}
	if href == "" || stripStyles(label) == href || "mailto:"+stripStyles(label) == href {
		return label
	}
	return label + " " + restyle(r.styles.LinkURL, "("+fitURL(href, maxURLWidth)+")", active)
}

func (r *renderer) image(n *Node, active string) string {
	alt := n.Attr("alt")
	if alt == "" {
		alt = "image"
	}
	src := n.Attr("src")
	if r.osc8 && src != "" {
		return hyperlink(src, restyle(r.styles.LinkText, alt, active))
	}
	return restyle(r.styles.LinkURL, alt+" ("+fitURL(src, maxURLWidth)+")", active)
}

const maxURLWidth = 60

func applyStyle(st Style, text string) string {
	if st.Prefix == "" || text == "" {
		return text
	}
	return st.Prefix + text + palette.Reset
}

// restyle applies st to text and then restores the enclosing style.
func restyle(st Style, text, active string) string {
	if st.Prefix == "" || text == "" {
		return text
	}
	return st.Prefix + text + palette.Reset + active
}

func hasAncestorStyle(active string, st Style) bool {
	return st.Prefix != "" && strings.Contains(active, st.Prefix)
}

func textContent(n *Node) string {
	if n.Type == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		if c != nil {
			b.WriteString(textContent(c))
		}
	}
	return b.String()
}

func stripStyles(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func shrink(width, by int) int {
	if width <= 0 {
		return width
	}
	return max(width-by, 1)
}
