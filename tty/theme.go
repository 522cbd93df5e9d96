package tty

import (
	"sort"
	"strings"

	"pkt.systems/mdtree/internal/palette"
)

// Style is the SGR sequence written before styled text.
type Style struct {
	Prefix string
}

// Styles maps each rendered element to its style.
type Styles struct {
	Text           Style
	Heading        [6]Style
	Emphasis       Style
	Strong         Style
	EmphasisStrong Style
	Strike         Style
	CodeInline     Style
	CodeBlock      Style
	Quote          Style
	ListMarker     Style
	LinkText       Style
	LinkURL        Style
	ThematicBreak  Style
}

// Theme is a named set of Styles.
type Theme interface {
	Name() string
	Styles() Styles
}

type namedStyles struct {
	name   string
	styles Styles
}

func (t namedStyles) Name() string   { return t.name }
func (t namedStyles) Styles() Styles { return t.styles }

// NewTheme wraps styles as a Theme.
func NewTheme(name string, styles Styles) Theme {
	return namedStyles{name: name, styles: styles}
}

func sgr(codes ...string) Style {
	return Style{Prefix: strings.Join(codes, "")}
}

// paletteStyles colors every element from p. The two top heading levels are
// also bold.
func paletteStyles(p palette.Palette) Styles {
	var headings [6]Style
	for i, color := range [6]string{p.H1, p.H2, p.H3, p.H4, p.H5, p.H6} {
		if i < 2 {
			headings[i] = sgr(palette.Bold, color)
			continue
		}
		headings[i] = sgr(color)
	}
	return Styles{
		Text:           sgr(p.Text),
		Heading:        headings,
		Emphasis:       sgr(palette.Italic, p.Emphasis),
		Strong:         sgr(palette.Bold, p.Strong),
		EmphasisStrong: sgr(palette.Bold, palette.Italic, p.EmphasisStrong),
		Strike:         sgr(palette.Strike),
		CodeInline:     sgr(p.CodeInline),
		CodeBlock:      sgr(p.CodeBlock),
		Quote:          sgr(p.Quote),
		ListMarker:     sgr(p.ListMarker),
		LinkText:       sgr(palette.Underline, p.LinkText),
		LinkURL:        sgr(p.LinkURL),
		ThematicBreak:  sgr(p.ThematicBreak),
	}
}

const defaultThemeName = "default"

// themes is sorted by name.
var themes = []namedStyles{
	{name: "boring"},
	{name: "default", styles: paletteStyles(palette.PaletteDefault)},
	{name: "dracula", styles: paletteStyles(palette.PaletteDoomDracula)},
	{name: "github-light", styles: paletteStyles(palette.PaletteGithubLight)},
	{name: "gruvbox", styles: paletteStyles(palette.PaletteDoomGruvbox)},
	{name: "nord", styles: paletteStyles(palette.PaletteDoomNord)},
	{name: "solarized-dark", styles: paletteStyles(palette.PaletteSolarizedDark)},
	{name: "tokyo-night", styles: paletteStyles(palette.PaletteTokyoNight)},
}

// AvailableThemes lists the built-in theme names in order.
func AvailableThemes() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.name
	}
	return names
}

// ThemeByName looks up a built-in theme, ignoring case and surrounding space.
// An empty name selects the default theme.
func ThemeByName(name string) (Theme, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = defaultThemeName
	}
	i := sort.Search(len(themes), func(i int) bool { return themes[i].name >= name })
	if i == len(themes) || themes[i].name != name {
		return nil, false
	}
	return themes[i], true
}

// DefaultTheme returns the colored theme used when none is selected.
func DefaultTheme() Theme {
	t, _ := ThemeByName(defaultThemeName)
	return t
}

// BoringTheme returns a theme without any ANSI styling.
func BoringTheme() Theme {
	t, _ := ThemeByName("boring")
	return t
}
