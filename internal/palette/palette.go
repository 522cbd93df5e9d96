// Package palette holds the ANSI color sets behind the terminal themes.
package palette

import "strconv"

// SGR attribute prefixes.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
	Strike    = "\x1b[9m"
)

// Palette assigns a foreground color prefix to every semantic element.
type Palette struct {
	Text           string
	H1             string
	H2             string
	H3             string
	H4             string
	H5             string
	H6             string
	Emphasis       string
	Strong         string
	EmphasisStrong string
	CodeInline     string
	CodeBlock      string
	Quote          string
	ListMarker     string
	LinkText       string
	LinkURL        string
	ThematicBreak  string
}

// fg returns a 24-bit foreground color prefix for a 0xRRGGBB value.
func fg(rgb uint32) string {
	r := strconv.Itoa(int(rgb >> 16 & 0xff))
	g := strconv.Itoa(int(rgb >> 8 & 0xff))
	b := strconv.Itoa(int(rgb & 0xff))
	return "\x1b[38;2;" + r + ";" + g + ";" + b + "m"
}

var (
	PaletteDefault = Palette{
		H1:            fg(0xff79c6),
		H2:            fg(0xbd93f9),
		H3:            fg(0x8be9fd),
		H4:            fg(0x50fa7b),
		H5:            fg(0xf1fa8c),
		H6:            fg(0xffb86c),
		CodeInline:    fg(0xf1fa8c),
		CodeBlock:     fg(0xa6e22e),
		Quote:         fg(0x9e9e9e),
		ListMarker:    fg(0xff79c6),
		LinkText:      fg(0x8be9fd),
		LinkURL:       fg(0x6272a4),
		ThematicBreak: fg(0x6272a4),
	}

	PaletteDoomGruvbox = Palette{
		Text:           fg(0xebdbb2),
		H1:             fg(0xfb4934),
		H2:             fg(0xfabd2f),
		H3:             fg(0xb8bb26),
		H4:             fg(0x83a598),
		H5:             fg(0xd3869b),
		H6:             fg(0x8ec07c),
		Emphasis:       fg(0xfe8019),
		Strong:         fg(0xfabd2f),
		EmphasisStrong: fg(0xfb4934),
		CodeInline:     fg(0x8ec07c),
		CodeBlock:      fg(0xb8bb26),
		Quote:          fg(0xa89984),
		ListMarker:     fg(0xfe8019),
		LinkText:       fg(0x83a598),
		LinkURL:        fg(0x928374),
		ThematicBreak:  fg(0x665c54),
	}

	PaletteDoomDracula = Palette{
		Text:           fg(0xf8f8f2),
		H1:             fg(0xff79c6),
		H2:             fg(0xbd93f9),
		H3:             fg(0x8be9fd),
		H4:             fg(0x50fa7b),
		H5:             fg(0xf1fa8c),
		H6:             fg(0xffb86c),
		Emphasis:       fg(0xf1fa8c),
		Strong:         fg(0xffb86c),
		EmphasisStrong: fg(0xff5555),
		CodeInline:     fg(0x50fa7b),
		CodeBlock:      fg(0x50fa7b),
		Quote:          fg(0x6272a4),
		ListMarker:     fg(0xbd93f9),
		LinkText:       fg(0x8be9fd),
		LinkURL:        fg(0x6272a4),
		ThematicBreak:  fg(0x44475a),
	}

	PaletteDoomNord = Palette{
		Text:           fg(0xd8dee9),
		H1:             fg(0x88c0d0),
		H2:             fg(0x81a1c1),
		H3:             fg(0x5e81ac),
		H4:             fg(0xa3be8c),
		H5:             fg(0xebcb8b),
		H6:             fg(0xd08770),
		Emphasis:       fg(0xebcb8b),
		Strong:         fg(0xd08770),
		EmphasisStrong: fg(0xbf616a),
		CodeInline:     fg(0xa3be8c),
		CodeBlock:      fg(0xa3be8c),
		Quote:          fg(0x4c566a),
		ListMarker:     fg(0x88c0d0),
		LinkText:       fg(0x8fbcbb),
		LinkURL:        fg(0x4c566a),
		ThematicBreak:  fg(0x434c5e),
	}

	PaletteTokyoNight = Palette{
		Text:           fg(0xc0caf5),
		H1:             fg(0xf7768e),
		H2:             fg(0xff9e64),
		H3:             fg(0xe0af68),
		H4:             fg(0x9ece6a),
		H5:             fg(0x7dcfff),
		H6:             fg(0xbb9af7),
		Emphasis:       fg(0xe0af68),
		Strong:         fg(0xff9e64),
		EmphasisStrong: fg(0xf7768e),
		CodeInline:     fg(0x9ece6a),
		CodeBlock:      fg(0x9ece6a),
		Quote:          fg(0x565f89),
		ListMarker:     fg(0x7aa2f7),
		LinkText:       fg(0x7dcfff),
		LinkURL:        fg(0x565f89),
		ThematicBreak:  fg(0x3b4261),
	}

	PaletteSolarizedDark = Palette{
		Text:           fg(0x839496),
		H1:             fg(0xdc322f),
		H2:             fg(0xcb4b16),
		H3:             fg(0xb58900),
		H4:             fg(0x859900),
		H5:             fg(0x2aa198),
		H6:             fg(0x268bd2),
		Emphasis:       fg(0xb58900),
		Strong:         fg(0xcb4b16),
		EmphasisStrong: fg(0xdc322f),
		CodeInline:     fg(0x2aa198),
		CodeBlock:      fg(0x859900),
		Quote:          fg(0x586e75),
		ListMarker:     fg(0x268bd2),
		LinkText:       fg(0x268bd2),
		LinkURL:        fg(0x586e75),
		ThematicBreak:  fg(0x073642),
	}

	PaletteGithubLight = Palette{
		Text:           fg(0x24292f),
		H1:             fg(0x0550ae),
		H2:             fg(0x0550ae),
		H3:             fg(0x116329),
		H4:             fg(0x116329),
		H5:             fg(0x6639ba),
		H6:             fg(0x6639ba),
		Emphasis:       fg(0x953800),
		Strong:         fg(0x24292f),
		EmphasisStrong: fg(0xcf222e),
		CodeInline:     fg(0x0a3069),
		CodeBlock:      fg(0x0a3069),
		Quote:          fg(0x57606a),
		ListMarker:     fg(0x0969da),
		LinkText:       fg(0x0969da),
		LinkURL:        fg(0x57606a),
		ThematicBreak:  fg(0xd0d7de),
	}
)
