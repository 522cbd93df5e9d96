package mdtree

import "strconv"

const (
	newTabTarget = "_blank"
	newTabRel    = "nofollow noopener noreferrer"
)

var headingTags = [...]string{"h1", "h2", "h3", "h4", "h5", "h6"}

func builtins[N any]() [kindCount]RenderFunc[N] {
	return [kindCount]RenderFunc[N]{
		KindParagraph:  element[N]("p"),
		KindHeading:    renderHeading[N],
		KindText:       renderText[N],
		KindBlockquote: element[N]("blockquote"),
		KindList:       renderList[N],
		KindListItem:   element[N]("li"),
		KindCheckbox:   renderCheckbox[N],
		KindCode:       renderCode[N],
		KindHTML:       renderHTML[N],
		KindTable:      element[N]("table"),
		KindTableHead:  element[N]("thead"),
		KindTableBody:  element[N]("tbody"),
		KindTableRow:   element[N]("tr"),
		KindTableCell:  renderTableCell[N],
		KindHR:         element[N]("hr"),
		KindStrong:     element[N]("strong"),
		KindEm:         element[N]("em"),
		KindDel:        element[N]("del"),
		KindCodespan:   renderCodespan[N],
		KindLink:       renderLink[N],
		KindImage:      renderImage[N],
		KindBr:         element[N]("br"),
		KindSoftBreak:  renderSoftBreak[N],
	}
}

func element[N any](name string) RenderFunc[N] {
	return func(s Scope[N], _ Fields, children []N) []N {
		return []N{s.Element(name, nil, children...)}
	}
}

func renderHeading[N any](s Scope[N], f Fields, children []N) []N {
	level := min(max(f.Depth, 1), len(headingTags))
	return []N{s.Element(headingTags[level-1], nil, children...)}
}

// renderText passes nested inline content through and renders leaves as text.
func renderText[N any](s Scope[N], f Fields, children []N) []N {
	if len(children) > 0 {
		return children
	}
	return []N{s.Text(f.Text)}
}

func renderList[N any](s Scope[N], f Fields, children []N) []N {
	if !f.Ordered {
		return []N{s.Element("ul", nil, children...)}
	}
	var attrs Attrs
	if f.Start != 1 {
		attrs = Attrs{{Name: "start", Value: strconv.Itoa(f.Start)}}
	}
	return []N{s.Element("ol", attrs, children...)}
}

func renderCheckbox[N any](s Scope[N], f Fields, _ []N) []N {
	attrs := Attrs{
		{Name: "type", Value: "checkbox"},
		{Name: "disabled", Value: ""},
	}
	if f.Checked {
		attrs = append(attrs, Attr{Name: "checked", Value: ""})
	}
	return []N{s.Element("input", attrs)}
}

func renderCode[N any](s Scope[N], f Fields, _ []N) []N {
	var attrs Attrs
	if class := s.LangClass(f.Lang); class != "" {
		attrs = Attrs{{Name: "class", Value: class}}
	}
	host := s.Host()
	code := host.Element("code", attrs, s.Key()+"-code", []N{host.Text(f.Text)})
	return []N{s.Element("pre", nil, code)}
}

// renderHTML keeps raw HTML as text; hosts escape it on output.
func renderHTML[N any](s Scope[N], f Fields, _ []N) []N {
	return []N{s.Text(f.Text)}
}

func renderTableCell[N any](s Scope[N], f Fields, children []N) []N {
	name := "td"
	if f.Header {
		name = "th"
	}
	var attrs Attrs
	if f.Align != "" {
		attrs = Attrs{{Name: "align", Value: f.Align}}
	}
	return []N{s.Element(name, attrs, children...)}
}

func renderCodespan[N any](s Scope[N], f Fields, _ []N) []N {
	return []N{s.Element("code", nil, s.Text(f.Text))}
}

func renderLink[N any](s Scope[N], f Fields, children []N) []N {
	attrs := Attrs{{Name: "href", Value: s.ResolveURL(f.Href)}}
	if f.Title != "" {
		attrs = append(attrs, Attr{Name: "title", Value: f.Title})
	}
	if s.NewTab() {
		attrs = append(attrs,
			Attr{Name: "target", Value: newTabTarget},
			Attr{Name: "rel", Value: newTabRel},
		)
	}
	return []N{s.Element("a", attrs, children...)}
}

func renderImage[N any](s Scope[N], f Fields, _ []N) []N {
	attrs := Attrs{
		{Name: "src", Value: s.ResolveURL(f.Href)},
		{Name: "alt", Value: f.Text},
	}
	if f.Title != "" {
		attrs = append(attrs, Attr{Name: "title", Value: f.Title})
	}
	return []N{s.Element("img", attrs)}
}

func renderSoftBreak[N any](s Scope[N], _ Fields, _ []N) []N {
	return []N{s.Text("\n")}
}
