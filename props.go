package mdtree

import (
	"fmt"
	"reflect"
)

// Props are render inputs as decoded from JSON or YAML. The source is read
// from Value, falling back to Children; both must be strings when present.
type Props struct {
	Value             any     `json:"value,omitempty" yaml:"value,omitempty"`
	Children          any     `json:"children,omitempty" yaml:"children,omitempty"`
	IsInline          *bool   `json:"isInline,omitempty" yaml:"is_inline,omitempty"`
	Breaks            *bool   `json:"breaks,omitempty" yaml:"breaks,omitempty"`
	GFM               *bool   `json:"gfm,omitempty" yaml:"gfm,omitempty"`
	BaseURL           string  `json:"baseURL,omitempty" yaml:"base_url,omitempty"`
	OpenLinksInNewTab *bool   `json:"openLinksInNewTab,omitempty" yaml:"open_links_in_new_tab,omitempty"`
	LangPrefix        *string `json:"langPrefix,omitempty" yaml:"lang_prefix,omitempty"`
}

// TypeError reports a source field holding something other than a string.
type TypeError struct {
	Field string
	Got   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("mdtree: expected %s to be of type string but got %s", e.Field, e.Got)
}

// Validate checks the types of Value and Children.
func (p Props) Validate() error {
	if err := checkString("value", p.Value); err != nil {
		return err
	}
	return checkString("children", p.Children)
}

// Source validates the props and returns the Markdown source. Value takes
// precedence over Children; with neither set the source is empty.
func (p Props) Source() (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	if p.Value != nil {
		return p.Value.(string), nil
	}
	if p.Children != nil {
		return p.Children.(string), nil
	}
	return "", nil
}

// Options converts the set props into render options.
func (p Props) Options() []Option {
	var opts []Option
	if p.IsInline != nil {
		opts = append(opts, WithInline(*p.IsInline))
	}
	if p.Breaks != nil {
		opts = append(opts, WithBreaks(*p.Breaks))
	}
	if p.GFM != nil {
		opts = append(opts, WithGFM(*p.GFM))
	}
	if p.BaseURL != "" {
		opts = append(opts, WithBaseURL(p.BaseURL))
	}
	if p.OpenLinksInNewTab != nil {
		opts = append(opts, WithOpenLinksInNewTab(*p.OpenLinksInNewTab))
	}
	if p.LangPrefix != nil {
		opts = append(opts, WithLangPrefix(*p.LangPrefix))
	}
	return opts
}

func checkString(field string, v any) error {
	if v == nil {
		return nil
	}
	if _, ok := v.(string); ok {
		return nil
	}
	return &TypeError{Field: field, Got: typeName(v)}
}

// typeName names dynamic types the way JSON documents them.
func typeName(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
