package mdtree

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestPropsTypeErrors(t *testing.T) {
	cases := []struct {
		name  string
		props Props
		field string
		got   string
	}{
		{name: "number value", props: Props{Value: 3}, field: "value", got: "number"},
		{name: "float value", props: Props{Value: 1.5}, field: "value", got: "number"},
		{name: "boolean children", props: Props{Children: true}, field: "children", got: "boolean"},
		{name: "array value", props: Props{Value: []any{"a"}}, field: "value", got: "array"},
		{name: "object children", props: Props{Children: map[string]any{}}, field: "children", got: "object"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RenderProps[*testNode](testHost{}, tc.props, nil)
			var typeErr *TypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected TypeError, got %v", err)
			}
			if typeErr.Field != tc.field || typeErr.Got != tc.got {
				t.Fatalf("got field=%q type=%q", typeErr.Field, typeErr.Got)
			}
		})
	}
}

func TestTypeErrorMessage(t *testing.T) {
	err := Props{Value: 3}.Validate()
	if err == nil || err.Error() != "mdtree: expected value to be of type string but got number" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPropsSource(t *testing.T) {
	cases := []struct {
		name  string
		props Props
		want  string
	}{
		{name: "value wins", props: Props{Value: "a", Children: "b"}, want: "a"},
		{name: "children fallback", props: Props{Children: "b"}, want: "b"},
		{name: "neither", props: Props{}, want: ""},
	}
	for _, tc := range cases {
		got, err := tc.props.Source()
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestRenderPropsFromJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "inline without new tab",
			body: `{"value":"[x](y)","isInline":true,"openLinksInNewTab":false,"baseURL":"https://a.test/"}`,
			want: `<a href="https://a.test/y">x</a>`,
		},
		{
			name: "children",
			body: `{"children":"**b**"}`,
			want: "<p><strong>b</strong></p>",
		},
		{
			name: "breaks and lang prefix",
			body: "{\"value\":\"a\\nb\\n\\n```go\\nx\\n```\",\"breaks\":true,\"langPrefix\":\"hl-\"}",
			want: `<p>a<br/>b</p><pre><code class="hl-go">x</code></pre>`,
		},
		{
			name: "gfm off",
			body: `{"value":"~~x~~","gfm":false}`,
			want: "<p>~~x~~</p>",
		},
		{
			name: "empty",
			body: `{}`,
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var props Props
			if err := json.Unmarshal([]byte(tc.body), &props); err != nil {
				t.Fatalf("decode: %v", err)
			}
			root, err := RenderProps[*testNode](testHost{}, props, nil)
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if got := root.String(); got != tc.want {
				t.Fatalf("got  %q\nwant %q", got, tc.want)
			}
		})
	}
}

func TestRenderPropsOptionsOverrideProps(t *testing.T) {
	inline := true
	root, err := RenderProps[*testNode](testHost{}, Props{Value: "*x*", IsInline: &inline}, nil, WithInline(false))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := root.String(); got != "<p><em>x</em></p>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderPropsNumberFromJSON(t *testing.T) {
	var props Props
	if err := json.Unmarshal([]byte(`{"value":3}`), &props); err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, err := RenderProps[*testNode](testHost{}, props, nil)
	var typeErr *TypeError
	if !errors.As(err, &typeErr) || typeErr.Got != "number" {
		t.Fatalf("expected number TypeError, got %v", err)
	}
}
