package dom

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"pkt.systems/mdtree"
)

func render(t *testing.T, src string, renderers mdtree.Renderers[*html.Node], opts ...mdtree.Option) string {
	t.Helper()
	root, err := mdtree.Render(mdtree.Request[*html.Node]{
		Source:    src,
		Host:      Host{},
		Renderers: renderers,
		Options:   opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return String(root)
}

func TestGoldenHTML(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no markdown files under testdata")
	}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			goldenPath := strings.TrimSuffix(path, ".md") + ".html"
			want, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("read %s: %v (regenerate with go run ./cmd/gen-golden)", goldenPath, err)
			}
			root, err := mdtree.Render(mdtree.Request[*html.Node]{Source: string(src), Host: Host{}})
			if err != nil {
				t.Fatalf("render %s: %v", path, err)
			}
			var got bytes.Buffer
			if err := RenderBlocks(&got, root); err != nil {
				t.Fatalf("render blocks: %v", err)
			}
			if got.String() != string(want) {
				edits := myers.ComputeEdits(span.URIFromPath(goldenPath), string(want), got.String())
				t.Fatalf("golden mismatch for %s:\n%s", goldenPath, fmt.Sprint(gotextdiff.ToUnified(goldenPath, "got", string(want), edits)))
			}
		})
	}
}

func TestResolvedLinkWithoutNewTab(t *testing.T) {
	got := render(t, "**hi** [x](y)", nil,
		mdtree.WithBaseURL("https://a.test/"),
		mdtree.WithOpenLinksInNewTab(false),
	)
	want := `<p><strong>hi</strong> <a href="https://a.test/y">x</a></p>`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestInlineCodespan(t *testing.T) {
	got := render(t, "`code`", nil, mdtree.WithInline(true))
	if got != "<code>code</code>" {
		t.Fatalf("got %q", got)
	}
}

func TestCodeBlockWithoutLanguageHasNoClass(t *testing.T) {
	got := render(t, "```\nplain\n```\n", nil)
	if got != "<pre><code>plain</code></pre>" {
		t.Fatalf("got %q", got)
	}
}

func TestCodeBlockLangPrefix(t *testing.T) {
	got := render(t, "```rust\nfn main() {}\n```\n", nil, mdtree.WithLangPrefix("lang-"))
	if !strings.Contains(got, `<code class="lang-rust">`) {
		t.Fatalf("missing prefixed class in %q", got)
	}
}

func TestKeyAttr(t *testing.T) {
	root, err := mdtree.Render(mdtree.Request[*html.Node]{
		Source: "hi *there*",
		Host:   Host{KeyAttr: "data-key"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := String(root)
	want := `<p data-key="paragraph-0-0">hi <em data-key="em-1-1">there</em></p>`
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRawHTMLEscapedByDefault(t *testing.T) {
	got := render(t, "<script>alert(1)</script>\n", nil)
	if strings.Contains(got, "<script>") {
		t.Fatalf("raw html rendered as markup: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("expected escaped html, got %q", got)
	}
}

func TestSanitizedBlock(t *testing.T) {
	renderers := mdtree.Renderers[*html.Node]{mdtree.KindHTML: Sanitized(nil)}
	got := render(t, "<div onclick=\"x()\">hi</div>\n", renderers)
	if got != "<div>hi</div>" {
		t.Fatalf("got %q", got)
	}
	got = render(t, "<script>alert(1)</script>\n", renderers)
	if got != "" {
		t.Fatalf("expected script to be dropped, got %q", got)
	}
}

func TestSanitizedCustomPolicy(t *testing.T) {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("kbd")
	renderers := mdtree.Renderers[*html.Node]{mdtree.KindHTML: Sanitized(policy)}
	got := render(t, "Press <kbd>q</kbd> to quit", renderers)
	if got != "<p>Press <kbd></kbd>q to quit</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestFragmentHasNoElement(t *testing.T) {
	root, err := mdtree.Render(mdtree.Request[*html.Node]{Source: "", Host: Host{}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if root.Type != html.DocumentNode {
		t.Fatalf("expected document node, got %v", root.Type)
	}
	if root.FirstChild != nil {
		t.Fatalf("expected empty fragment")
	}
	if got := String(root); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestElementReparentsChildren(t *testing.T) {
	h := Host{}
	text := h.Text("moved")
	first := h.Element("p", nil, "", []*html.Node{text})
	second := h.Element("div", nil, "", []*html.Node{text})
	if first.FirstChild != nil {
		t.Fatalf("child still attached to first parent")
	}
	if second.FirstChild != text || text.Parent != second {
		t.Fatalf("child not attached to second parent")
	}
}

func TestRenderBlocksOneLinePerBlock(t *testing.T) {
	root, err := mdtree.Render(mdtree.Request[*html.Node]{Source: "# A\n\nb\n\n---\n", Host: Host{}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var out bytes.Buffer
	if err := RenderBlocks(&out, root); err != nil {
		t.Fatalf("render blocks: %v", err)
	}
	want := "<h1>A</h1>\n<p>b</p>\n<hr/>\n"
	if out.String() != want {
		t.Fatalf("got %q want %q", out.String(), want)
	}
}
