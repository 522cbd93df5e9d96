package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"pkt.systems/mdtree"
	"pkt.systems/mdtree/internal/config"
	"pkt.systems/mdtree/internal/logger"
	"pkt.systems/mdtree/server"
)

func TestOpenInputFileAndURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.md")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	reader, closer, err := openInputs([]string{path})
	if err != nil {
		t.Fatalf("openInputs file: %v", err)
	}
	defer func() { _ = closer.Close() }()
	buf, _ := io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file content: %q", string(buf))
	}

	fileURL := "file://" + path
	reader, closer, err = openInputs([]string{fileURL})
	if err != nil {
		t.Fatalf("openInputs file URL: %v", err)
	}
	defer func() { _ = closer.Close() }()
	buf, _ = io.ReadAll(reader)
	if string(buf) != "hello" {
		t.Fatalf("unexpected file URL content: %q", string(buf))
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# remote"))
	}))
	defer srv.Close()
	reader, closer, err = openInputs([]string{srv.URL})
	if err != nil {
		t.Fatalf("openInputs http: %v", err)
	}
	defer func() { _ = closer.Close() }()
	buf, _ = io.ReadAll(reader)
	if string(buf) != "# remote" {
		t.Fatalf("unexpected http content: %q", string(buf))
	}
}

func TestOpenInputsConcatenates(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.md")
	second := filepath.Join(dir, "b.md")
	if err := os.WriteFile(first, []byte("one "), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(second, []byte("two"), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	reader, closer, err := openInputs([]string{first, second})
	if err != nil {
		t.Fatalf("openInputs concat: %v", err)
	}
	defer func() { _ = closer.Close() }()
	buf, _ := io.ReadAll(reader)
	if string(buf) != "one two" {
		t.Fatalf("unexpected concatenated content: %q", string(buf))
	}
}

func TestOpenInputsMissingFileNamesSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.md")
	reader, closer, err := openInputs([]string{missing})
	if err != nil {
		t.Fatalf("openInputs should defer opening: %v", err)
	}
	defer func() { _ = closer.Close() }()
	_, err = io.ReadAll(reader)
	if err == nil {
		t.Fatalf("expected read error for missing file")
	}
	if !strings.Contains(err.Error(), "missing.md") {
		t.Fatalf("error %q does not name the source", err)
	}
}

func TestOpenInputsRejectsEmptyArgument(t *testing.T) {
	if _, _, err := openInputs([]string{"  "}); err == nil {
		t.Fatalf("expected error for empty argument")
	}
}

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"off": false,
		"1":   true,
		"0":   false,
	}
	for input, want := range cases {
		got, err := resolveOSC8(input)
		if err != nil {
			t.Fatalf("resolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("resolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := resolveOSC8("nope"); err == nil {
		t.Fatalf("expected error for invalid osc8 value")
	}
}

func testSettings(format string) settings {
	return settings{
		format:     format,
		themeName:  "boring",
		osc8:       "off",
		gfm:        true,
		langPrefix: mdtree.DefaultLangPrefix,
		maxDepth:   mdtree.DefaultMaxDepth,
	}
}

func TestRenderDocumentHTML(t *testing.T) {
	s := testSettings("html")
	s.baseURL = "https://docs.test/guide/"
	var out bytes.Buffer
	if err := renderDocument(&out, "**hi** [x](y)", s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	want := "<p><strong>hi</strong> <a href=\"https://docs.test/guide/y\">x</a></p>\n"
	if out.String() != want {
		t.Fatalf("html mismatch\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestRenderDocumentHTMLSanitize(t *testing.T) {
	s := testSettings("html")
	src := "<div onclick=\"x()\">hi</div>\n"

	var escaped bytes.Buffer
	if err := renderDocument(&escaped, src, s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	if !strings.Contains(escaped.String(), "&lt;div") {
		t.Fatalf("expected escaped raw html, got %q", escaped.String())
	}

	s.sanitize = true
	var sanitized bytes.Buffer
	if err := renderDocument(&sanitized, src, s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	got := sanitized.String()
	if !strings.Contains(got, "<div>hi</div>") || strings.Contains(got, "onclick") {
		t.Fatalf("expected sanitized markup, got %q", got)
	}
}

func TestRenderDocumentANSIBoring(t *testing.T) {
	s := testSettings("ansi")
	var out bytes.Buffer
	if err := renderDocument(&out, "# Title\n\nSome *text*.\n", s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	want := "# Title\n\nSome text.\n"
	if out.String() != want {
		t.Fatalf("ansi mismatch\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestRenderDocumentTree(t *testing.T) {
	s := testSettings("tree")
	var out bytes.Buffer
	if err := renderDocument(&out, "# Hi\n", s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	want := "#fragment\n  h1 key=heading-0-0\n    \"Hi\"\n"
	if out.String() != want {
		t.Fatalf("tree mismatch\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestRenderDocumentMaxDepth(t *testing.T) {
	s := testSettings("html")
	s.maxDepth = 2
	err := renderDocument(io.Discard, "> > > deep\n", s, logger.Discard())
	if err == nil {
		t.Fatalf("expected max depth error")
	}
}

func TestApplyFrontMatter(t *testing.T) {
	s := testSettings("html")
	src := []byte("---\nbase_url: https://docs.test/\nlang_prefix: lang-\n---\n[a](b)\n")
	body := applyFrontMatter(src, &s, logger.Discard())
	if string(body) != "[a](b)\n" {
		t.Fatalf("unexpected body %q", body)
	}
	if s.baseURL != "https://docs.test/" {
		t.Fatalf("baseURL=%q", s.baseURL)
	}
	if s.langPrefix != "lang-" {
		t.Fatalf("langPrefix=%q", s.langPrefix)
	}
}

func TestApplyFrontMatterKeepsExplicitSettings(t *testing.T) {
	s := testSettings("html")
	s.baseURL = "https://flag.test/"
	s.langPrefixSet = true
	s.keepFrontMatter = true
	src := []byte("---\nbase_url: https://docs.test/\nlang_prefix: lang-\n---\nbody\n")
	body := applyFrontMatter(src, &s, logger.Discard())
	if string(body) != string(src) {
		t.Fatalf("expected source kept, got %q", body)
	}
	if s.baseURL != "https://flag.test/" {
		t.Fatalf("baseURL overwritten: %q", s.baseURL)
	}
	if s.langPrefix != mdtree.DefaultLangPrefix {
		t.Fatalf("langPrefix overwritten: %q", s.langPrefix)
	}
}

func TestApplyConfigFlagsWin(t *testing.T) {
	var s settings
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	bindSettings(flags, &s)
	if err := flags.Parse([]string{"--width", "40", "--format", "tree"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	gfm := false
	prefix := "lang-"
	cfg := &config.Config{
		Format:     "html",
		Theme:      "nord",
		Width:      100,
		GFM:        &gfm,
		LangPrefix: &prefix,
		MaxDepth:   12,
	}
	applyConfig(flags, cfg, &s)
	if s.format != "tree" || s.width != 40 {
		t.Fatalf("flags lost: format=%q width=%d", s.format, s.width)
	}
	if s.themeName != "nord" || s.gfm || s.maxDepth != 12 {
		t.Fatalf("config not applied: theme=%q gfm=%v maxDepth=%d", s.themeName, s.gfm, s.maxDepth)
	}
	if s.langPrefix != "lang-" || !s.langPrefixSet {
		t.Fatalf("lang prefix not applied: %q set=%v", s.langPrefix, s.langPrefixSet)
	}
}

func TestDumpTreeAttributes(t *testing.T) {
	s := testSettings("tree")
	var out bytes.Buffer
	if err := renderDocument(&out, "[a](b \"t\")", s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	if !strings.Contains(out.String(), `a key=link-1-0 href="b" title="t"`) {
		t.Fatalf("missing link line in %q", out.String())
	}
}

func TestRenderDocumentInlineHTML(t *testing.T) {
	s := testSettings("html")
	s.inline = true
	var out bytes.Buffer
	if err := renderDocument(&out, "**a** b", s, logger.Discard()); err != nil {
		t.Fatalf("renderDocument: %v", err)
	}
	if out.String() != "<strong>a</strong> b\n" {
		t.Fatalf("inline html mismatch: %q", out.String())
	}
}

func TestServerOptionsCarryRenderFlags(t *testing.T) {
	s := testSettings("html")
	s.baseURL = "https://docs.test/"
	s.langPrefix = "hl-"
	s.breaks = true
	h := server.New(serverOptions(s, logger.Discard())...)

	body := strings.NewReader("{\"value\":\"[x](y)\\nz\\n\\n```go\\nq\\n```\"}")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/render", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%q", rec.Code, rec.Body.String())
	}
	want := `<p><a href="https://docs.test/y">x</a><br/>z</p><pre><code class="hl-go">q</code></pre>`
	if rec.Body.String() != want {
		t.Fatalf("got  %q\nwant %q", rec.Body.String(), want)
	}
}
