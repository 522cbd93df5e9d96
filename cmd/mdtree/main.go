package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/net/html"
	"golang.org/x/term"
	"pkt.systems/mdtree"
	"pkt.systems/mdtree/dom"
	"pkt.systems/mdtree/internal/config"
	"pkt.systems/mdtree/internal/frontmatter"
	"pkt.systems/mdtree/internal/logger"
	"pkt.systems/mdtree/server"
	"pkt.systems/mdtree/tty"
	"pkt.systems/version"
)

const (
	defaultWidth    = 80
	shutdownTimeout = 5 * time.Second
)

func init() {
	version.SetDefaultModule("pkt.systems/mdtree")
}

// settings is the merged result of flags, the config file and front matter.
type settings struct {
	format          string
	themeName       string
	width           int
	osc8            string
	inline          bool
	breaks          bool
	gfm             bool
	baseURL         string
	newTab          bool
	langPrefix      string
	langPrefixSet   bool
	maxDepth        int
	sanitize        bool
	keepFrontMatter bool
}

func main() {
	var (
		s           settings
		listThemes  bool
		outPath     string
		configPath  string
		serveAddr   string
		verbose     bool
		showVersion bool
	)

	flags := pflag.NewFlagSet("mdtree", pflag.ExitOnError)
	bindSettings(flags, &s)
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default "+config.ConfigPath()+")")
	flags.StringVar(&serveAddr, "serve", "", "Serve POST /render on this address instead of rendering inputs")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdtree [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}
	if listThemes {
		printThemes(os.Stdout)
		return
	}

	log := logger.New(os.Stderr, verbose)
	cfg, found, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if configPath == "" {
		log.ConfigLoaded(config.ConfigPath(), found)
	} else {
		log.ConfigLoaded(configPath, found)
	}
	applyConfig(flags, cfg, &s)
	if !flags.Changed("serve") && cfg.Serve != "" {
		serveAddr = cfg.Serve
	}

	if serveAddr != "" {
		if err := serve(serveAddr, s, log); err != nil {
			fmt.Fprintf(os.Stderr, "serve: %v\n", err)
			os.Exit(1)
		}
		return
	}

	switch s.format {
	case "html", "ansi", "tree":
	default:
		fmt.Fprintf(os.Stderr, "invalid --format %q: expected html|ansi|tree\n", s.format)
		os.Exit(2)
	}
	if _, ok := tty.ThemeByName(s.themeName); !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", s.themeName)
		printThemes(os.Stderr)
		os.Exit(2)
	}
	if _, err := resolveOSC8(s.osc8); err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", s.osc8, err)
		os.Exit(2)
	}

	args := flags.Args()
	reader, closer, err := openInputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	src, err := io.ReadAll(reader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	if err := mdtree.ValidateSource(src); err != nil {
		fmt.Fprintf(os.Stderr, "input: %v\n", err)
		os.Exit(1)
	}
	src = applyFrontMatter(src, &s, log)

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if s.width <= 0 && s.format == "ansi" {
		s.width = terminalWidth(defaultWidth)
	}
	start := time.Now()
	if err := renderDocument(writer, string(src), s, log); err != nil {
		log.RenderFailed(sourceName(args), err)
		os.Exit(1)
	}
	log.Rendered(sourceName(args), len(src), time.Since(start))
}

// bindSettings registers the flags that map onto settings.
func bindSettings(flags *pflag.FlagSet, s *settings) {
	flags.StringVarP(&s.format, "format", "f", "ansi", "Output format: html|ansi|tree")
	flags.BoolVar(&s.inline, "inline", false, "Treat input as a single inline run")
	flags.BoolVar(&s.breaks, "breaks", false, "Render soft line breaks as hard breaks")
	flags.BoolVar(&s.gfm, "gfm", true, "Enable GitHub Flavored Markdown extensions")
	flags.StringVar(&s.baseURL, "base-url", "", "Resolve relative links and images against this URL")
	flags.BoolVar(&s.newTab, "new-tab", true, "Open links in a new tab (html)")
	flags.StringVar(&s.langPrefix, "lang-prefix", mdtree.DefaultLangPrefix, "Class prefix for code block languages")
	flags.IntVar(&s.maxDepth, "max-depth", mdtree.DefaultMaxDepth, "Maximum token nesting depth")
	flags.BoolVar(&s.sanitize, "sanitize-html", false, "Keep raw HTML as sanitized markup instead of escaped text")
	flags.StringVarP(&s.themeName, "theme", "t", "default", "Theme name")
	flags.IntVarP(&s.width, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&s.osc8, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.BoolVar(&s.keepFrontMatter, "keep-front-matter", false, "Render front matter as Markdown")
}

// applyConfig copies config values into s for every flag the user did not set.
func applyConfig(flags *pflag.FlagSet, cfg *config.Config, s *settings) {
	if cfg == nil {
		return
	}
	if !flags.Changed("format") && cfg.Format != "" {
		s.format = strings.ToLower(cfg.Format)
	}
	if !flags.Changed("theme") && cfg.Theme != "" {
		s.themeName = cfg.Theme
	}
	if !flags.Changed("width") && cfg.Width > 0 {
		s.width = cfg.Width
	}
	if !flags.Changed("osc8") && cfg.OSC8 != "" {
		s.osc8 = cfg.OSC8
	}
	if !flags.Changed("inline") && cfg.Inline != nil {
		s.inline = *cfg.Inline
	}
	if !flags.Changed("breaks") && cfg.Breaks != nil {
		s.breaks = *cfg.Breaks
	}
	if !flags.Changed("gfm") && cfg.GFM != nil {
		s.gfm = *cfg.GFM
	}
	if !flags.Changed("base-url") && cfg.BaseURL != "" {
		s.baseURL = cfg.BaseURL
	}
	if !flags.Changed("new-tab") && cfg.OpenLinksInNewTab != nil {
		s.newTab = *cfg.OpenLinksInNewTab
	}
	if flags.Changed("lang-prefix") {
		s.langPrefixSet = true
	} else if cfg.LangPrefix != nil {
		s.langPrefix = *cfg.LangPrefix
		s.langPrefixSet = true
	}
	if !flags.Changed("max-depth") && cfg.MaxDepth > 0 {
		s.maxDepth = cfg.MaxDepth
	}
	if !flags.Changed("sanitize-html") && cfg.SanitizeHTML {
		s.sanitize = true
	}
}

// applyFrontMatter strips leading front matter unless keepFrontMatter is set.
// Its base_url and lang_prefix keys fill settings left unset.
func applyFrontMatter(src []byte, s *settings, log *logger.Logger) []byte {
	block, body, ok := frontmatter.Split(src)
	if !ok {
		return src
	}
	meta, err := block.Decode()
	if err != nil {
		log.Warn("ignoring front matter", "error", err)
	} else {
		if v := frontmatter.String(meta, "base_url"); v != "" && s.baseURL == "" {
			s.baseURL = v
		}
		if v, ok := meta["lang_prefix"].(string); ok && !s.langPrefixSet {
			s.langPrefix = v
			s.langPrefixSet = true
		}
		log.Debug("front matter", "format", block.Format, "keys", len(meta))
	}
	if s.keepFrontMatter {
		return src
	}
	return body
}

func (s settings) renderOptions(log *logger.Logger) []mdtree.Option {
	return []mdtree.Option{
		mdtree.WithInline(s.inline),
		mdtree.WithBreaks(s.breaks),
		mdtree.WithGFM(s.gfm),
		mdtree.WithBaseURL(s.baseURL),
		mdtree.WithOpenLinksInNewTab(s.newTab),
		mdtree.WithLangPrefix(s.langPrefix),
		mdtree.WithMaxDepth(s.maxDepth),
		mdtree.WithLogger(log.Logger),
	}
}

func renderDocument(w io.Writer, src string, s settings, log *logger.Logger) error {
	opts := s.renderOptions(log)
	switch s.format {
	case "html":
		var renderers mdtree.Renderers[*html.Node]
		if s.sanitize {
			renderers = mdtree.Renderers[*html.Node]{mdtree.KindHTML: dom.Sanitized(nil)}
		}
		root, err := mdtree.Render(mdtree.Request[*html.Node]{
			Source:    src,
			Host:      dom.Host{},
			Renderers: renderers,
			Options:   opts,
		})
		if err != nil {
			return err
		}
		if s.inline {
			if err := dom.Render(w, root); err != nil {
				return err
			}
			_, err = io.WriteString(w, "\n")
			return err
		}
		return dom.RenderBlocks(w, root)
	case "ansi":
		root, err := mdtree.Render(mdtree.Request[*tty.Node]{Source: src, Host: tty.Host{}, Options: opts})
		if err != nil {
			return err
		}
		theme, ok := tty.ThemeByName(s.themeName)
		if !ok {
			return fmt.Errorf("unknown theme %q", s.themeName)
		}
		osc8, err := resolveOSC8(s.osc8)
		if err != nil {
			return err
		}
		return tty.Render(w, root, tty.WithWidth(s.width), tty.WithTheme(theme), tty.WithOSC8(osc8))
	case "tree":
		root, err := mdtree.Render(mdtree.Request[*tty.Node]{Source: src, Host: tty.Host{}, Options: opts})
		if err != nil {
			return err
		}
		var b strings.Builder
		dumpTree(&b, root, 0)
		_, err = io.WriteString(w, b.String())
		return err
	default:
		return fmt.Errorf("unknown format %q", s.format)
	}
}

// dumpTree writes one line per node, indented by depth.
func dumpTree(b *strings.Builder, n *tty.Node, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	switch n.Type {
	case tty.TextNode:
		b.WriteString(strconv.Quote(n.Text))
	case tty.FragmentNode:
		b.WriteString("#fragment")
	default:
		b.WriteString(n.Tag)
		if n.Key != "" {
			b.WriteString(" key=")
			b.WriteString(n.Key)
		}
		for _, a := range n.Attrs {
			b.WriteString(" ")
			b.WriteString(a.Name)
			b.WriteString("=")
			b.WriteString(strconv.Quote(a.Value))
		}
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		dumpTree(b, c, depth+1)
	}
}

// serverOptions turns the rendering flags into handler defaults. The depth
// limit and logger cannot be changed per request.
func serverOptions(s settings, log *logger.Logger) []server.Option {
	opts := []server.Option{
		server.WithLogger(log.Logger),
		server.WithDefaults(s.renderOptions(log)...),
		server.WithRenderOptions(mdtree.WithMaxDepth(s.maxDepth), mdtree.WithLogger(log.Logger)),
	}
	if s.sanitize {
		opts = append(opts, server.WithSanitizer(nil))
	}
	return opts
}

func serve(addr string, s settings, log *logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(serverOptions(s, log)...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printThemes(w io.Writer) {
	for _, name := range tty.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func sourceName(args []string) string {
	if len(args) == 0 {
		return "stdin"
	}
	return strings.Join(args, ",")
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return tty.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}
