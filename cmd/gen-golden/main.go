// Command gen-golden regenerates the HTML goldens under dom/testdata from the
// Markdown files next to them. Run it from the module root.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"pkt.systems/mdtree"
	"pkt.systems/mdtree/dom"
)

func main() {
	root := filepath.Join("dom", "testdata")
	if len(os.Args) > 1 {
		root = os.Args[1]
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", root)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		if err := mdtree.ValidateSource(src); err != nil {
			fatalf("validate %s: %v", path, err)
		}
		doc, err := mdtree.Render(mdtree.Request[*html.Node]{Source: string(src), Host: dom.Host{}})
		if err != nil {
			fatalf("render %s: %v", path, err)
		}
		var out bytes.Buffer
		if err := dom.RenderBlocks(&out, doc); err != nil {
			fatalf("serialize %s: %v", path, err)
		}
		goldenPath := strings.TrimSuffix(path, ".md") + ".html"
		if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
