// Package frontmatter detects and strips metadata blocks at the start of a
// Markdown document.
//
// Three delimiters are recognized on the first line: "---" (YAML), "+++"
// (TOML) and ";;;" (JSON). A block only counts as front matter when its first
// line looks like metadata and a matching closing delimiter follows.
package frontmatter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"
)

// Format names the syntax of a front matter block.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Block is a detected front matter block.
type Block struct {
	Format Format
	Raw    []byte
}

// Split separates leading front matter from the document body. ok is false
// when src does not start with front matter, in which case body is src.
func Split(src []byte) (block Block, body []byte, ok bool) {
	openLine, openNext, found := nextLine(src, 0)
	if !found {
		return Block{}, src, false
	}
	delim, format, isFrontMatter := parseOpeningDelimiter(openLine)
	if !isFrontMatter {
		return Block{}, src, false
	}
	secondLine, _, found := nextLine(src, openNext)
	if !found || !metadataLikely(secondLine) {
		return Block{}, src, false
	}
	closeStart, closeNext, found := findClosingDelimiter(src, openNext, delim)
	if !found {
		return Block{}, src, false
	}
	return Block{Format: format, Raw: src[openNext:closeStart]}, src[closeNext:], true
}

// Decode parses the block into a key/value map.
func (b Block) Decode() (map[string]any, error) {
	meta := map[string]any{}
	var err error
	switch b.Format {
	case FormatYAML:
		err = yaml.Unmarshal(b.Raw, &meta)
	case FormatTOML:
		err = toml.Unmarshal(b.Raw, &meta)
	case FormatJSON:
		err = json.Unmarshal(b.Raw, &meta)
	default:
		return nil, fmt.Errorf("front matter: unknown format %q", b.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("front matter: decode %s: %w", b.Format, err)
	}
	return meta, nil
}

// String returns a string value from meta, or "".
func String(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningDelimiter(line []byte) ([]byte, Format, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), FormatYAML, true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), FormatTOML, true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), FormatJSON, true
	default:
		return nil, "", false
	}
}

func metadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

// findClosingDelimiter returns the start of the closing line and the offset
// just past it.
func findClosingDelimiter(src []byte, start int, delim []byte) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
