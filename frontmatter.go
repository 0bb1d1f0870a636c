package mdtrans

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FrontMatter is a metadata block at the very start of a document, fenced by
// "---" (YAML), "+++" (TOML) or ";;;" (JSON).
type FrontMatter struct {
	Format string
	Raw    []byte
	Data   map[string]any
}

// SplitFrontMatter separates a leading front matter block from the body. When
// src does not open with a recognised block, fm is nil and body is src.
func SplitFrontMatter(src []byte) (fm *FrontMatter, body []byte, err error) {
	openLine, openNext := nextLine(src, 0)
	format, delim, ok := parseOpeningFrontMatterDelimiter(openLine)
	if !ok {
		return nil, src, nil
	}
	secondLine, _ := nextLine(src, openNext)
	if !frontMatterMetadataLikely(secondLine) {
		return nil, src, nil
	}
	closeStart, closeNext, found := findClosingFrontMatterDelimiter(src, openNext, delim)
	if !found {
		return nil, src, nil
	}
	fm = &FrontMatter{Format: format, Raw: src[openNext:closeStart]}
	if fm.Data, err = decodeFrontMatter(format, fm.Raw); err != nil {
		return nil, nil, &FrontMatterError{Format: format, Err: err}
	}
	return fm, src[closeNext:], nil
}

func decodeFrontMatter(format string, raw []byte) (map[string]any, error) {
	data := map[string]any{}
	var err error
	switch format {
	case "yaml":
		err = yaml.Unmarshal(raw, &data)
	case "toml":
		err = toml.Unmarshal(raw, &data)
	case "json":
		err = json.Unmarshal(raw, &data)
	}
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}

func nextLine(src []byte, start int) ([]byte, int) {
	if start >= len(src) {
		return nil, len(src)
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src)
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1
}

func parseOpeningFrontMatterDelimiter(line []byte) (string, []byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return "yaml", []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return "toml", []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return "json", []byte(";;;"), true
	default:
		return "", nil, false
	}
}

// frontMatterMetadataLikely keeps a leading "---" thematic break followed by
// ordinary prose from being mistaken for front matter.
func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next := nextLine(src, idx)
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
