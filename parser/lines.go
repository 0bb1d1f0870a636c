package parser

import "strings"

func parseQuotePrefix(line string) (int, string, bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	j := i
	depth := 0
	for j < len(line) && line[j] == '>' {
		depth++
		j++
		if j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
	}
	if depth == 0 {
		return 0, line, false
	}
	return depth, line[j:], true
}

// parseListMarker recognises bullet markers and returns the marker width, the
// padding after it and the item content.
func parseListMarker(text string) (int, int, string, bool) {
	if text == "" {
		return 0, 0, "", false
	}
	switch text[0] {
	case '-', '+', '*':
		if len(text) < 2 || !isSpace(text[1]) {
			return 0, 0, "", false
		}
		padding, idx := countSpaces(text[1:])
		return 1, padding, text[1+idx:], true
	}
	return 0, 0, "", false
}

func parseHeading(text string) (int, string, bool) {
	if !strings.HasPrefix(text, "#") {
		return 0, "", false
	}
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level == len(text) {
		return level, "", true
	}
	if text[level] != ' ' && text[level] != '\t' {
		return 0, "", false
	}
	content := stripClosingHashes(strings.TrimSpace(text[level+1:]))
	return level, content, true
}

func stripClosingHashes(content string) string {
	end := len(content)
	for end > 0 && content[end-1] == '#' {
		end--
	}
	if end == len(content) {
		return content
	}
	if end == 0 {
		return ""
	}
	if !isSpace(content[end-1]) {
		return content
	}
	return strings.TrimRight(content[:end], " \t")
}

// fenceRun returns the opening fence (three or more backticks or tildes) at the
// start of text.
func fenceRun(text string) string {
	trim := strings.TrimSpace(text)
	if len(trim) < 3 {
		return ""
	}
	ch := trim[0]
	if ch != '`' && ch != '~' {
		return ""
	}
	n := 0
	for n < len(trim) && trim[n] == ch {
		n++
	}
	if n < 3 {
		return ""
	}
	if ch == '`' && strings.Contains(trim[n:], "`") {
		return ""
	}
	return trim[:n]
}

func isClosingFence(line string, open string) bool {
	trim := strings.TrimSpace(line)
	if len(trim) < len(open) {
		return false
	}
	for i := 0; i < len(trim); i++ {
		if trim[i] != open[0] {
			return false
		}
	}
	return true
}

func isThematicBreak(text string) bool {
	trim := strings.TrimSpace(text)
	if len(trim) < 3 {
		return false
	}
	ch := trim[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return false
	}
	for i := 0; i < len(trim); i++ {
		if trim[i] != ch {
			return false
		}
	}
	return true
}

// parseReferenceDefinition recognises "[slug]: url".
func parseReferenceDefinition(text string) (string, string, bool) {
	if !strings.HasPrefix(text, "[") {
		return "", "", false
	}
	idx := strings.Index(text, "]:")
	if idx <= 1 {
		return "", "", false
	}
	slug := text[1:idx]
	if strings.ContainsAny(slug, "[]") {
		return "", "", false
	}
	url := strings.TrimSpace(text[idx+2:])
	if url == "" {
		return "", "", false
	}
	return slug, url, true
}

func isCommentStart(text string) bool {
	return strings.HasPrefix(text, "<!--")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func leadingIndentCount(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			count++
			i++
			continue
		}
		if s[i] == '\t' {
			count += 4
			i++
			continue
		}
		break
	}
	return count, i
}

func countSpaces(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) && isSpace(s[i]) {
		count++
		i++
	}
	return count, i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
