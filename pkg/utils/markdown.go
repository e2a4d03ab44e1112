package utils

import "strings"

// StripFrontmatter removes a leading "---" delimited YAML block and returns
// the remaining markdown body.
func StripFrontmatter(content string) string {
	trimmed := strings.TrimLeft(content, "\ufeff\r\n ")
	if !strings.HasPrefix(trimmed, "---") {
		return content
	}

	rest := strings.TrimPrefix(trimmed, "---")
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return content
	}

	body := rest[idx+len("\n---"):]
	return strings.TrimLeft(body, "\r\n")
}
