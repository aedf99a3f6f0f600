package locator

import "strings"

// ParseList parses a text/uri-list payload: one identifier per line, CRLF or LF
// separated. Blank lines, '#' comment lines and lines that fail to parse are
// dropped. Order and duplicates are preserved.
func ParseList(raw string) []Locator {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []Locator
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if l, ok := Parse(line); ok {
			out = append(out, l)
		}
	}
	return out
}
