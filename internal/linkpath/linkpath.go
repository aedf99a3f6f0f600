// Package linkpath computes the path text written into a markdown link destination.
package linkpath

import (
	"net/url"
	"path"
	"strings"

	"mddrop/internal/locator"
)

// Resolve returns the link destination for target. When an anchor directory is
// present and shares scheme and authority with target, the result is a
// percent-encoded relative path. Otherwise it is the absolute form of target
// without query or fragment.
func Resolve(anchor locator.Locator, hasAnchor bool, target locator.Locator) string {
	if hasAnchor && anchor.SameOrigin(target) {
		return Encode(Relative(anchor.Path(), target.Path()))
	}
	return target.WithoutMetadata().String()
}

// Relative returns the posix relative path from the directory from to to.
// It returns "" when both name the same location.
func Relative(from, to string) string {
	from = path.Clean("/" + from)
	to = path.Clean("/" + to)
	if from == to {
		return ""
	}

	fromParts := segments(from)
	toParts := segments(to)

	i := 0
	for i < len(fromParts) && i < len(toParts) && fromParts[i] == toParts[i] {
		i++
	}

	parts := make([]string, 0, len(fromParts)-i+len(toParts)-i)
	for range fromParts[i:] {
		parts = append(parts, "..")
	}
	parts = append(parts, toParts[i:]...)
	return strings.Join(parts, "/")
}

// Encode percent-encodes a relative path for use as a link destination.
// Parentheses are escaped so the destination never closes the link early.
func Encode(rel string) string {
	escaped := (&url.URL{Path: rel}).EscapedPath()

	// A colon in the first segment would read back as a scheme.
	first, _, _ := strings.Cut(escaped, "/")
	if strings.Contains(first, ":") {
		escaped = "./" + escaped
	}
	return escaped
}

func segments(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
