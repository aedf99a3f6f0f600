package locator

import (
	"net/url"
	"path"
	"strings"
)

// Locator is a parsed resource identifier (scheme, authority, path, query, fragment).
// The zero value is not a valid locator; use Parse.
type Locator struct {
	u url.URL
}

// Parse parses a single resource identifier. It reports false when s is not an
// absolute identifier with a scheme.
func Parse(s string) (Locator, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locator{}, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return Locator{}, false
	}
	return Locator{u: *u}, true
}

// Scheme returns the lowercased scheme, e.g. "file".
func (l Locator) Scheme() string {
	return l.u.Scheme
}

// Authority returns the user info and host part, e.g. "user@host:8080".
func (l Locator) Authority() string {
	if l.u.User != nil {
		return l.u.User.String() + "@" + l.u.Host
	}
	return l.u.Host
}

// Path returns the decoded hierarchical path. Opaque identifiers such as
// "untitled:Untitled-1" report their opaque part.
func (l Locator) Path() string {
	if l.u.Path == "" && l.u.Opaque != "" {
		return l.u.Opaque
	}
	return l.u.Path
}

// Query returns the raw query without the leading '?'.
func (l Locator) Query() string {
	return l.u.RawQuery
}

// Fragment returns the decoded fragment without the leading '#'.
func (l Locator) Fragment() string {
	return l.u.Fragment
}

// Ext returns the extension of the last path segment, including the leading dot.
func (l Locator) Ext() string {
	return path.Ext(l.Path())
}

// Dir returns the locator of the parent directory. Query and fragment are dropped.
func (l Locator) Dir() Locator {
	d := l.WithoutMetadata()
	if d.u.Opaque != "" {
		return d
	}
	d.u.Path = path.Dir(d.u.Path)
	d.u.RawPath = ""
	return d
}

// WithoutMetadata returns a copy of l with query and fragment removed.
func (l Locator) WithoutMetadata() Locator {
	c := l
	c.u.RawQuery = ""
	c.u.ForceQuery = false
	c.u.Fragment = ""
	c.u.RawFragment = ""
	return c
}

// Resolve resolves a relative reference against l treated as a directory.
func (l Locator) Resolve(ref string) (Locator, bool) {
	r, err := url.Parse(ref)
	if err != nil {
		return Locator{}, false
	}
	base := l.WithoutMetadata()
	if base.u.Opaque != "" {
		return Locator{}, false
	}
	if !strings.HasSuffix(base.u.Path, "/") {
		base.u.Path += "/"
		base.u.RawPath = ""
	}
	return Locator{u: *base.u.ResolveReference(r)}, true
}

// Equal reports whether l and o identify the same resource.
func (l Locator) Equal(o Locator) bool {
	return l.Scheme() == o.Scheme() &&
		l.Authority() == o.Authority() &&
		l.Path() == o.Path() &&
		l.Query() == o.Query() &&
		l.Fragment() == o.Fragment()
}

// SameOrigin reports whether l and o share scheme and authority.
func (l Locator) SameOrigin(o Locator) bool {
	return l.Scheme() == o.Scheme() && l.Authority() == o.Authority()
}

func (l Locator) String() string {
	return l.u.String()
}
