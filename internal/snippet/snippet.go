// Package snippet builds editable markdown snippets with tab-stop placeholders.
package snippet

import (
	"strconv"
	"strings"
)

// Kind identifies the role of a fragment within a snippet.
type Kind int

const (
	// KindText is literal markdown.
	KindText Kind = iota
	// KindPlaceholder is an editable region with a tab-stop index.
	KindPlaceholder
	// KindSeparator is the literal text placed between two items.
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPlaceholder:
		return "placeholder"
	case KindSeparator:
		return "separator"
	default:
		return "unknown"
	}
}

// Fragment is one piece of a snippet. TabStop is only set for placeholders.
type Fragment struct {
	Kind    Kind
	Text    string
	TabStop int
}

// Snippet is an ordered sequence of fragments. It is immutable once built.
type Snippet struct {
	fragments   []Fragment
	nextTabStop int
}

// Fragments returns a copy of the snippet's fragments.
func (s *Snippet) Fragments() []Fragment {
	out := make([]Fragment, len(s.fragments))
	copy(out, s.fragments)
	return out
}

// Placeholders returns the placeholder fragments in order.
func (s *Snippet) Placeholders() []Fragment {
	var out []Fragment
	for _, f := range s.fragments {
		if f.Kind == KindPlaceholder {
			out = append(out, f)
		}
	}
	return out
}

// TabStops returns the tab-stop index of each placeholder in order.
func (s *Snippet) TabStops() []int {
	placeholders := s.Placeholders()
	out := make([]int, 0, len(placeholders))
	for _, f := range placeholders {
		out = append(out, f.TabStop)
	}
	return out
}

// FinalTabStop returns the first tab-stop index not used by a placeholder.
func (s *Snippet) FinalTabStop() int {
	return s.nextTabStop
}

// Len returns the number of fragments.
func (s *Snippet) Len() int {
	return len(s.fragments)
}

// String renders the snippet as plain markdown with placeholder text in place.
func (s *Snippet) String() string {
	var b strings.Builder
	for _, f := range s.fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

// Template renders the snippet in editor snippet syntax, e.g. "![${1:Alt text}](c.png)".
func (s *Snippet) Template() string {
	var b strings.Builder
	for _, f := range s.fragments {
		if f.Kind != KindPlaceholder {
			b.WriteString(escape(f.Text))
			continue
		}
		b.WriteString("${")
		b.WriteString(strconv.Itoa(f.TabStop))
		if f.Text != "" {
			b.WriteByte(':')
			b.WriteString(escape(f.Text))
		}
		b.WriteByte('}')
	}
	return b.String()
}

var templateEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

func escape(s string) string {
	return templateEscaper.Replace(s)
}
