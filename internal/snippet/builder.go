package snippet

import (
	"mddrop/internal/linkpath"
	"mddrop/internal/locator"
	"mddrop/internal/media"
)

const (
	// DefaultImageText is the placeholder text for image references.
	DefaultImageText = "Alt text"
	// DefaultLinkText is the placeholder text for plain links.
	DefaultLinkText = "label"
	// DefaultSeparator separates consecutive items.
	DefaultSeparator = " "

	firstTabStop = 1
)

// Options tunes snippet construction. Nil fields take their defaults.
type Options struct {
	PlaceholderText       *string
	PlaceholderStartIndex *int
	InsertAsImage         *bool
	Separator             *string
}

// Build creates a snippet linking every locator in locs. The anchor directory,
// when present, is used to write relative paths. It reports false when locs is
// empty; there is no empty snippet.
func Build(locs []locator.Locator, anchor locator.Locator, hasAnchor bool, opts Options) (*Snippet, bool) {
	if len(locs) == 0 {
		return nil, false
	}

	separator := DefaultSeparator
	if opts.Separator != nil {
		separator = *opts.Separator
	}

	b := &builder{
		s:       &Snippet{fragments: make([]Fragment, 0, len(locs)*4)},
		tabStop: firstTabStop,
	}

	for i, loc := range locs {
		dest := linkpath.Resolve(anchor, hasAnchor, loc)
		image := media.IsImage(loc, opts.InsertAsImage)

		if image {
			b.text("![")
		} else {
			b.text("[")
		}

		label := DefaultLinkText
		if image {
			label = DefaultImageText
		}
		if opts.PlaceholderText != nil {
			label = *opts.PlaceholderText
		}

		if opts.PlaceholderStartIndex != nil {
			b.placeholderAt(label, *opts.PlaceholderStartIndex+i)
		} else {
			b.placeholder(label)
		}

		b.text("](" + dest + ")")

		if i != len(locs)-1 {
			b.separator(separator)
		}
	}

	return b.s, true
}

type builder struct {
	s       *Snippet
	tabStop int
}

func (b *builder) text(s string) {
	b.s.fragments = append(b.s.fragments, Fragment{Kind: KindText, Text: s})
}

func (b *builder) separator(s string) {
	b.s.fragments = append(b.s.fragments, Fragment{Kind: KindSeparator, Text: s})
}

// placeholder appends a placeholder numbered by the builder's own counter.
func (b *builder) placeholder(label string) {
	b.placeholderAt(label, b.tabStop)
}

func (b *builder) placeholderAt(label string, index int) {
	b.s.fragments = append(b.s.fragments, Fragment{Kind: KindPlaceholder, Text: label, TabStop: index})
	if index >= b.tabStop {
		b.tabStop = index + 1
	}
	b.s.nextTabStop = b.tabStop
}
