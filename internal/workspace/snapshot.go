package workspace

import (
	"mddrop/internal/locator"
	"mddrop/internal/storage"
)

// Snapshot is an immutable view of a workspace's open documents. It implements
// anchor.Workspace.
type Snapshot struct {
	Name        string
	DropEnabled bool

	roots      []locator.Locator
	composites []composite
}

type composite struct {
	uri      locator.Locator
	children []locator.Locator
}

// newSnapshot converts a stored record. Entries that are not valid locators are skipped.
func newSnapshot(rec storage.SnapshotRecord) *Snapshot {
	s := &Snapshot{
		Name:        rec.Workspace.Name,
		DropEnabled: rec.Workspace.DropEnabled,
	}

	for _, r := range rec.Roots {
		if l, ok := locator.Parse(r); ok {
			s.roots = append(s.roots, l)
		}
	}

	for _, c := range rec.Composites {
		uri, ok := locator.Parse(c.URI)
		if !ok {
			continue
		}
		comp := composite{uri: uri}
		for _, child := range c.Children {
			if l, ok := locator.Parse(child); ok {
				comp.children = append(comp.children, l)
			}
		}
		s.composites = append(s.composites, comp)
	}

	return s
}

// OwnerOf returns the composite document containing child.
func (s *Snapshot) OwnerOf(child locator.Locator) (locator.Locator, bool) {
	for _, c := range s.composites {
		for _, candidate := range c.children {
			if candidate.Equal(child) {
				return c.uri, true
			}
		}
	}
	return locator.Locator{}, false
}

// Roots returns the workspace roots in order.
func (s *Snapshot) Roots() []locator.Locator {
	out := make([]locator.Locator, len(s.roots))
	copy(out, s.roots)
	return out
}

// Composites returns the number of open composite documents.
func (s *Snapshot) Composites() int {
	return len(s.composites)
}
