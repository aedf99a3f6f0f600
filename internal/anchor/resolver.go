// Package anchor determines the directory that dropped resources are linked relative to.
package anchor

import "mddrop/internal/locator"

const (
	// SchemeUntitled marks an unsaved buffer that has no directory of its own.
	SchemeUntitled = "untitled"
	// SchemeNotebookCell marks a document that is a cell of a composite notebook.
	SchemeNotebookCell = "notebook-cell"
	// SchemeVSCodeNotebookCell is the cell scheme used by VS Code.
	SchemeVSCodeNotebookCell = "vscode-notebook-cell"
)

// IsCompositeChild reports whether scheme names a cell of a composite document.
func IsCompositeChild(scheme string) bool {
	return scheme == SchemeNotebookCell || scheme == SchemeVSCodeNotebookCell
}

// Workspace is a read-only view of the open editor state.
type Workspace interface {
	// OwnerOf returns the composite document that contains child, if any.
	OwnerOf(child locator.Locator) (locator.Locator, bool)
	// Roots returns the open workspace roots in order.
	Roots() []locator.Locator
}

// Resolve returns the anchor directory for a drop into document. The boolean is
// false when no anchor exists; relative links are then disabled.
func Resolve(document locator.Locator, ws Workspace) (locator.Locator, bool) {
	basis := document
	if IsCompositeChild(document.Scheme()) && ws != nil {
		if owner, ok := ws.OwnerOf(document); ok {
			basis = owner
		}
	}

	if basis.Scheme() == SchemeUntitled {
		if ws == nil {
			return locator.Locator{}, false
		}
		roots := ws.Roots()
		if len(roots) == 0 {
			return locator.Locator{}, false
		}
		return roots[0], true
	}

	return basis.Dir(), true
}
