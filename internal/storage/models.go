package storage

import "time"

// WorkspaceRecord is a row of the workspaces table.
type WorkspaceRecord struct {
	ID          string // UUID
	Name        string
	DropEnabled bool // per-workspace switch for drop-to-link
	CreatedAt   time.Time
}

// CompositeRecord is an open composite document (e.g. a notebook) and its
// child documents in order.
type CompositeRecord struct {
	ID          string // UUID
	WorkspaceID string
	URI         string
	Children    []string
}

// SnapshotRecord is everything needed to resolve drop anchors for one workspace.
type SnapshotRecord struct {
	Workspace  WorkspaceRecord
	Roots      []string
	Composites []CompositeRecord
}
