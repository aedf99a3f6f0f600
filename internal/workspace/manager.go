// Package workspace keeps track of open workspaces and serves read-only
// snapshots of them for anchor resolution.
package workspace

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"mddrop/internal/storage"
)

// Manager wraps a WorkspaceStore with a snapshot cache. Every mutation made
// through the manager evicts the affected snapshot.
type Manager struct {
	store storage.WorkspaceStore
	cache *lru.Cache[string, *Snapshot]

	// generations counts mutations per workspace name. A snapshot loaded while
	// the generation moved is returned to its caller but never cached.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewManager creates a manager caching up to cacheSize snapshots.
func NewManager(store storage.WorkspaceStore, cacheSize int) (*Manager, error) {
	cache, err := lru.New[string, *Snapshot](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot cache: %w", err)
	}
	return &Manager{
		store:       store,
		cache:       cache,
		generations: make(map[string]uint64),
	}, nil
}

// Ensure gets or creates the named workspace. Non-nil roots replace the root
// list; a non-nil dropEnabled updates the feature switch.
func (m *Manager) Ensure(ctx context.Context, name string, roots []string, dropEnabled *bool) (storage.WorkspaceRecord, error) {
	ws, err := m.store.GetOrCreateByName(ctx, name)
	if err != nil {
		return storage.WorkspaceRecord{}, fmt.Errorf("failed to create workspace %s: %w", name, err)
	}
	defer m.invalidate(name)

	if roots != nil {
		if err := m.store.SetRoots(ctx, ws.ID, roots); err != nil {
			return storage.WorkspaceRecord{}, fmt.Errorf("failed to set roots for workspace %s: %w", name, err)
		}
	}
	if dropEnabled != nil && *dropEnabled != ws.DropEnabled {
		if err := m.store.SetDropEnabled(ctx, ws.ID, *dropEnabled); err != nil {
			return storage.WorkspaceRecord{}, fmt.Errorf("failed to update workspace %s: %w", name, err)
		}
		ws.DropEnabled = *dropEnabled
	}

	return ws, nil
}

// List returns all workspaces ordered by name.
func (m *Manager) List(ctx context.Context) ([]storage.WorkspaceRecord, error) {
	return m.store.ListAll(ctx)
}

// SetRoots replaces the roots of an existing workspace.
func (m *Manager) SetRoots(ctx context.Context, name string, roots []string) error {
	ws, err := m.store.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get workspace %s: %w", name, err)
	}
	defer m.invalidate(name)

	if err := m.store.SetRoots(ctx, ws.ID, roots); err != nil {
		return fmt.Errorf("failed to set roots for workspace %s: %w", name, err)
	}
	return nil
}

// OpenComposite records that a composite document with the given children is open.
func (m *Manager) OpenComposite(ctx context.Context, name, uri string, children []string) (storage.CompositeRecord, error) {
	ws, err := m.store.GetByName(ctx, name)
	if err != nil {
		return storage.CompositeRecord{}, fmt.Errorf("failed to get workspace %s: %w", name, err)
	}
	defer m.invalidate(name)

	rec, err := m.store.UpsertComposite(ctx, ws.ID, uri, children)
	if err != nil {
		return storage.CompositeRecord{}, fmt.Errorf("failed to open composite %s: %w", uri, err)
	}
	return rec, nil
}

// CloseComposite forgets a composite document.
func (m *Manager) CloseComposite(ctx context.Context, name, uri string) error {
	ws, err := m.store.GetByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get workspace %s: %w", name, err)
	}
	defer m.invalidate(name)

	if err := m.store.DeleteComposite(ctx, ws.ID, uri); err != nil {
		return fmt.Errorf("failed to close composite %s: %w", uri, err)
	}
	return nil
}

// Snapshot returns the current state of the named workspace. The result is
// shared and must not be modified.
func (m *Manager) Snapshot(ctx context.Context, name string) (*Snapshot, error) {
	if s, ok := m.cache.Get(name); ok {
		return s, nil
	}

	m.mu.Lock()
	gen := m.generations[name]
	m.mu.Unlock()

	rec, err := m.store.LoadSnapshot(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace %s: %w", name, err)
	}

	s := newSnapshot(rec)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generations[name] == gen {
		m.cache.Add(name, s)
	}
	return s, nil
}

// invalidate evicts the cached snapshot of name and marks in-flight loads stale.
func (m *Manager) invalidate(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generations[name]++
	m.cache.Remove(name)
}
