package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_workspace_store.go -package=mocks mddrop/internal/storage WorkspaceStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// WorkspaceStore defines the interface for workspace storage operations.
type WorkspaceStore interface {
	// GetOrCreateByName gets a workspace by name, creating it if needed.
	GetOrCreateByName(ctx context.Context, name string) (WorkspaceRecord, error)
	// GetByName gets a workspace by name. Returns ErrNotFound if missing.
	GetByName(ctx context.Context, name string) (WorkspaceRecord, error)
	// ListAll returns all workspaces ordered by name.
	ListAll(ctx context.Context) ([]WorkspaceRecord, error)
	// SetRoots replaces the ordered root list of a workspace.
	SetRoots(ctx context.Context, workspaceID string, roots []string) error
	// SetDropEnabled switches drop-to-link on or off for a workspace.
	SetDropEnabled(ctx context.Context, workspaceID string, enabled bool) error
	// UpsertComposite records an open composite document and replaces its children.
	UpsertComposite(ctx context.Context, workspaceID, uri string, children []string) (CompositeRecord, error)
	// DeleteComposite forgets a composite document. Returns ErrNotFound if missing.
	DeleteComposite(ctx context.Context, workspaceID, uri string) error
	// LoadSnapshot reads a workspace with its roots and composites.
	// Returns ErrNotFound if the workspace does not exist.
	LoadSnapshot(ctx context.Context, name string) (SnapshotRecord, error)
}

// WorkspaceRepo provides methods for workspace operations.
// It implements the WorkspaceStore interface.
type WorkspaceRepo struct {
	db *sql.DB
}

// NewWorkspaceRepo creates a new WorkspaceRepo.
func NewWorkspaceRepo(db *sql.DB) *WorkspaceRepo {
	return &WorkspaceRepo{db: db}
}

const selectWorkspace = "SELECT id, name, drop_enabled, created_at FROM workspaces"

func scanWorkspace(row interface{ Scan(...any) error }) (WorkspaceRecord, error) {
	var ws WorkspaceRecord
	err := row.Scan(&ws.ID, &ws.Name, &ws.DropEnabled, &ws.CreatedAt)
	return ws, err
}

// GetOrCreateByName gets an existing workspace by name, or creates it if it doesn't exist.
func (r *WorkspaceRepo) GetOrCreateByName(ctx context.Context, name string) (WorkspaceRecord, error) {
	ws, err := r.GetByName(ctx, name)
	if err == nil {
		return ws, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return WorkspaceRecord{}, err
	}

	// INSERT OR IGNORE keeps concurrent creators from failing on the unique name.
	if _, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO workspaces (id, name) VALUES (?, ?)",
		uuid.NewString(), name,
	); err != nil {
		return WorkspaceRecord{}, fmt.Errorf("failed to insert workspace: %w", err)
	}

	return r.GetByName(ctx, name)
}

// GetByName gets a workspace by name.
func (r *WorkspaceRepo) GetByName(ctx context.Context, name string) (WorkspaceRecord, error) {
	ws, err := scanWorkspace(r.db.QueryRowContext(ctx, selectWorkspace+" WHERE name = ?", name))
	if err == sql.ErrNoRows {
		return WorkspaceRecord{}, ErrNotFound
	}
	if err != nil {
		return WorkspaceRecord{}, fmt.Errorf("failed to query workspace: %w", err)
	}
	return ws, nil
}

// ListAll returns all workspaces ordered by name.
func (r *WorkspaceRepo) ListAll(ctx context.Context) ([]WorkspaceRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectWorkspace+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}
	defer rows.Close()

	var workspaces []WorkspaceRecord
	for rows.Next() {
		ws, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace: %w", err)
		}
		workspaces = append(workspaces, ws)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workspaces, nil
}

// SetRoots replaces the ordered root list of a workspace.
func (r *WorkspaceRepo) SetRoots(ctx context.Context, workspaceID string, roots []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM workspace_roots WHERE workspace_id = ?", workspaceID); err != nil {
		return fmt.Errorf("failed to clear workspace roots: %w", err)
	}
	for i, root := range roots {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO workspace_roots (workspace_id, position, uri) VALUES (?, ?, ?)",
			workspaceID, i, root,
		); err != nil {
			return fmt.Errorf("failed to insert workspace root: %w", err)
		}
	}

	return tx.Commit()
}

// SetDropEnabled switches drop-to-link on or off for a workspace.
func (r *WorkspaceRepo) SetDropEnabled(ctx context.Context, workspaceID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE workspaces SET drop_enabled = ? WHERE id = ?", enabled, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertComposite records an open composite document. An existing composite
// with the same URI keeps its ID and has its children replaced.
func (r *WorkspaceRepo) UpsertComposite(ctx context.Context, workspaceID, uri string, children []string) (CompositeRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return CompositeRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var id string
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM composites WHERE workspace_id = ? AND uri = ?",
		workspaceID, uri,
	).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		id = uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO composites (id, workspace_id, uri) VALUES (?, ?, ?)",
			id, workspaceID, uri,
		); err != nil {
			return CompositeRecord{}, fmt.Errorf("failed to insert composite: %w", err)
		}
	case err != nil:
		return CompositeRecord{}, fmt.Errorf("failed to query composite: %w", err)
	default:
		if _, err := tx.ExecContext(ctx, "DELETE FROM composite_children WHERE composite_id = ?", id); err != nil {
			return CompositeRecord{}, fmt.Errorf("failed to clear composite children: %w", err)
		}
	}

	for i, child := range children {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO composite_children (composite_id, position, uri) VALUES (?, ?, ?)",
			id, i, child,
		); err != nil {
			return CompositeRecord{}, fmt.Errorf("failed to insert composite child: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return CompositeRecord{}, fmt.Errorf("failed to commit composite: %w", err)
	}

	return CompositeRecord{
		ID:          id,
		WorkspaceID: workspaceID,
		URI:         uri,
		Children:    append([]string(nil), children...),
	}, nil
}

// DeleteComposite forgets a composite document and its children.
func (r *WorkspaceRepo) DeleteComposite(ctx context.Context, workspaceID, uri string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM composites WHERE workspace_id = ? AND uri = ?",
		workspaceID, uri,
	)
	if err != nil {
		return fmt.Errorf("failed to delete composite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// LoadSnapshot reads a workspace with its ordered roots and open composites.
// All reads share one read-only transaction so concurrent writers cannot tear
// the result.
func (r *WorkspaceRepo) LoadSnapshot(ctx context.Context, name string) (SnapshotRecord, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ws, err := scanWorkspace(tx.QueryRowContext(ctx, selectWorkspace+" WHERE name = ?", name))
	if err == sql.ErrNoRows {
		return SnapshotRecord{}, ErrNotFound
	}
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("failed to query workspace: %w", err)
	}
	snap := SnapshotRecord{Workspace: ws}

	roots, err := tx.QueryContext(ctx,
		"SELECT uri FROM workspace_roots WHERE workspace_id = ? ORDER BY position",
		ws.ID,
	)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("failed to query workspace roots: %w", err)
	}
	defer roots.Close()
	for roots.Next() {
		var uri string
		if err := roots.Scan(&uri); err != nil {
			return SnapshotRecord{}, fmt.Errorf("failed to scan workspace root: %w", err)
		}
		snap.Roots = append(snap.Roots, uri)
	}
	if err := roots.Err(); err != nil {
		return SnapshotRecord{}, err
	}
	_ = roots.Close()

	rows, err := tx.QueryContext(ctx,
		`SELECT c.id, c.uri, cc.uri
		FROM composites c
		LEFT JOIN composite_children cc ON cc.composite_id = c.id
		WHERE c.workspace_id = ?
		ORDER BY c.opened_at, c.id, cc.position`,
		ws.ID,
	)
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("failed to query composites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, uri string
		var child sql.NullString
		if err := rows.Scan(&id, &uri, &child); err != nil {
			return SnapshotRecord{}, fmt.Errorf("failed to scan composite: %w", err)
		}

		n := len(snap.Composites)
		if n == 0 || snap.Composites[n-1].ID != id {
			snap.Composites = append(snap.Composites, CompositeRecord{ID: id, WorkspaceID: ws.ID, URI: uri})
			n++
		}
		if child.Valid {
			snap.Composites[n-1].Children = append(snap.Composites[n-1].Children, child.String)
		}
	}
	if err := rows.Err(); err != nil {
		return SnapshotRecord{}, err
	}
	_ = rows.Close()

	if err := tx.Commit(); err != nil {
		return SnapshotRecord{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return snap, nil
}
