package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// Foreign keys are enabled on every pooled connection through the DSN.
func New(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the workspace tables. It is idempotent.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS workspaces (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			drop_enabled INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS workspace_roots (
			workspace_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			uri TEXT NOT NULL,
			FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE,
			PRIMARY KEY (workspace_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS composites (
			id TEXT PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			uri TEXT NOT NULL,
			opened_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (workspace_id) REFERENCES workspaces(id) ON DELETE CASCADE,
			UNIQUE (workspace_id, uri)
		);`,
		`CREATE TABLE IF NOT EXISTS composite_children (
			composite_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			uri TEXT NOT NULL,
			FOREIGN KEY (composite_id) REFERENCES composites(id) ON DELETE CASCADE,
			PRIMARY KEY (composite_id, position)
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
