// Package sqlite stores paramtree snapshots as rows of a SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jrhy/paramtree/snapshot"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS snapshots (
  name     TEXT PRIMARY KEY,
  content  BLOB NOT NULL
);
`

// Persist implements the snapshot.Persist interface over a SQLite database.
type Persist struct {
	db *sql.DB
}

var _ snapshot.Persist = (*Persist)(nil)

// NewPersist opens (or creates) the SQLite database at dbPath with WAL
// mode enabled and makes sure the snapshots table exists.
func NewPersist(dbPath string) (*Persist, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Persist{db: db}, nil
}

// Close closes the underlying database connection.
func (p *Persist) Close() error {
	return p.db.Close()
}

// Store inserts the snapshot unless a row with the same name exists.
func (p *Persist) Store(ctx context.Context, name string, b []byte) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO snapshots (name, content) VALUES (?, ?)`, name, b)
	if err != nil {
		return fmt.Errorf("insert snapshot %s: %w", name, err)
	}
	return nil
}

// Load returns the content of the named snapshot.
func (p *Persist) Load(ctx context.Context, name string) ([]byte, error) {
	var b []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT content FROM snapshots WHERE name = ?`, name).Scan(&b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", snapshot.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot %s: %w", name, err)
	}
	return b, nil
}

// Names lists stored snapshot names in ascending order.
func (p *Persist) Names(ctx context.Context) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT name FROM snapshots ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
