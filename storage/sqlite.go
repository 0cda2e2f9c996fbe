// Package storage persists workflow step lists through a local SQLite
// database. The editor treats it as an external collaborator: save is
// fire-and-forget from the editing session's perspective, and a load is a
// full-state replacement of the in-memory graph.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"sopflow/seed"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// WorkflowInfo identifies a stored workflow.
type WorkflowInfo struct {
	ID    string
	Title string
}

// Open opens or creates a SQLite database at the given path, creating the
// parent directory when needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS workflows (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS steps (
			workflow_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			x REAL,
			y REAL,
			connections_json TEXT NOT NULL,
			PRIMARY KEY (workflow_id, id),
			FOREIGN KEY (workflow_id) REFERENCES workflows(id)
		);

		CREATE INDEX IF NOT EXISTS idx_steps_workflow ON steps(workflow_id, seq);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveWorkflow upserts a workflow and its full step list. The previous step
// list is replaced wholesale.
func (d *DB) SaveWorkflow(id, title string, steps []seed.Step) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO workflows (id, title) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title`, id, title); err != nil {
		return fmt.Errorf("upserting workflow: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM steps WHERE workflow_id = ?`, id); err != nil {
		return fmt.Errorf("clearing steps: %w", err)
	}

	for i, s := range steps {
		conns, err := json.Marshal(append([]string{}, s.Connections...))
		if err != nil {
			return fmt.Errorf("encoding connections: %w", err)
		}
		var x, y any
		if s.X != nil && s.Y != nil {
			x, y = *s.X, *s.Y
		}
		if _, err := tx.Exec(
			`INSERT INTO steps (workflow_id, seq, id, title, description, type, x, y, connections_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, s.ID, s.Title, s.Description, s.Type, x, y, string(conns)); err != nil {
			return fmt.Errorf("inserting step %s: %w", s.ID, err)
		}
	}

	return tx.Commit()
}

// LoadWorkflow returns a workflow's title and ordered step list.
func (d *DB) LoadWorkflow(id string) (string, []seed.Step, error) {
	var title string
	if err := d.db.QueryRow(`SELECT title FROM workflows WHERE id = ?`, id).Scan(&title); err != nil {
		return "", nil, fmt.Errorf("loading workflow %s: %w", id, err)
	}

	rows, err := d.db.Query(
		`SELECT id, title, description, type, x, y, connections_json
		 FROM steps WHERE workflow_id = ? ORDER BY seq`, id)
	if err != nil {
		return "", nil, fmt.Errorf("loading steps: %w", err)
	}
	defer rows.Close()

	var steps []seed.Step
	for rows.Next() {
		var s seed.Step
		var desc sql.NullString
		var x, y sql.NullFloat64
		var conns string
		if err := rows.Scan(&s.ID, &s.Title, &desc, &s.Type, &x, &y, &conns); err != nil {
			return "", nil, fmt.Errorf("scanning step: %w", err)
		}
		s.Description = desc.String
		if x.Valid && y.Valid {
			xv, yv := x.Float64, y.Float64
			s.X, s.Y = &xv, &yv
		}
		if err := json.Unmarshal([]byte(conns), &s.Connections); err != nil {
			return "", nil, fmt.Errorf("decoding connections: %w", err)
		}
		steps = append(steps, s)
	}
	return title, steps, rows.Err()
}

// ListWorkflows returns the stored workflows.
func (d *DB) ListWorkflows() ([]WorkflowInfo, error) {
	rows, err := d.db.Query(`SELECT id, title FROM workflows ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("listing workflows: %w", err)
	}
	defer rows.Close()

	var out []WorkflowInfo
	for rows.Next() {
		var w WorkflowInfo
		if err := rows.Scan(&w.ID, &w.Title); err != nil {
			return nil, fmt.Errorf("scanning workflow: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteWorkflow removes a workflow and its steps.
func (d *DB) DeleteWorkflow(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM steps WHERE workflow_id = ?`, id); err != nil {
		return fmt.Errorf("deleting steps: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM workflows WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting workflow: %w", err)
	}
	return tx.Commit()
}
