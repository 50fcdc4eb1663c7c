package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-formfill/pkg/model"
)

// SQLiteStore keeps the entry maps of several forms in one database. Each
// Save replaces the rows of its form inside a single transaction.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	formID string
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite creates or opens the database at path for formID.
func OpenSQLite(path, formID string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store: sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path, formID: formID}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: initialize schema: %w", err)
	}
	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		form_id TEXT NOT NULL,
		title TEXT NOT NULL,
		entry_id TEXT NOT NULL,
		question_type TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (form_id, title)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the entry map stored for the form.
func (s *SQLiteStore) Load(ctx context.Context) (model.EntryMap, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, entry_id, question_type FROM entries WHERE form_id = ? ORDER BY title`, s.formID)
	if err != nil {
		return model.EntryMap{}, fmt.Errorf("store: query entries: %w", err)
	}
	defer rows.Close()

	m := model.NewEntryMap(s.formID)
	for rows.Next() {
		var title, id, typ string
		if err := rows.Scan(&title, &id, &typ); err != nil {
			return model.EntryMap{}, fmt.Errorf("store: scan entry: %w", err)
		}
		m.Entries[title] = model.Entry{ID: model.EntryID(id), Type: model.QuestionType(typ)}
	}
	if err := rows.Err(); err != nil {
		return model.EntryMap{}, fmt.Errorf("store: iterate entries: %w", err)
	}
	return m, nil
}

// Save replaces the stored entries of the form with m.
func (s *SQLiteStore) Save(ctx context.Context, m model.EntryMap) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE form_id = ?`, s.formID); err != nil {
		return fmt.Errorf("store: clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (form_id, title, entry_id, question_type) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, title := range m.Titles() {
		entry := m.Entries[title]
		if _, err := stmt.ExecContext(ctx, s.formID, title, string(entry.ID), string(entry.Type)); err != nil {
			return fmt.Errorf("store: insert %q: %w", title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}
