package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

// SQLitePrefix selects the SQLite store in a store reference.
const SQLitePrefix = "sqlite://"

// Store loads and saves the entry map of one form. Load returns an empty map
// when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (model.EntryMap, error)
	Save(ctx context.Context, m model.EntryMap) error
	Close() error
}

// Open resolves a store reference: "sqlite://<path>" opens a SQLite
// database, a .yaml/.yml path a YAML file and any other path a JSON file.
func Open(ref, formID string) (Store, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("store: reference is required")
	}
	if path, ok := strings.CutPrefix(ref, SQLitePrefix); ok {
		return OpenSQLite(path, formID)
	}
	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml":
		return NewFileStore(ref, FormatYAML), nil
	default:
		return NewFileStore(ref, FormatJSON), nil
	}
}
