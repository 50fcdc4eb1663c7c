package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/pkg/model"
)

// Format selects the file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FileStore persists the entry map as a JSON or YAML document. Saves write a
// temporary file next to the target and rename it into place.
type FileStore struct {
	path   string
	format Format
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path.
func NewFileStore(path string, format Format) *FileStore {
	if format == "" {
		format = FormatJSON
	}
	return &FileStore{path: filepath.Clean(path), format: format}
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the entry map. Both the structured shape and a flat
// title to identifier object are accepted.
func (s *FileStore) Load(ctx context.Context) (model.EntryMap, error) {
	if err := ctx.Err(); err != nil {
		return model.EntryMap{}, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewEntryMap(""), nil
	}
	if err != nil {
		return model.EntryMap{}, fmt.Errorf("store: read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.NewEntryMap(""), nil
	}

	m, err := s.decode(data)
	if err != nil {
		return model.EntryMap{}, fmt.Errorf("store: decode %s: %w", s.path, err)
	}
	if m.Entries == nil {
		m.Entries = make(map[string]model.Entry)
	}
	return m, nil
}

// Save writes the entry map atomically.
func (s *FileStore) Save(ctx context.Context, m model.EntryMap) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Entries == nil {
		m.Entries = make(map[string]model.Entry)
	}
	data, err := s.encode(m)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for file stores.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) encode(m model.EntryMap) ([]byte, error) {
	if s.format == FormatYAML {
		return yaml.Marshal(m)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *FileStore) decode(data []byte) (model.EntryMap, error) {
	if s.format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (model.EntryMap, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return model.EntryMap{}, err
	}
	if _, structured := probe["entries"]; structured {
		var m model.EntryMap
		if err := json.Unmarshal(data, &m); err != nil {
			return model.EntryMap{}, err
		}
		return m, nil
	}

	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err != nil {
		return model.EntryMap{}, fmt.Errorf("neither an entry map nor a flat title map: %w", err)
	}
	return fromFlat(flat), nil
}

func decodeYAML(data []byte) (model.EntryMap, error) {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return model.EntryMap{}, err
	}
	if _, structured := probe["entries"]; structured {
		var m model.EntryMap
		if err := yaml.Unmarshal(data, &m); err != nil {
			return model.EntryMap{}, err
		}
		return m, nil
	}

	var flat map[string]string
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return model.EntryMap{}, fmt.Errorf("neither an entry map nor a flat title map: %w", err)
	}
	return fromFlat(flat), nil
}

func fromFlat(flat map[string]string) model.EntryMap {
	m := model.NewEntryMap("")
	for title, id := range flat {
		m.Entries[title] = model.Entry{ID: model.EntryID(id)}
	}
	return m
}
