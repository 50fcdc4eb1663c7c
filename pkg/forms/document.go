package forms

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Source identifies where a form description originated so loaders can
// operate on files, fs.FS entries, URLs or the Forms API without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
	SourceKindAPI  SourceKind = "api"
)

// Document wraps the raw form description payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("forms: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("forms: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Form decodes the payload into the form description structure.
func (d Document) Form() (Form, error) {
	var form Form
	if err := json.Unmarshal(d.raw, &form); err != nil {
		return Form{}, fmt.Errorf("forms: decode %s: %w", d.Location(), err)
	}
	return form, nil
}
