package forms

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// fileSource identifies on-disk form descriptions.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// urlSource references an HTTP/HTTPS endpoint serving a saved description.
type urlSource struct {
	raw string
}

func (s urlSource) Location() string {
	return s.raw
}

func (s urlSource) Kind() SourceKind {
	return SourceKindURL
}

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("forms: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("forms: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// apiSource references a form by its Forms API identifier.
type apiSource struct {
	formID string
}

func (s apiSource) Location() string {
	return s.formID
}

func (s apiSource) Kind() SourceKind {
	return SourceKindAPI
}

// SourceFromAPI returns a Source resolved through the Forms API.
func SourceFromAPI(formID string) Source {
	return apiSource{formID: strings.TrimSpace(formID)}
}

// ParseSource maps a CLI style reference onto a Source: http(s) URLs, the
// "api:" prefix for form ids, and file paths otherwise. It returns nil for
// blank input.
func ParseSource(raw string) Source {
	ref := strings.TrimSpace(raw)
	switch {
	case ref == "":
		return nil
	case strings.HasPrefix(ref, "api:"):
		return SourceFromAPI(strings.TrimPrefix(ref, "api:"))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if _, err := url.ParseRequestURI(ref); err != nil {
			return nil
		}
		return urlSource{raw: ref}
	default:
		return SourceFromFile(ref)
	}
}
