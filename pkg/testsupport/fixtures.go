package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/forms"
	pkgmodel "github.com/goliatone/go-formfill/pkg/model"
)

// SurveyFixture names the shared form description covering every question
// kind plus layout and unsupported items.
const SurveyFixture = "survey.json"

// FixturePath resolves a file under the testsupport testdata directory so
// tests in any package can share fixtures.
func FixturePath(name string) string {
	_, here, _, ok := runtime.Caller(0)
	if !ok {
		panic("testsupport: unable to resolve fixture directory")
	}
	return filepath.Join(filepath.Dir(here), "testdata", name)
}

// LoadDocument reads a fixture and builds a forms.Document using a file
// source. Testing helpers fail the test on error to keep tests concise.
func LoadDocument(t *testing.T, path string) forms.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (forms.Document, error) {
	if path == "" {
		return forms.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return forms.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := forms.NewDocument(forms.SourceFromFile(path), data)
	if err != nil {
		return forms.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustLoadForm decodes a fixture into the raw form description.
func MustLoadForm(t *testing.T, path string) forms.Form {
	t.Helper()

	form, err := LoadDocument(t, path).Form()
	if err != nil {
		t.Fatalf("decode form: %v", err)
	}
	return form
}

// MustBuild normalizes a fixture with the default builder.
func MustBuild(t *testing.T, path string) pkgmodel.Result {
	t.Helper()

	res, err := pkgmodel.BuildDocument(pkgmodel.NewBuilder(), LoadDocument(t, path))
	if err != nil {
		t.Fatalf("build questions: %v", err)
	}
	return res
}

// MustLoadResult loads a JSON golden file into a builder Result.
func MustLoadResult(t *testing.T, path string) pkgmodel.Result {
	t.Helper()

	res, err := LoadResult(path)
	if err != nil {
		t.Fatalf("load result: %v", err)
	}
	return res
}

// LoadResult reads a JSON fixture into a Result, returning an error for
// callers managing setup outside of *testing.T.
func LoadResult(path string) (pkgmodel.Result, error) {
	if path == "" {
		return pkgmodel.Result{}, errors.New("testsupport: result path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.Result{}, fmt.Errorf("testsupport: read result: %w", err)
	}
	var out pkgmodel.Result
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.Result{}, fmt.Errorf("testsupport: unmarshal result: %w", err)
	}
	return out, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// ResolvedEntries returns a map assigning entry.<base+i> to the i-th
// question, with the recorded type taken from the question.
func ResolvedEntries(formID string, questions []pkgmodel.Question, base int) pkgmodel.EntryMap {
	m := pkgmodel.NewEntryMap(formID)
	for i, q := range questions {
		m.Entries[q.Title] = pkgmodel.Entry{
			ID:   pkgmodel.EntryID(fmt.Sprintf("entry.%d", base+i)),
			Type: q.Type,
		}
	}
	return m
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
