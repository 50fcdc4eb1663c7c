package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/internal/forms/loader"
	pkgforms "github.com/goliatone/go-formfill/pkg/forms"
)

const minimalForm = `{"info": {"title": "Minimal"}, "items": []}`

type stubFetcher struct {
	calls []string
	data  []byte
	err   error
}

func (f *stubFetcher) Fetch(ctx context.Context, formID string) ([]byte, error) {
	f.calls = append(f.calls, formID)
	return f.data, f.err
}

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.json")
	if err := os.WriteFile(path, []byte(minimalForm), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := loader.New(pkgforms.NewLoaderOptions()).Load(context.Background(), pkgforms.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := doc.Form()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if form.Info.Title != "Minimal" {
		t.Fatalf("unexpected title %q", form.Info.Title)
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{"forms/minimal.json": &fstest.MapFile{Data: []byte(minimalForm)}}
	l := loader.New(pkgforms.NewLoaderOptions(pkgforms.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), pkgforms.SourceFromFS("forms/minimal.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(minimalForm, string(doc.Raw())); diff != "" {
		t.Fatalf("raw mismatch (-want +got):\n%s", diff)
	}

	if _, err := loader.New(pkgforms.NewLoaderOptions()).Load(context.Background(), pkgforms.SourceFromFS("forms/minimal.json")); err == nil {
		t.Fatalf("expected error without a filesystem")
	}
}

func TestLoader_HTTP(t *testing.T) {
	var accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(minimalForm))
	}))
	defer server.Close()

	l := loader.New(pkgforms.NewLoaderOptions(pkgforms.WithHTTPClient(server.Client()), pkgforms.WithHTTPFallback(time.Second)))

	doc, err := l.Load(context.Background(), pkgforms.SourceFromURL(server.URL+"/form.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != minimalForm {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if accept != "application/json" {
		t.Fatalf("unexpected Accept header %q", accept)
	}

	_, err = l.Load(context.Background(), pkgforms.SourceFromURL(server.URL+"/missing.json"))
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	_, err := loader.New(pkgforms.NewLoaderOptions()).Load(context.Background(), pkgforms.SourceFromURL("https://example.com/form.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoader_API(t *testing.T) {
	fetcher := &stubFetcher{data: []byte(minimalForm)}
	l := loader.New(pkgforms.NewLoaderOptions(pkgforms.WithFetcher(fetcher)))

	doc, err := l.Load(context.Background(), pkgforms.ParseSource("api:1FormId"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"1FormId"}, fetcher.calls); diff != "" {
		t.Fatalf("fetch calls mismatch (-want +got):\n%s", diff)
	}
	if doc.Source().Kind() != pkgforms.SourceKindAPI {
		t.Fatalf("unexpected source kind %q", doc.Source().Kind())
	}

	fetcher.err = errors.New("boom")
	if _, err := l.Load(context.Background(), pkgforms.SourceFromAPI("1FormId")); err == nil {
		t.Fatalf("expected fetch error to surface")
	}
	if _, err := loader.New(pkgforms.NewLoaderOptions()).Load(context.Background(), pkgforms.SourceFromAPI("1FormId")); err == nil {
		t.Fatalf("expected error without a fetcher")
	}
}

func TestLoader_NilSource(t *testing.T) {
	if _, err := loader.New(pkgforms.NewLoaderOptions()).Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
