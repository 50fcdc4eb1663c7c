package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/goliatone/go-formfill/internal/forms/api"
	pkgforms "github.com/goliatone/go-formfill/pkg/forms"
)

func TestFetcher_GetsFormResource(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"formId": "1FormId",
			"info": {"title": "Survey"},
			"responderUri": "https://docs.google.com/forms/d/e/xyz/viewform",
			"items": [{
				"itemId": "a1",
				"title": "Color",
				"questionItem": {"question": {
					"questionId": "q1",
					"choiceQuestion": {"type": "RADIO", "options": [{"value": "Red"}, {"isOther": true}]}
				}}
			}]
		}`))
	}))
	defer server.Close()

	ctx := context.Background()
	fetcher, err := api.New(ctx, option.WithEndpoint(server.URL+"/"), option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("new fetcher: %v", err)
	}

	raw, err := fetcher.Fetch(ctx, "1FormId")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/v1/forms/1FormId" {
		t.Fatalf("unexpected request path %q", gotPath)
	}

	var form pkgforms.Form
	if err := json.Unmarshal(raw, &form); err != nil {
		t.Fatalf("decode fetched form: %v", err)
	}
	if form.Info.Title != "Survey" || form.ResponderURI == "" || len(form.Items) != 1 {
		t.Fatalf("unexpected form %+v", form)
	}
	choice := form.Items[0].QuestionItem.Question.ChoiceQuestion
	if choice == nil || choice.Type != pkgforms.ChoiceTypeRadio || len(choice.Options) != 2 || !choice.Options[1].IsOther {
		t.Fatalf("choice question not preserved: %+v", choice)
	}

	if _, err := fetcher.Fetch(ctx, " "); err == nil {
		t.Fatalf("expected error for blank form id")
	}
}

func TestFetcher_SurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "denied"}}`))
	}))
	defer server.Close()

	ctx := context.Background()
	fetcher, err := api.New(ctx, option.WithEndpoint(server.URL+"/"), option.WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("new fetcher: %v", err)
	}
	if _, err := fetcher.Fetch(ctx, "1FormId"); err == nil {
		t.Fatalf("expected API error")
	}
}

func TestTokenSource_Layouts(t *testing.T) {
	dir := t.TempDir()
	expiry := time.Now().Add(time.Hour).UTC().Format(time.RFC3339Nano)
	cases := map[string]string{
		"oauth2.json": `{"access_token": "abc", "token_type": "Bearer", "expiry": "` + expiry + `"}`,
		"python.json": `{"token": "abc", "refresh_token": "r", "client_id": "id", "client_secret": "s", "expiry": "` + expiry + `"}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("write token: %v", err)
			}
			ts, err := api.TokenSource(context.Background(), api.Credentials{TokenFile: path})
			if err != nil {
				t.Fatalf("token source: %v", err)
			}
			tok, err := ts.Token()
			if err != nil {
				t.Fatalf("token: %v", err)
			}
			if tok.AccessToken != "abc" {
				t.Fatalf("unexpected access token %q", tok.AccessToken)
			}
		})
	}
}

func TestTokenSource_Errors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`{}`), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	badExpiry := filepath.Join(dir, "bad-expiry.json")
	if err := os.WriteFile(badExpiry, []byte(`{"access_token": "abc", "expiry": "next tuesday"}`), 0o600); err != nil {
		t.Fatalf("write token: %v", err)
	}

	for _, creds := range []api.Credentials{
		{},
		{TokenFile: filepath.Join(dir, "missing.json")},
		{TokenFile: empty},
		{TokenFile: badExpiry},
	} {
		if _, err := api.TokenSource(context.Background(), creds); err == nil {
			t.Errorf("expected error for %+v", creds)
		}
	}

	_, err := api.TokenSource(context.Background(), api.Credentials{TokenFile: badExpiry})
	if err == nil || !strings.Contains(err.Error(), "forms api: parse expiry") {
		t.Fatalf("expected expiry parse error, got %v", err)
	}
}
