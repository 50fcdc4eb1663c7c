package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/store"
	"github.com/goliatone/go-formfill/pkg/testsupport"
)

type stubDriver struct {
	confirm   bool
	confirmed int
}

func (d *stubDriver) Input(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return "", nil
}

func (d *stubDriver) Select(ctx context.Context, cfg prompt.SelectConfig) (int, error) {
	return len(cfg.Options) - 1, nil
}

func (d *stubDriver) Confirm(ctx context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.confirmed++
	return d.confirm, nil
}

func (d *stubDriver) Info(ctx context.Context, msg string) error {
	return nil
}

type harness struct {
	app        *app
	out        *bytes.Buffer
	configPath string
	entries    string
}

func newHarness(t *testing.T, extra string) *harness {
	t.Helper()
	dir := t.TempDir()
	entries := filepath.Join(dir, "entries.json")
	cfg := fmt.Sprintf("form:\n  source: %q\nentries:\n  path: %q\n%s",
		testsupport.FixturePath(testsupport.SurveyFixture), entries, extra)
	configPath := filepath.Join(dir, "formfill.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))

	out := &bytes.Buffer{}
	return &harness{
		app: &app{
			out:    out,
			logger: zap.NewNop(),
			driver: &stubDriver{},
		},
		out:        out,
		configPath: configPath,
		entries:    entries,
	}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	root := newRootCommand(h.app)
	root.SetArgs(append([]string{"--config", h.configPath}, args...))
	return root.ExecuteContext(context.Background())
}

func (h *harness) resolveAll(t *testing.T) {
	t.Helper()
	res := testsupport.MustBuild(t, testsupport.FixturePath(testsupport.SurveyFixture))
	s := store.NewFileStore(h.entries, store.FormatJSON)
	require.NoError(t, s.Save(context.Background(), testsupport.ResolvedEntries("", res.Questions, 100)))
}

func TestSyncCommand_ReportsNewQuestions(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("sync"))

	out := h.out.String()
	assert.Contains(t, out, "Customer survey: 8 questions, 8 new, 8 unresolved")
	assert.Contains(t, out, "Skipped items:\n  - Visit date")
	assert.Contains(t, out, "warning [skipped] About you")
	assert.NotContains(t, out, "warning [unresolved]")

	m, err := store.NewFileStore(h.entries, store.FormatJSON).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, m.Entries, 8)
	assert.Equal(t, model.UnresolvedID, m.Entries["Color"].ID)

	require.NoError(t, h.run("sync"))
	assert.Contains(t, h.out.String(), "8 questions, 0 new, 8 unresolved")
}

func TestResolveCommand_SetAssignsIdentifiers(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("resolve", "--set", "Color=entry.100", "--set", "Rate our service / Speed=101"))

	out := h.out.String()
	assert.Contains(t, out, "Color = entry.100")
	assert.Contains(t, out, "Rate our service / Speed = entry.101")
	assert.Contains(t, out, "Still unresolved:")
	assert.NotContains(t, out, "  - Color\n")

	require.NoError(t, h.run("entries", "list"))
	lines := strings.Split(h.out.String(), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "TITLE"))
	assert.Regexp(t, `(?m)^Color\s+entry\.100\s+RADIO$`, h.out.String())
}

func TestResolveCommand_RejectsUnknownTitle(t *testing.T) {
	h := newHarness(t, "")

	err := h.run("resolve", "--set", "Shoe size=entry.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Shoe size")
}

func TestResolveCommand_InteractiveBlankAnswersKeepPlaceholder(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.run("resolve"))
	assert.Contains(t, h.out.String(), "Still unresolved:\n  - Color")
}

func TestEntriesPrune_RemovesStaleTitles(t *testing.T) {
	h := newHarness(t, "")
	m := model.NewEntryMap("")
	m.Entries["Old question"] = model.Entry{ID: "entry.9", Type: model.QuestionTypeText}
	require.NoError(t, store.NewFileStore(h.entries, store.FormatJSON).Save(context.Background(), m))

	require.NoError(t, h.run("sync"))
	assert.Contains(t, h.out.String(), "No longer in the form:\n  - Old question")

	require.NoError(t, h.run("entries", "prune"))
	assert.Contains(t, h.out.String(), "Removed:\n  - Old question")

	require.NoError(t, h.run("entries", "prune"))
	assert.Contains(t, h.out.String(), "Nothing to prune")
}

func TestSubmitCommand_UnresolvedEntriesFail(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("sync"))

	err := h.run("submit", "--dry-run")
	var unresolved *model.UnresolvedEntryError
	require.True(t, errors.As(err, &unresolved), "got %v", err)
	assert.Len(t, unresolved.Titles, 8)
}

func TestSubmitCommand_DryRunIsReproducible(t *testing.T) {
	h := newHarness(t, "")
	h.resolveAll(t)

	require.NoError(t, h.run("submit", "--dry-run", "--seed", "7"))
	first := h.out.String()
	require.NoError(t, h.run("submit", "--dry-run", "--seed", "7"))

	assert.Equal(t, first, h.out.String())
	assert.Contains(t, first, "entry.100=")
	assert.Contains(t, first, "https://docs.google.com/forms/d/e/1FAIpQLSfixture/viewform?")
	assert.Contains(t, first, "usp=pp_url")
	assert.NotContains(t, first, "entry.107=", "optional email question is skipped by default")
}

func TestSubmitCommand_PostsToResponseEndpoint(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	h := newHarness(t, "http:\n  timeout: 5s\n")
	h.resolveAll(t)
	cfg, err := os.ReadFile(h.configPath)
	require.NoError(t, err)
	cfg = bytes.Replace(cfg, []byte("form:\n"), []byte(fmt.Sprintf("form:\n  response_url: %q\n", server.URL+"/formResponse")), 1)
	require.NoError(t, os.WriteFile(h.configPath, cfg, 0o644))

	require.NoError(t, h.run("submit", "-n", "2", "--yes"))

	assert.Contains(t, h.out.String(), "Response 2/2 submitted")
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	assert.Contains(t, bodies[0], "entry.100=")
}

func TestSubmitCommand_DeclinedConfirmationSubmitsNothing(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	h := newHarness(t, "")
	h.resolveAll(t)
	cfg, err := os.ReadFile(h.configPath)
	require.NoError(t, err)
	cfg = bytes.Replace(cfg, []byte("form:\n"), []byte(fmt.Sprintf("form:\n  response_url: %q\n", server.URL)), 1)
	require.NoError(t, os.WriteFile(h.configPath, cfg, 0o644))
	driver := &stubDriver{confirm: false}
	h.app.driver = driver

	require.NoError(t, h.run("submit", "-n", "3"))
	assert.Equal(t, 1, driver.confirmed)
	assert.Zero(t, calls)
}

func TestSourceResolution(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run("entries", "list"))

	src, err := h.app.source("")
	require.NoError(t, err)
	assert.Equal(t, testsupport.FixturePath(testsupport.SurveyFixture), src.Location())

	src, err = h.app.source("api:1FormId")
	require.NoError(t, err)
	assert.Equal(t, "1FormId", src.Location())

	h.app.cfg.Form.Source = ""
	h.app.cfg.Form.ID = ""
	_, err = h.app.source("")
	assert.ErrorIs(t, err, errNoSource)
}
