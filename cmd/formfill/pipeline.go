package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	formfill "github.com/goliatone/go-formfill"
	"github.com/goliatone/go-formfill/pkg/forms"
	"github.com/goliatone/go-formfill/pkg/generate"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/store"
	"github.com/goliatone/go-formfill/pkg/submission"
)

var errNoSource = errors.New("no form source configured: set form.source or form.id, or pass --source")

// source resolves the --source flag, then form.source, then form.id.
func (a *app) source(flag string) (forms.Source, error) {
	raw := strings.TrimSpace(flag)
	if raw == "" {
		raw = a.cfg.Form.Source
	}
	if raw != "" {
		src := forms.ParseSource(raw)
		if src == nil {
			return nil, fmt.Errorf("invalid source %q", raw)
		}
		return src, nil
	}
	if id := strings.TrimSpace(a.cfg.Form.ID); id != "" {
		return forms.SourceFromAPI(id), nil
	}
	return nil, errNoSource
}

func (a *app) loader(ctx context.Context, src forms.Source) (forms.Loader, error) {
	opts := []forms.LoaderOption{
		forms.WithHTTPClient(a.httpClient),
		forms.WithHTTPFallback(a.cfg.HTTP.Timeout),
	}
	if src.Kind() == forms.SourceKindAPI {
		fetcher, err := a.fetcher(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, forms.WithFetcher(fetcher))
	}
	return formfill.NewLoader(opts...), nil
}

func (a *app) fetcher(ctx context.Context) (forms.Fetcher, error) {
	creds := formfill.Credentials{
		TokenFile:    a.cfg.Credentials.TokenFile,
		ClientID:     a.cfg.Credentials.ClientID,
		ClientSecret: a.cfg.Credentials.ClientSecret,
	}
	return formfill.NewAPIFetcher(ctx, creds, a.apiOptions...)
}

func (a *app) openStore() (store.Store, error) {
	return store.Open(a.cfg.EntriesPath(), a.cfg.Form.ID)
}

func (a *app) generator(seed *uint64) *generate.Generator {
	gen := a.cfg.Generator
	opts := []generate.Option{
		generate.WithTextPool(gen.TextPool),
		generate.WithTextRules(gen.TextRules),
		generate.WithSkipMarkers(gen.SkipMarkers...),
	}
	switch {
	case seed != nil:
		opts = append(opts, generate.WithSeed(*seed))
	case gen.Seed != nil:
		opts = append(opts, generate.WithSeed(*gen.Seed))
	}
	return generate.New(opts...)
}

// responseEndpoint prefers the configured formResponse URL, then derives it
// from the view URL or the form's responder URI.
func (a *app) responseEndpoint(responderURI string) (string, error) {
	if endpoint := strings.TrimSpace(a.cfg.Form.ResponseURL); endpoint != "" {
		return endpoint, nil
	}
	view := strings.TrimSpace(a.cfg.Form.ViewURL)
	if view == "" {
		view = responderURI
	}
	if view == "" {
		return "", errors.New("no submission endpoint: set form.response_url or form.view_url")
	}
	return submission.ResponseURL(view)
}

func (a *app) transportFor(responderURI string) (submission.Transport, error) {
	endpoint, err := a.responseEndpoint(responderURI)
	if err != nil {
		return nil, err
	}
	return submission.NewHTTPTransport(a.httpClient, endpoint, a.cfg.HTTP.Timeout)
}

// pipeline opens the store and builds an orchestrator for src. The caller
// closes the returned store.
func (a *app) pipeline(ctx context.Context, src forms.Source, extra ...orchestrator.Option) (*orchestrator.Orchestrator, store.Store, error) {
	loader, err := a.loader(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	entries, err := a.openStore()
	if err != nil {
		return nil, nil, err
	}
	opts := append([]orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithStore(entries),
		orchestrator.WithLogger(a.logger),
		orchestrator.WithTransportFactory(a.transportFor),
	}, extra...)
	return formfill.NewOrchestrator(opts...), entries, nil
}
