package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-formfill/internal/forms/loader"
	"github.com/goliatone/go-formfill/pkg/forms"
	"github.com/goliatone/go-formfill/pkg/generate"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/reconcile"
	"github.com/goliatone/go-formfill/pkg/store"
	"github.com/goliatone/go-formfill/pkg/submission"
)

var (
	// ErrNoStore is returned by steps that need the persisted entry map.
	ErrNoStore = errors.New("orchestrator: entry store is required")
	// ErrNoTransport is returned by Submit when no transport is configured.
	ErrNoTransport = errors.New("orchestrator: submission transport is required")
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom form description loader.
func WithLoader(loader forms.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithModelBuilder injects a custom schema normalizer.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithStore sets the entry map store.
func WithStore(s store.Store) Option {
	return func(o *Orchestrator) {
		o.store = s
	}
}

// WithGenerator overrides the response generator.
func WithGenerator(g *generate.Generator) Option {
	return func(o *Orchestrator) {
		o.generator = g
	}
}

// WithTransport sets the collaborator that delivers submission payloads.
func WithTransport(t submission.Transport) Option {
	return func(o *Orchestrator) {
		o.transport = t
	}
}

// WithTransportFactory builds the transport on demand from the responder URI
// of the loaded form. It is consulted only when no transport is set.
func WithTransportFactory(factory func(responderURI string) (submission.Transport, error)) Option {
	return func(o *Orchestrator) {
		o.newTransport = factory
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithRunIDs overrides how run identifiers are minted.
func WithRunIDs(next func() string) Option {
	return func(o *Orchestrator) {
		o.runID = next
	}
}

// Orchestrator coordinates the pipeline from form description to submitted
// response. Missing dependencies fall back to the built-in implementations,
// except for the store and transport which have no sensible default.
type Orchestrator struct {
	loader       forms.Loader
	builder      model.Builder
	store        store.Store
	generator    *generate.Generator
	transport    submission.Transport
	newTransport func(string) (submission.Transport, error)
	logger       *zap.Logger
	runID        func() string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(forms.NewLoaderOptions())
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.generator == nil {
		o.generator = generate.New()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.runID == nil {
		o.runID = uuid.NewString
	}
}

// Request identifies the form description a step works on.
type Request struct {
	// Source identifies where the description lives. Optional when Document
	// is supplied.
	Source forms.Source

	// Document allows callers to bypass the loader.
	Document *forms.Document
}

// Report is the outcome shared by every step.
type Report struct {
	RunID string
	Title string

	// ResponderURI is the public viewform URL, when the description has it.
	ResponderURI string

	Questions []model.Question
	Issues    []model.Issue

	// Skipped lists the titles of items the normalizer could not classify.
	Skipped []string
}

// SyncResult is returned by Sync.
type SyncResult struct {
	Report
	Reconcile reconcile.Result
}

// PrefillResult is returned by Prefill.
type PrefillResult struct {
	Report
	Prefill reconcile.PrefillResult
}

// SubmitRequest configures one submission.
type SubmitRequest struct {
	Request
	// DryRun stops after building the payload.
	DryRun bool
}

// SubmitResult is returned by Submit.
type SubmitResult struct {
	Report
	Response model.Response
	Payload  url.Values
	// Submitted reports whether the payload reached the transport.
	Submitted bool
}

// Schema loads and normalizes the form description.
func (o *Orchestrator) Schema(ctx context.Context, req Request) (Report, error) {
	if ctx == nil {
		return Report{}, errors.New("orchestrator: context is required")
	}
	report := Report{RunID: o.runID()}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return report, err
	}
	form, err := doc.Form()
	if err != nil {
		return report, err
	}
	res, err := o.builder.Build(form)
	if err != nil {
		return report, fmt.Errorf("orchestrator: build questions: %w", err)
	}

	report.Title = res.Title
	report.ResponderURI = form.ResponderURI
	report.Questions = res.Questions
	for _, q := range res.Skipped {
		report.Skipped = append(report.Skipped, q.Title)
	}
	report.Issues = append(report.Issues, res.Issues...)
	o.logger.Debug("schema normalized",
		zap.String("run", report.RunID),
		zap.String("form", report.Title),
		zap.Int("questions", len(res.Questions)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return report, nil
}

// Sync normalizes the schema, reconciles it against the stored entry map
// and saves the result.
func (o *Orchestrator) Sync(ctx context.Context, req Request) (SyncResult, error) {
	if o.store == nil {
		return SyncResult{}, ErrNoStore
	}
	report, err := o.Schema(ctx, req)
	if err != nil {
		return SyncResult{Report: report}, err
	}

	prior, err := o.store.Load(ctx)
	if err != nil {
		return SyncResult{Report: report}, fmt.Errorf("orchestrator: load entries: %w", err)
	}
	rec := reconcile.Reconcile(report.Questions, prior)
	report.Issues = append(report.Issues, rec.Issues...)

	if err := o.store.Save(ctx, rec.Map); err != nil {
		return SyncResult{Report: report}, fmt.Errorf("orchestrator: save entries: %w", err)
	}

	o.logger.Info("entries reconciled",
		zap.String("run", report.RunID),
		zap.Int("added", len(rec.Added)),
		zap.Int("unresolved", len(rec.Unresolved)),
		zap.Int("stale", len(rec.Stale)),
	)
	o.logIssues(report)
	return SyncResult{Report: report, Reconcile: rec}, nil
}

// Prefill reconciles the schema and then harvests identifiers from a
// pre-fill link, saving the updated map. Ambiguous identifiers are returned
// for the caller to resolve.
func (o *Orchestrator) Prefill(ctx context.Context, req Request, link string) (PrefillResult, error) {
	fields, err := submission.ParsePrefillLink(link)
	if err != nil {
		return PrefillResult{}, err
	}
	synced, err := o.Sync(ctx, req)
	if err != nil {
		return PrefillResult{Report: synced.Report}, err
	}

	res := reconcile.ApplyPrefill(synced.Questions, synced.Reconcile.Map, fields)
	if len(res.Assigned) > 0 {
		if err := o.store.Save(ctx, res.Map); err != nil {
			return PrefillResult{Report: synced.Report}, fmt.Errorf("orchestrator: save entries: %w", err)
		}
	}

	o.logger.Info("pre-fill link applied",
		zap.String("run", synced.RunID),
		zap.Int("assigned", len(res.Assigned)),
		zap.Int("ambiguous", len(res.Ambiguous)),
	)
	return PrefillResult{Report: synced.Report, Prefill: res}, nil
}

// Submit generates one response from the stored entry map and hands its
// payload to the transport. Unresolved entries abort the run before any
// side effect.
func (o *Orchestrator) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if o.store == nil {
		return SubmitResult{}, ErrNoStore
	}
	if o.transport == nil && o.newTransport == nil && !req.DryRun {
		return SubmitResult{}, ErrNoTransport
	}

	report, err := o.Schema(ctx, req.Request)
	if err != nil {
		return SubmitResult{Report: report}, err
	}
	result := SubmitResult{Report: report}

	entries, err := o.store.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("orchestrator: load entries: %w", err)
	}

	resp, err := o.generator.Generate(report.Questions, entries)
	if err != nil {
		var unresolved *model.UnresolvedEntryError
		if errors.As(err, &unresolved) {
			for _, title := range unresolved.Titles {
				result.Issues = append(result.Issues, model.Issue{
					Kind:    model.IssueUnresolved,
					Title:   title,
					Message: "no identifier recorded; run sync and resolve first",
				})
			}
			o.logIssues(result.Report)
		}
		return result, err
	}
	result.Response = resp
	result.Payload = submission.Build(resp)

	if skipped := o.generator.Unanswered(report.Questions); len(skipped) > 0 {
		o.logger.Debug("optional questions left blank", zap.String("run", report.RunID), zap.Strings("titles", skipped))
	}
	if req.DryRun {
		o.logger.Info("dry run, payload not submitted", zap.String("run", report.RunID), zap.Int("fields", len(result.Payload)))
		o.logIssues(result.Report)
		return result, nil
	}

	transport, err := o.transportFor(report)
	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if err := transport.Submit(ctx, result.Payload); err != nil {
		o.logger.Error("submission failed", zap.String("run", report.RunID), zap.Error(err))
		return result, fmt.Errorf("orchestrator: submit: %w", err)
	}
	result.Submitted = true

	o.logger.Info("response submitted", zap.String("run", report.RunID), zap.Int("fields", len(result.Payload)))
	o.logIssues(result.Report)
	return result, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (forms.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return forms.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return forms.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) transportFor(report Report) (submission.Transport, error) {
	if o.transport != nil {
		return o.transport, nil
	}
	if o.newTransport == nil {
		return nil, ErrNoTransport
	}
	t, err := o.newTransport(report.ResponderURI)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build transport: %w", err)
	}
	return t, nil
}

func (o *Orchestrator) logIssues(report Report) {
	for _, issue := range report.Issues {
		o.logger.Warn(issue.Message,
			zap.String("run", report.RunID),
			zap.String("kind", string(issue.Kind)),
			zap.String("title", issue.Title),
		)
	}
}
