// Package formfill fills in online questionnaires: it normalizes the form
// description into questions, keeps a persisted map from question titles to
// submission identifiers in sync with the form, and generates randomized,
// type-correct responses for submission.
package formfill

import (
	"context"

	pkgforms "github.com/goliatone/go-formfill/pkg/forms"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
)

// Report aliases the per-run outcome returned by every orchestrator step.
type Report = orchestrator.Report

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Sync loads the form description from source and reconciles it with the
// stored entry map. It is the simplest entry point for keeping a map current.
func Sync(ctx context.Context, source pkgforms.Source, options ...orchestrator.Option) (orchestrator.SyncResult, error) {
	return orchestrator.New(options...).Sync(ctx, orchestrator.Request{Source: source})
}

// Submit generates and submits one response for the form at source.
func Submit(ctx context.Context, source pkgforms.Source, options ...orchestrator.Option) (orchestrator.SubmitResult, error) {
	return orchestrator.New(options...).Submit(ctx, orchestrator.SubmitRequest{
		Request: orchestrator.Request{Source: source},
	})
}

// SubmitDocument submits a response for a pre-loaded description, bypassing
// the loader stage.
func SubmitDocument(ctx context.Context, doc pkgforms.Document, options ...orchestrator.Option) (orchestrator.SubmitResult, error) {
	return orchestrator.New(options...).Submit(ctx, orchestrator.SubmitRequest{
		Request: orchestrator.Request{Document: &doc},
	})
}
