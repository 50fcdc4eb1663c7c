package model

import (
	"github.com/goliatone/go-formfill/internal/model"
	"github.com/goliatone/go-formfill/pkg/forms"
)

// Builder converts raw form descriptions into normalized questions.
type Builder interface {
	Build(form forms.Form) (Result, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler        func(string) string
	maxScalePoints int
}

// WithLabeler overrides the default title cleanup function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithMaxScalePoints caps the number of points a linear scale may expand to.
func WithMaxScalePoints(n int) BuilderOption {
	return func(opts *builderOptions) {
		opts.maxScalePoints = n
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	internalOpts := model.Options{MaxScalePoints: cfg.maxScalePoints}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}

// BuildDocument decodes doc and builds it with builder.
func BuildDocument(builder Builder, doc forms.Document) (Result, error) {
	form, err := doc.Form()
	if err != nil {
		return Result{}, err
	}
	return builder.Build(form)
}
