package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/reconcile"
	"github.com/goliatone/go-formfill/pkg/submission"
)

const skipOption = "(skip)"

// Option configures a Resolver.
type Option func(*Resolver)

// WithPromptDriver overrides the prompt driver used by the resolver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Resolver) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Resolver walks an operator through the entries that still hold the
// unresolved placeholder.
type Resolver struct {
	driver PromptDriver
}

// NewResolver constructs a Resolver using the survey driver by default.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	return r
}

// Resolve asks for an identifier for every unresolved question in schema
// order. A blank answer leaves the entry unresolved. It returns the updated
// map and the titles that received an identifier.
func (r *Resolver) Resolve(ctx context.Context, questions []model.Question, m model.EntryMap) (model.EntryMap, []string, error) {
	out := m
	var assigned []string

	for _, q := range questions {
		entry, ok := out.Lookup(q.Title)
		if ok && entry.Resolved() {
			continue
		}
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   fmt.Sprintf("Identifier for %q (%s):", q.Title, strings.ToLower(string(q.Type))),
			Help:      "Copy the entry.<number> parameter for this question from a pre-fill link. Leave blank to skip.",
			Validator: validateOptionalID,
		})
		if err != nil {
			return m, nil, err
		}
		if strings.TrimSpace(answer) == "" {
			continue
		}
		if !ok {
			out = out.Clone()
			out.Entries[q.Title] = model.Entry{ID: model.UnresolvedID, Type: q.Type}
		}
		next, err := reconcile.Assign(out, q.Title, answer)
		if err != nil {
			return m, nil, err
		}
		out = next
		assigned = append(assigned, q.Title)
	}
	return out, assigned, nil
}

// ResolveAmbiguous lets the operator pick the question each ambiguous
// pre-fill identifier belongs to.
func (r *Resolver) ResolveAmbiguous(ctx context.Context, questions []model.Question, m model.EntryMap, ambiguous []reconcile.Ambiguity) (model.EntryMap, []string, error) {
	out := m
	var assigned []string

	for _, amb := range ambiguous {
		titles := openTitles(questions, out, amb.Titles)
		if len(titles) == 0 {
			continue
		}
		options := append(append([]string(nil), titles...), skipOption)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:  fmt.Sprintf("Which question does %s (%s) answer?", amb.Candidate.ID, describeValues(amb.Candidate)),
			Options:  options,
			PageSize: 10,
		})
		if err != nil {
			return m, nil, err
		}
		if idx < 0 || idx >= len(titles) {
			continue
		}
		next, err := reconcile.Assign(out, titles[idx], string(amb.Candidate.ID))
		if err != nil {
			return m, nil, err
		}
		out = next
		assigned = append(assigned, titles[idx])
	}
	return out, assigned, nil
}

// openTitles lists the preferred titles first, then every other unresolved
// title, skipping those resolved meanwhile.
func openTitles(questions []model.Question, m model.EntryMap, preferred []string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(title string) {
		if _, dup := seen[title]; dup {
			return
		}
		entry, ok := m.Lookup(title)
		if !ok || entry.Resolved() {
			return
		}
		seen[title] = struct{}{}
		out = append(out, title)
	}
	for _, title := range preferred {
		add(title)
	}
	for _, q := range questions {
		add(q.Title)
	}
	return out
}

func describeValues(c submission.Candidate) string {
	values := strings.Join(c.Values, ", ")
	if c.Other != "" {
		values += ", other: " + c.Other
	}
	return values
}

func validateOptionalID(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	_, err := submission.NormalizeEntryID(value)
	return err
}
