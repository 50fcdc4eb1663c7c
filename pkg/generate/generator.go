package generate

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

// TextRule answers text questions whose title contains Contains (case
// insensitive) with one of Values.
type TextRule struct {
	Contains string   `yaml:"contains" json:"contains"`
	Values   []string `yaml:"values" json:"values"`
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator reproducible for a fixed seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand injects the random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithTextPool supplies free-text answers used when no rule matches.
func WithTextPool(pool []string) Option {
	return func(g *Generator) {
		g.pool = cleanValues(pool)
	}
}

// WithTextRules registers keyword rules for text questions.
func WithTextRules(rules []TextRule) Option {
	return func(g *Generator) {
		g.rules = g.rules[:0]
		for _, rule := range rules {
			contains := strings.ToLower(strings.TrimSpace(rule.Contains))
			values := cleanValues(rule.Values)
			if contains == "" || len(values) == 0 {
				continue
			}
			g.rules = append(g.rules, TextRule{Contains: contains, Values: values})
		}
	}
}

// WithSkipMarkers leaves optional text questions unanswered when their
// title contains one of the markers, e.g. "(optional)" or "email". Required
// questions and choice questions are always answered.
func WithSkipMarkers(markers ...string) Option {
	return func(g *Generator) {
		g.skip = g.skip[:0]
		for _, marker := range markers {
			if trimmed := strings.ToLower(strings.TrimSpace(marker)); trimmed != "" {
				g.skip = append(g.skip, trimmed)
			}
		}
	}
}

// Generator produces one randomized, type-correct answer per question.
type Generator struct {
	rng   *rand.Rand
	pool  []string
	rules []TextRule
	skip  []string
}

// New constructs a Generator. Without WithSeed or WithRand the random source
// is seeded from the runtime.
func New(options ...Option) *Generator {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Generate answers every question using the identifiers in m. It fails with
// a *model.UnresolvedEntryError listing every question without a usable
// identifier before producing any answer.
func (g *Generator) Generate(questions []model.Question, m model.EntryMap) (model.Response, error) {
	ids, err := resolveIDs(questions, m)
	if err != nil {
		return nil, err
	}

	resp := make(model.Response, len(questions))
	for i, q := range questions {
		if g.skippable(q) {
			continue
		}
		answer, err := g.answer(q)
		if err != nil {
			return nil, err
		}
		resp[ids[i]] = answer
	}
	return resp, nil
}

// Unanswered returns the titles Generate would skip.
func (g *Generator) Unanswered(questions []model.Question) []string {
	var titles []string
	for _, q := range questions {
		if g.skippable(q) {
			titles = append(titles, q.Title)
		}
	}
	return titles
}

func resolveIDs(questions []model.Question, m model.EntryMap) ([]model.EntryID, error) {
	ids := make([]model.EntryID, len(questions))
	owners := make(map[model.EntryID]string, len(questions))
	var unresolved []string

	for i, q := range questions {
		entry, ok := m.Lookup(q.Title)
		if !ok || !entry.Resolved() {
			unresolved = append(unresolved, q.Title)
			continue
		}
		id := model.EntryID(strings.TrimSpace(string(entry.ID)))
		if owner, dup := owners[id]; dup {
			return nil, fmt.Errorf("generate: identifier %s is assigned to both %q and %q", id, owner, q.Title)
		}
		owners[id] = q.Title
		ids[i] = id
	}

	if len(unresolved) > 0 {
		return nil, &model.UnresolvedEntryError{Titles: unresolved}
	}
	return ids, nil
}

func (g *Generator) skippable(q model.Question) bool {
	if q.Required || q.Type != model.QuestionTypeText {
		return false
	}
	title := strings.ToLower(q.Title)
	for _, marker := range g.skip {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}

func (g *Generator) answer(q model.Question) (model.Answer, error) {
	switch q.Type {
	case model.QuestionTypeText:
		return model.Answer{Values: []string{g.text(q)}}, nil
	case model.QuestionTypeRadio, model.QuestionTypeCheckbox:
		if poolSize(q) == 0 {
			return model.Answer{}, fmt.Errorf("generate: %w: %q has no choices", model.ErrMalformedSchema, q.Title)
		}
		if q.Type == model.QuestionTypeCheckbox {
			return g.subset(q), nil
		}
		return g.single(q), nil
	case model.QuestionTypeMatrixRow, model.QuestionTypeScale:
		if len(q.Choices) == 0 {
			return model.Answer{}, fmt.Errorf("generate: %w: %q has no choices", model.ErrMalformedSchema, q.Title)
		}
		return model.Answer{Values: []string{q.Choices[g.rng.IntN(len(q.Choices))]}}, nil
	default:
		return model.Answer{}, fmt.Errorf("generate: %w: %q has unknown type %q", model.ErrMalformedSchema, q.Title, q.Type)
	}
}

// single picks uniformly among the choices plus the other option.
func (g *Generator) single(q model.Question) model.Answer {
	pool := poolSize(q)
	pick := g.rng.IntN(pool)
	if pick == len(q.Choices) {
		return model.Answer{Values: []string{model.OtherOptionValue}, Other: g.text(q)}
	}
	return model.Answer{Values: []string{q.Choices[pick]}}
}

// subset draws a size in 1..pool uniformly, then that many distinct entries
// of the pool, reported in choice order with the other option last.
func (g *Generator) subset(q model.Question) model.Answer {
	pool := poolSize(q)
	size := 1 + g.rng.IntN(pool)
	picks := g.rng.Perm(pool)[:size]
	sort.Ints(picks)

	answer := model.Answer{Values: make([]string, 0, size)}
	for _, pick := range picks {
		if pick == len(q.Choices) {
			answer.Values = append(answer.Values, model.OtherOptionValue)
			answer.Other = g.text(q)
			continue
		}
		answer.Values = append(answer.Values, q.Choices[pick])
	}
	return answer
}

func poolSize(q model.Question) int {
	if q.AllowsOther {
		return len(q.Choices) + 1
	}
	return len(q.Choices)
}
