package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/prompt"
	"github.com/goliatone/go-formfill/pkg/reconcile"
	"github.com/goliatone/go-formfill/pkg/submission"
)

type stubPromptDriver struct {
	inputs   []string
	selects  []int
	messages []string
	options  [][]string
	err      error
}

func (s *stubPromptDriver) Input(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	s.messages = append(s.messages, cfg.Message)
	if s.err != nil {
		return "", s.err
	}
	if len(s.inputs) == 0 {
		return "", nil
	}
	value := s.inputs[0]
	s.inputs = s.inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(value); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (s *stubPromptDriver) Select(ctx context.Context, cfg prompt.SelectConfig) (int, error) {
	s.messages = append(s.messages, cfg.Message)
	s.options = append(s.options, cfg.Options)
	if s.err != nil {
		return 0, s.err
	}
	idx := s.selects[0]
	s.selects = s.selects[1:]
	return idx, nil
}

func (s *stubPromptDriver) Confirm(ctx context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	return true, s.err
}

func (s *stubPromptDriver) Info(ctx context.Context, msg string) error {
	s.messages = append(s.messages, msg)
	return nil
}

func fixtureQuestions(t *testing.T) []model.Question {
	t.Helper()
	var out []model.Question
	for _, def := range []struct {
		title   string
		typ     model.QuestionType
		choices []string
	}{
		{"Name", model.QuestionTypeText, nil},
		{"Color", model.QuestionTypeRadio, []string{"Red", "Blue"}},
		{"Age", model.QuestionTypeText, nil},
	} {
		q, err := model.NewQuestion(def.title, def.typ, def.choices, false, false)
		if err != nil {
			t.Fatalf("new question: %v", err)
		}
		out = append(out, q)
	}
	return out
}

func TestResolver_Resolve(t *testing.T) {
	qs := fixtureQuestions(t)
	m := reconcile.Reconcile(qs, model.NewEntryMap("form")).Map
	m.Entries["Color"] = model.Entry{ID: "entry.2", Type: model.QuestionTypeRadio}

	driver := &stubPromptDriver{inputs: []string{"entry.1", ""}}
	r := prompt.NewResolver(prompt.WithPromptDriver(driver))

	got, assigned, err := r.Resolve(context.Background(), qs, m)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if diff := cmp.Diff([]string{"Name"}, assigned); diff != "" {
		t.Fatalf("assigned mismatch (-want +got):\n%s", diff)
	}
	if got.Entries["Name"].ID != "entry.1" {
		t.Fatalf("Name not resolved: %+v", got.Entries["Name"])
	}
	if got.Entries["Age"].Resolved() {
		t.Fatalf("blank answer should leave Age unresolved")
	}
	if len(driver.messages) != 2 {
		t.Fatalf("expected prompts only for unresolved questions, got %v", driver.messages)
	}
	if m.Entries["Name"].Resolved() {
		t.Fatalf("input map was mutated")
	}
}

func TestResolver_ResolveRejectsInvalidIdentifier(t *testing.T) {
	qs := fixtureQuestions(t)[:1]
	m := reconcile.Reconcile(qs, model.NewEntryMap("form")).Map

	driver := &stubPromptDriver{inputs: []string{"not-an-id"}}
	_, _, err := prompt.NewResolver(prompt.WithPromptDriver(driver)).Resolve(context.Background(), qs, m)
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestResolver_ResolveAborted(t *testing.T) {
	qs := fixtureQuestions(t)
	m := reconcile.Reconcile(qs, model.NewEntryMap("form")).Map

	driver := &stubPromptDriver{err: prompt.ErrAborted}
	got, _, err := prompt.NewResolver(prompt.WithPromptDriver(driver)).Resolve(context.Background(), qs, m)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Fatalf("map changed on abort (-want +got):\n%s", diff)
	}
}

func TestResolver_ResolveAmbiguous(t *testing.T) {
	qs := fixtureQuestions(t)
	m := reconcile.Reconcile(qs, model.NewEntryMap("form")).Map
	ambiguous := []reconcile.Ambiguity{
		{Candidate: submission.Candidate{ID: "entry.7", Values: []string{"Ada"}}, Titles: []string{"Age"}},
		{Candidate: submission.Candidate{ID: "entry.8", Values: []string{"x"}}},
	}

	// Pick "Age" for entry.7, then skip entry.8.
	driver := &stubPromptDriver{selects: []int{0, 2}}
	got, assigned, err := prompt.NewResolver(prompt.WithPromptDriver(driver)).ResolveAmbiguous(context.Background(), qs, m, ambiguous)
	if err != nil {
		t.Fatalf("resolve ambiguous: %v", err)
	}
	if diff := cmp.Diff([]string{"Age"}, assigned); diff != "" {
		t.Fatalf("assigned mismatch (-want +got):\n%s", diff)
	}
	if got.Entries["Age"].ID != "entry.7" {
		t.Fatalf("Age not resolved: %+v", got.Entries["Age"])
	}

	wantOptions := [][]string{
		{"Age", "Name", "Color", "(skip)"},
		{"Name", "Color", "(skip)"},
	}
	if diff := cmp.Diff(wantOptions, driver.options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}
