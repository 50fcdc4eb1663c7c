package model_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formfill/pkg/forms"
	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/testsupport"
)

func TestBuildDocument_DefaultBuilder(t *testing.T) {
	doc := testsupport.LoadDocument(t, testsupport.FixturePath(testsupport.SurveyFixture))

	res, err := model.BuildDocument(model.NewBuilder(), doc)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	if res.Title != "Customer survey" {
		t.Fatalf("unexpected title %q", res.Title)
	}
	if len(res.Questions) != 8 {
		t.Fatalf("expected 8 questions, got %d", len(res.Questions))
	}
	for _, q := range res.Questions {
		if err := model.ValidateQuestion(q); err != nil {
			t.Fatalf("builder emitted invalid question: %v", err)
		}
	}
}

func TestBuildDocument_WithLabeler(t *testing.T) {
	doc := forms.MustNewDocument(forms.SourceFromFile("inline.json"), []byte(`{
		"info": {"title": "t"},
		"items": [{"title": "age", "questionItem": {"question": {"textQuestion": {}}}}]
	}`))

	res, err := model.BuildDocument(model.NewBuilder(model.WithLabeler(strings.ToUpper)), doc)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	if got := res.Questions[0].Title; got != "AGE" {
		t.Fatalf("expected labeler to run, got %q", got)
	}
}

func TestBuildDocument_WithMaxScalePoints(t *testing.T) {
	doc := forms.MustNewDocument(forms.SourceFromFile("inline.json"), []byte(`{
		"items": [{"title": "Rating", "questionItem": {"question": {"scaleQuestion": {"low": 1, "high": 10}}}}]
	}`))

	res, err := model.BuildDocument(model.NewBuilder(model.WithMaxScalePoints(5)), doc)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	if len(res.Questions) != 0 || len(res.Skipped) != 1 {
		t.Fatalf("expected the scale to be skipped, got %d questions", len(res.Questions))
	}
}

func TestBuildDocument_InvalidJSON(t *testing.T) {
	doc := forms.MustNewDocument(forms.SourceFromFile("broken.json"), []byte(`{"items": [`))

	if _, err := model.BuildDocument(model.NewBuilder(), doc); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMatrixRowTitle(t *testing.T) {
	if got := model.MatrixRowTitle("Rate", "Speed"); got != "Rate / Speed" {
		t.Fatalf("unexpected matrix title %q", got)
	}
}
