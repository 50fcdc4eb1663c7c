package forms_test

import (
	"testing"

	"github.com/goliatone/go-formfill/pkg/forms"
)

func TestParseSource(t *testing.T) {
	cases := []struct {
		raw      string
		kind     forms.SourceKind
		location string
		nilWant  bool
	}{
		{raw: "data/form.json", kind: forms.SourceKindFile, location: "data/form.json"},
		{raw: " api:1FormId ", kind: forms.SourceKindAPI, location: "1FormId"},
		{raw: "https://example.com/form.json", kind: forms.SourceKindURL, location: "https://example.com/form.json"},
		{raw: "   ", nilWant: true},
	}

	for _, tc := range cases {
		src := forms.ParseSource(tc.raw)
		if tc.nilWant {
			if src != nil {
				t.Errorf("ParseSource(%q) = %v, want nil", tc.raw, src)
			}
			continue
		}
		if src == nil || src.Kind() != tc.kind || src.Location() != tc.location {
			t.Errorf("ParseSource(%q) = %#v, want %s %q", tc.raw, src, tc.kind, tc.location)
		}
	}
}

func TestItemLayout(t *testing.T) {
	if !(forms.Item{PageBreakItem: &struct{}{}}).Layout() {
		t.Fatalf("page break should be a layout item")
	}
	if (forms.Item{QuestionItem: &forms.QuestionItem{}}).Layout() {
		t.Fatalf("question item reported as layout")
	}
}

func TestNewDocument_Validation(t *testing.T) {
	if _, err := forms.NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := forms.NewDocument(forms.SourceFromFile("x.json"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
