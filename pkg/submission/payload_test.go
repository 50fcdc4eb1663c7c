package submission_test

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/submission"
)

func TestBuild_EncodesEveryAnswerShape(t *testing.T) {
	resp := model.Response{
		"entry.100": {Values: []string{"Blue"}},
		"entry.200": {Values: []string{"Hiking", model.OtherOptionValue}, Other: "Chess"},
		"entry.300": {Values: []string{"Ada"}},
	}

	got := submission.Build(resp)

	want := url.Values{
		"entry.100":                       {"Blue"},
		"entry.200":                       {"Hiking", model.OtherOptionValue},
		"entry.200.other_option_response": {"Chess"},
		"entry.300":                       {"Ada"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_AddsMissingSentinel(t *testing.T) {
	got := submission.Build(model.Response{"entry.5": {Other: "Something else"}})

	if diff := cmp.Diff([]string{model.OtherOptionValue}, got["entry.5"]); diff != "" {
		t.Fatalf("primary values mismatch (-want +got):\n%s", diff)
	}
	if got.Get("entry.5.other_option_response") != "Something else" {
		t.Fatalf("other response missing: %v", got)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	resp := model.Response{
		"entry.1": {Values: []string{"A", "C"}},
		"entry.2": {Values: []string{model.OtherOptionValue}, Other: "free text"},
		"entry.3": {Values: []string{"3"}},
	}

	got, err := submission.Decode(submission.Build(resp))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(resp, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_OtherWithoutSentinel(t *testing.T) {
	values := url.Values{
		"entry.2":                       {"A"},
		"entry.2.other_option_response": {"text"},
	}
	if _, err := submission.Decode(values); err == nil {
		t.Fatalf("expected error for other response without sentinel")
	}
}

func TestEncode_SortedKeys(t *testing.T) {
	values := url.Values{"entry.2": {"b"}, "entry.1": {"a c"}}
	if got, want := submission.Encode(values), "entry.1=a+c&entry.2=b"; got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestParsePrefillLink(t *testing.T) {
	link := "https://docs.google.com/forms/d/e/abc/viewform?usp=pp_url" +
		"&entry.1=Your+name&entry.3=Hiking&entry.3=__other_option__" +
		"&entry.3.other_option_response=Chess%20club&entry.2=Red"

	fields, err := submission.ParsePrefillLink(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []submission.Field{
		{ID: "entry.1", Value: "Your name"},
		{ID: "entry.3", Value: "Hiking"},
		{ID: "entry.3", Value: model.OtherOptionValue},
		{ID: "entry.3.other_option_response", Value: "Chess club"},
		{ID: "entry.2", Value: "Red"},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	wantGroups := []submission.Candidate{
		{ID: "entry.1", Values: []string{"Your name"}},
		{ID: "entry.3", Values: []string{"Hiking", model.OtherOptionValue}, Other: "Chess club"},
		{ID: "entry.2", Values: []string{"Red"}},
	}
	if diff := cmp.Diff(wantGroups, submission.GroupFields(fields)); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePrefillLink_NoEntries(t *testing.T) {
	_, err := submission.ParsePrefillLink("https://docs.google.com/forms/d/e/abc/viewform?usp=pp_url")
	if !errors.Is(err, submission.ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}

func TestNormalizeEntryID(t *testing.T) {
	cases := map[string]model.EntryID{
		"entry.123":   "entry.123",
		" 456 ":       "entry.456",
		"entry.12a":   "",
		"":            "",
		"entry.":      "",
		"other.12345": "",
	}
	for raw, want := range cases {
		got, err := submission.NormalizeEntryID(raw)
		if want == "" {
			if err == nil {
				t.Errorf("NormalizeEntryID(%q) = %q, want error", raw, got)
			}
			continue
		}
		if err != nil || got != want {
			t.Errorf("NormalizeEntryID(%q) = %q, %v, want %q", raw, got, err, want)
		}
	}
}

func TestPrefillURL(t *testing.T) {
	got, err := submission.PrefillURL("https://docs.google.com/forms/d/e/abc/viewform", url.Values{"entry.1": {"Red"}})
	if err != nil {
		t.Fatalf("prefill url: %v", err)
	}
	want := "https://docs.google.com/forms/d/e/abc/viewform?entry.1=Red&usp=pp_url"
	if got != want {
		t.Fatalf("PrefillURL = %q, want %q", got, want)
	}
}
