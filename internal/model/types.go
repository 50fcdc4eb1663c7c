package model

import (
	"sort"
	"strings"
)

// QuestionType is the closed set of answerable question kinds.
type QuestionType string

const (
	// QuestionTypeUnresolved marks an item the builder could not classify.
	QuestionTypeUnresolved QuestionType = ""
	QuestionTypeText       QuestionType = "TEXT"
	QuestionTypeRadio      QuestionType = "RADIO"
	QuestionTypeCheckbox   QuestionType = "CHECKBOX"
	QuestionTypeMatrixRow  QuestionType = "MATRIX_ROW"
	QuestionTypeScale      QuestionType = "SCALE"
)

// Valid reports whether t is one of the answerable question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeText, QuestionTypeRadio, QuestionTypeCheckbox, QuestionTypeMatrixRow, QuestionTypeScale:
		return true
	default:
		return false
	}
}

// MultiValued reports whether answers for t may carry more than one value.
func (t QuestionType) MultiValued() bool {
	return t == QuestionTypeCheckbox
}

// EntryID addresses one answerable field in a submission, e.g. "entry.100".
type EntryID string

// UnresolvedID is the placeholder persisted for entries that still need an
// identifier taken from a pre-fill link.
const UnresolvedID EntryID = "<TO ADD>"

// Resolved reports whether id holds a real identifier.
func (id EntryID) Resolved() bool {
	trimmed := strings.TrimSpace(string(id))
	return trimmed != "" && EntryID(trimmed) != UnresolvedID
}

// String implements fmt.Stringer.
func (id EntryID) String() string {
	return string(id)
}

// OtherOptionValue is submitted under the primary identifier when the "other"
// choice is selected.
const OtherOptionValue = "__other_option__"

// OtherResponseSuffix derives the identifier carrying the free-text "other"
// response from the primary identifier.
const OtherResponseSuffix = ".other_option_response"

// OtherResponseID returns the secondary identifier for id.
func (id EntryID) OtherResponseID() EntryID {
	return id + OtherResponseSuffix
}

// Question is the normalized representation of one answerable form field.
// Matrix items are expanded into one MATRIX_ROW question per row.
type Question struct {
	ID          EntryID      `json:"id,omitempty"`
	SourceID    string       `json:"sourceId,omitempty"`
	Title       string       `json:"title"`
	Type        QuestionType `json:"type"`
	Choices     []string     `json:"choices,omitempty"`
	AllowsOther bool         `json:"allowsOther,omitempty"`
	Required    bool         `json:"required,omitempty"`
}

// Entry is the persisted identifier for one question title, alongside the
// question type observed when the entry was last reconciled.
type Entry struct {
	ID   EntryID      `json:"id" yaml:"id"`
	Type QuestionType `json:"type,omitempty" yaml:"type,omitempty"`
}

// Resolved reports whether the entry carries a real identifier.
func (e Entry) Resolved() bool {
	return e.ID.Resolved()
}

// EntryMap is the durable title to identifier mapping reconciled across runs.
type EntryMap struct {
	FormID  string           `json:"form_id,omitempty" yaml:"form_id,omitempty"`
	Entries map[string]Entry `json:"entries" yaml:"entries"`
}

// NewEntryMap returns an empty map for formID.
func NewEntryMap(formID string) EntryMap {
	return EntryMap{FormID: formID, Entries: make(map[string]Entry)}
}

// Clone returns a deep copy so callers can derive new maps without mutating
// the receiver.
func (m EntryMap) Clone() EntryMap {
	out := EntryMap{FormID: m.FormID, Entries: make(map[string]Entry, len(m.Entries))}
	for title, entry := range m.Entries {
		out.Entries[title] = entry
	}
	return out
}

// Lookup returns the entry stored under title.
func (m EntryMap) Lookup(title string) (Entry, bool) {
	if m.Entries == nil {
		return Entry{}, false
	}
	entry, ok := m.Entries[title]
	return entry, ok
}

// Titles returns the sorted keys of the map.
func (m EntryMap) Titles() []string {
	titles := make([]string, 0, len(m.Entries))
	for title := range m.Entries {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Unresolved returns the sorted titles whose identifiers are placeholders.
func (m EntryMap) Unresolved() []string {
	var out []string
	for _, title := range m.Titles() {
		if !m.Entries[title].Resolved() {
			out = append(out, title)
		}
	}
	return out
}

// Remove returns a copy of the map without the supplied titles.
func (m EntryMap) Remove(titles ...string) EntryMap {
	out := m.Clone()
	for _, title := range titles {
		delete(out.Entries, title)
	}
	return out
}

// Answer holds the generated values for one identifier. Other carries the
// free-text response when the "other" choice was selected.
type Answer struct {
	Values []string `json:"values"`
	Other  string   `json:"other,omitempty"`
}

// Response maps identifiers to generated answers for a single run.
type Response map[EntryID]Answer

// IDs returns the identifiers of the response in sorted order.
func (r Response) IDs() []EntryID {
	ids := make([]EntryID, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// IssueKind classifies non-fatal problems collected during a run.
type IssueKind string

const (
	IssueMalformedSchema IssueKind = "malformed_schema"
	IssueTypeMismatch    IssueKind = "type_mismatch"
	IssueSkipped         IssueKind = "skipped"
	IssueUnresolved      IssueKind = "unresolved"
)

// Issue records one recoverable problem tied to a question title.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Title   string    `json:"title,omitempty"`
	Message string    `json:"message"`
}
