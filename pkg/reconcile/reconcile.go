package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/submission"
)

// ErrUnknownTitle reports an assignment to a title missing from the map.
var ErrUnknownTitle = errors.New("reconcile: unknown title")

// Result describes one reconciliation pass. Map is a new value; the prior map
// passed to Reconcile is never mutated.
type Result struct {
	Map model.EntryMap
	// Added lists titles seen for the first time, in schema order.
	Added []string
	// Stale lists titles kept in the map that the schema no longer has.
	Stale []string
	// Unresolved lists schema titles still holding the placeholder.
	Unresolved []string
	Issues     []model.Issue
}

// Reconcile merges the current question sequence into prior. Existing
// identifiers under an exact title match are preserved, new titles get the
// unresolved placeholder and titles absent from the schema are retained. A
// type change against the recorded type keeps the prior entry untouched and
// reports a type mismatch. Running it twice on its own output is a no-op.
func Reconcile(questions []model.Question, prior model.EntryMap) Result {
	out := prior.Clone()
	res := Result{}
	current := make(map[string]struct{}, len(questions))

	for _, q := range questions {
		current[q.Title] = struct{}{}

		entry, ok := out.Entries[q.Title]
		if !ok {
			out.Entries[q.Title] = model.Entry{ID: model.UnresolvedID, Type: q.Type}
			res.Added = append(res.Added, q.Title)
			res.Unresolved = append(res.Unresolved, q.Title)
			res.Issues = append(res.Issues, model.Issue{
				Kind:    model.IssueUnresolved,
				Title:   q.Title,
				Message: "new question needs an identifier from a pre-fill link",
			})
			continue
		}

		entry.ID = normalizeID(entry.ID)
		switch {
		case entry.Type == model.QuestionTypeUnresolved:
			entry.Type = q.Type
		case entry.Type != q.Type:
			res.Issues = append(res.Issues, model.Issue{
				Kind:  model.IssueTypeMismatch,
				Title: q.Title,
				Message: fmt.Sprintf("%s: recorded %s but schema has %s; keeping %s until a new pre-fill link is captured",
					model.ErrTypeMismatch, entry.Type, q.Type, entry.ID),
			})
		}
		out.Entries[q.Title] = entry

		if !entry.Resolved() {
			res.Unresolved = append(res.Unresolved, q.Title)
			res.Issues = append(res.Issues, model.Issue{
				Kind:    model.IssueUnresolved,
				Title:   q.Title,
				Message: "question still needs an identifier from a pre-fill link",
			})
		}
	}

	for _, title := range out.Titles() {
		if _, ok := current[title]; !ok {
			res.Stale = append(res.Stale, title)
		}
	}

	res.Map = out
	return res
}

// Prune removes the entries whose titles the current schema no longer has.
// It is the explicit operator counterpart of the retention in Reconcile.
func Prune(questions []model.Question, m model.EntryMap) (model.EntryMap, []string) {
	current := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		current[q.Title] = struct{}{}
	}
	var removed []string
	for _, title := range m.Titles() {
		if _, ok := current[title]; !ok {
			removed = append(removed, title)
		}
	}
	return m.Remove(removed...), removed
}

// Assign sets the identifier for title. The identifier may be given as
// "entry.123" or "123".
func Assign(m model.EntryMap, title, rawID string) (model.EntryMap, error) {
	entry, ok := m.Lookup(title)
	if !ok {
		return m, fmt.Errorf("%w: %q", ErrUnknownTitle, title)
	}
	id, err := submission.NormalizeEntryID(rawID)
	if err != nil {
		return m, err
	}
	out := m.Clone()
	entry.ID = id
	out.Entries[title] = entry
	return out, nil
}

func normalizeID(id model.EntryID) model.EntryID {
	trimmed := model.EntryID(strings.TrimSpace(string(id)))
	if !trimmed.Resolved() {
		return model.UnresolvedID
	}
	return trimmed
}
