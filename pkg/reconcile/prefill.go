package reconcile

import (
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
	"github.com/goliatone/go-formfill/pkg/submission"
)

// Ambiguity is a pre-fill identifier that could not be tied to exactly one
// unresolved question. Titles lists the plausible matches, possibly none.
type Ambiguity struct {
	Candidate submission.Candidate
	Titles    []string
}

// PrefillResult describes the identifiers harvested from a pre-fill link.
type PrefillResult struct {
	Map model.EntryMap
	// Assigned maps titles to the identifiers taken from the link.
	Assigned  map[string]model.EntryID
	Ambiguous []Ambiguity
}

// ApplyPrefill assigns identifiers from a pre-fill link to unresolved
// entries. An identifier is taken when its values single out one unresolved
// question: a text answer equal to the question title, or values that are
// all choices of exactly one question. Resolved entries are left untouched
// and identifiers already in use are ignored.
func ApplyPrefill(questions []model.Question, m model.EntryMap, fields []submission.Field) PrefillResult {
	out := m.Clone()
	res := PrefillResult{Assigned: make(map[string]model.EntryID)}

	used := make(map[model.EntryID]struct{})
	for _, entry := range out.Entries {
		if entry.Resolved() {
			used[entry.ID] = struct{}{}
		}
	}

	var open []model.Question
	for _, q := range questions {
		if entry, ok := out.Lookup(q.Title); ok && entry.Resolved() {
			continue
		}
		open = append(open, q)
	}

	claims := make(map[string][]submission.Candidate)
	var order []string
	for _, candidate := range submission.GroupFields(fields) {
		if _, taken := used[candidate.ID]; taken {
			continue
		}
		matches := matchingTitles(open, candidate)
		if len(matches) != 1 {
			res.Ambiguous = append(res.Ambiguous, Ambiguity{Candidate: candidate, Titles: matches})
			continue
		}
		title := matches[0]
		if _, seen := claims[title]; !seen {
			order = append(order, title)
		}
		claims[title] = append(claims[title], candidate)
	}

	for _, title := range order {
		candidates := claims[title]
		if len(candidates) > 1 {
			for _, candidate := range candidates {
				res.Ambiguous = append(res.Ambiguous, Ambiguity{Candidate: candidate, Titles: []string{title}})
			}
			continue
		}
		entry, ok := out.Lookup(title)
		if !ok {
			entry = model.Entry{Type: typeOf(open, title)}
		}
		entry.ID = candidates[0].ID
		out.Entries[title] = entry
		res.Assigned[title] = entry.ID
	}

	res.Map = out
	return res
}

func matchingTitles(questions []model.Question, candidate submission.Candidate) []string {
	var titles []string
	for _, q := range questions {
		if matches(q, candidate) {
			titles = append(titles, q.Title)
		}
	}
	return titles
}

func matches(q model.Question, candidate submission.Candidate) bool {
	if len(candidate.Values) == 0 {
		return false
	}
	switch q.Type {
	case model.QuestionTypeText:
		if len(candidate.Values) != 1 {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(candidate.Values[0]), q.Title)
	case model.QuestionTypeRadio, model.QuestionTypeMatrixRow, model.QuestionTypeScale:
		if len(candidate.Values) != 1 {
			return false
		}
		return isChoice(q, candidate.Values[0])
	case model.QuestionTypeCheckbox:
		for _, value := range candidate.Values {
			if !isChoice(q, value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isChoice(q model.Question, value string) bool {
	if value == model.OtherOptionValue {
		return q.AllowsOther
	}
	for _, choice := range q.Choices {
		if choice == value {
			return true
		}
	}
	return false
}

func typeOf(questions []model.Question, title string) model.QuestionType {
	for _, q := range questions {
		if q.Title == title {
			return q.Type
		}
	}
	return model.QuestionTypeUnresolved
}
