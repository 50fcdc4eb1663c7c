package submission

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/goliatone/go-formfill/pkg/model"
)

var entryIDPattern = regexp.MustCompile(`^entry\.[0-9]+$`)

// ErrNoEntries reports a pre-fill link without any entry parameters.
var ErrNoEntries = errors.New("submission: pre-fill link has no entry parameters")

// Field is one identifier/value pair in link order.
type Field struct {
	ID    model.EntryID
	Value string
}

// Candidate groups the values a pre-fill link carries for one identifier.
type Candidate struct {
	ID     model.EntryID
	Values []string
	Other  string
}

// IsEntryID reports whether raw has the "entry.<digits>" shape.
func IsEntryID(raw string) bool {
	return entryIDPattern.MatchString(raw)
}

// NormalizeEntryID accepts "entry.123" or a bare "123" and returns the
// canonical identifier.
func NormalizeEntryID(raw string) (model.EntryID, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "entry.") {
		trimmed = "entry." + trimmed
	}
	if !IsEntryID(trimmed) {
		return "", fmt.Errorf("submission: %q is not an entry identifier", raw)
	}
	return model.EntryID(trimmed), nil
}

// ParsePrefillLink extracts the entry parameters of a pre-fill link in the
// order they appear. Repeated parameters (checkboxes) yield one Field each;
// parameters that are not entries (usp, fbzx, ...) are ignored.
func ParsePrefillLink(link string) ([]Field, error) {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return nil, fmt.Errorf("submission: parse pre-fill link: %w", err)
	}

	var fields []Field
	for _, pair := range strings.Split(parsed.RawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("submission: decode key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("submission: decode value for %s: %w", key, err)
		}
		base := strings.TrimSuffix(key, model.OtherResponseSuffix)
		if !IsEntryID(base) {
			continue
		}
		fields = append(fields, Field{ID: model.EntryID(key), Value: value})
	}
	if len(fields) == 0 {
		return nil, ErrNoEntries
	}
	return fields, nil
}

// GroupFields merges fields by identifier, keeping first-seen order and
// folding other responses into their primary identifier.
func GroupFields(fields []Field) []Candidate {
	index := make(map[model.EntryID]int)
	var out []Candidate

	slot := func(id model.EntryID) *Candidate {
		if i, ok := index[id]; ok {
			return &out[i]
		}
		index[id] = len(out)
		out = append(out, Candidate{ID: id})
		return &out[len(out)-1]
	}

	for _, field := range fields {
		if primary, ok := strings.CutSuffix(string(field.ID), model.OtherResponseSuffix); ok {
			slot(model.EntryID(primary)).Other = field.Value
			continue
		}
		c := slot(field.ID)
		c.Values = append(c.Values, field.Value)
	}
	return out
}

// PrefillURL renders values as a pre-fill link on top of viewURL so an
// operator can open the generated answers in a browser.
func PrefillURL(viewURL string, values url.Values) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(viewURL))
	if err != nil {
		return "", fmt.Errorf("submission: parse view url: %w", err)
	}
	query := url.Values{}
	for key, vals := range values {
		query[key] = append([]string(nil), vals...)
	}
	query.Set("usp", "pp_url")
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
