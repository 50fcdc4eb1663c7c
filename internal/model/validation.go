package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMalformedSchema reports a question that cannot be classified or lacks
	// the attributes its type requires.
	ErrMalformedSchema = errors.New("malformed schema")
	// ErrUnresolvedEntry reports identifiers still holding the placeholder at
	// generation time.
	ErrUnresolvedEntry = errors.New("unresolved entry")
	// ErrTypeMismatch reports a question whose type differs from the type
	// recorded in the entry map.
	ErrTypeMismatch = errors.New("type mismatch")
)

// UnresolvedEntryError lists every title that still needs an identifier.
type UnresolvedEntryError struct {
	Titles []string
}

func (e *UnresolvedEntryError) Error() string {
	titles := append([]string(nil), e.Titles...)
	sort.Strings(titles)
	quoted := make([]string, len(titles))
	for i, title := range titles {
		quoted[i] = fmt.Sprintf("%q", title)
	}
	return fmt.Sprintf("%s: %d question(s) need an identifier from a pre-fill link: %s",
		ErrUnresolvedEntry, len(titles), strings.Join(quoted, ", "))
}

// Is lets errors.Is match the sentinel.
func (e *UnresolvedEntryError) Is(target error) bool {
	return target == ErrUnresolvedEntry
}

// NewQuestion validates the supplied attributes and returns a Question. The
// choice slice is copied.
func NewQuestion(title string, typ QuestionType, choices []string, allowsOther, required bool) (Question, error) {
	q := Question{
		Title:       strings.TrimSpace(title),
		Type:        typ,
		Choices:     append([]string(nil), choices...),
		AllowsOther: allowsOther,
		Required:    required,
	}
	if err := ValidateQuestion(q); err != nil {
		return Question{}, err
	}
	return q, nil
}

// ValidateQuestion checks the invariants tying a question's type to its
// choices.
func ValidateQuestion(q Question) error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: question title is required", ErrMalformedSchema)
	}
	switch q.Type {
	case QuestionTypeText:
		if len(q.Choices) > 0 {
			return fmt.Errorf("%w: text question %q cannot carry choices", ErrMalformedSchema, q.Title)
		}
	case QuestionTypeRadio, QuestionTypeCheckbox:
		if len(q.Choices) == 0 && !q.AllowsOther {
			return fmt.Errorf("%w: %s question %q has no choices", ErrMalformedSchema, strings.ToLower(string(q.Type)), q.Title)
		}
	case QuestionTypeMatrixRow:
		if len(q.Choices) == 0 {
			return fmt.Errorf("%w: matrix row %q has no choices", ErrMalformedSchema, q.Title)
		}
		if q.AllowsOther {
			return fmt.Errorf("%w: matrix row %q cannot accept other responses", ErrMalformedSchema, q.Title)
		}
	case QuestionTypeScale:
		if len(q.Choices) < 2 {
			return fmt.Errorf("%w: scale question %q needs at least two points", ErrMalformedSchema, q.Title)
		}
	default:
		return fmt.Errorf("%w: question %q has unknown type %q", ErrMalformedSchema, q.Title, q.Type)
	}
	for _, choice := range q.Choices {
		if choice == "" {
			return fmt.Errorf("%w: question %q has an empty choice", ErrMalformedSchema, q.Title)
		}
	}
	return nil
}
