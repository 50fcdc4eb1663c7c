package model

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// MatrixTitleSeparator joins a grid title and a row title into the key of
// the row question.
const MatrixTitleSeparator = " / "

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// DefaultLabeler reduces a raw item title to plain text: markup is dropped,
// entities are decoded and whitespace runs collapse into single spaces.
func DefaultLabeler(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := trimmed
	if strings.ContainsAny(trimmed, "<>") {
		cleaned = html.UnescapeString(labelSanitizer().Sanitize(trimmed))
	}
	return strings.Join(strings.Fields(cleaned), " ")
}

// MatrixRowTitle composes the key for one row of a grid.
func MatrixRowTitle(matrix, row string) string {
	return matrix + MatrixTitleSeparator + row
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
