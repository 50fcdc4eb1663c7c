package model

import internalmodel "github.com/goliatone/go-formfill/internal/model"

// QuestionType re-exports the internal QuestionType enumeration.
type QuestionType = internalmodel.QuestionType

const (
	QuestionTypeUnresolved = internalmodel.QuestionTypeUnresolved
	QuestionTypeText       = internalmodel.QuestionTypeText
	QuestionTypeRadio      = internalmodel.QuestionTypeRadio
	QuestionTypeCheckbox   = internalmodel.QuestionTypeCheckbox
	QuestionTypeMatrixRow  = internalmodel.QuestionTypeMatrixRow
	QuestionTypeScale      = internalmodel.QuestionTypeScale
)

type EntryID = internalmodel.EntryID
type Question = internalmodel.Question
type Entry = internalmodel.Entry
type EntryMap = internalmodel.EntryMap
type Answer = internalmodel.Answer
type Response = internalmodel.Response
type Result = internalmodel.Result
type IssueKind = internalmodel.IssueKind
type Issue = internalmodel.Issue
type UnresolvedEntryError = internalmodel.UnresolvedEntryError

const (
	UnresolvedID        = internalmodel.UnresolvedID
	OtherOptionValue    = internalmodel.OtherOptionValue
	OtherResponseSuffix = internalmodel.OtherResponseSuffix
)

const (
	IssueMalformedSchema = internalmodel.IssueMalformedSchema
	IssueTypeMismatch    = internalmodel.IssueTypeMismatch
	IssueSkipped         = internalmodel.IssueSkipped
	IssueUnresolved      = internalmodel.IssueUnresolved
)

var (
	ErrMalformedSchema = internalmodel.ErrMalformedSchema
	ErrUnresolvedEntry = internalmodel.ErrUnresolvedEntry
	ErrTypeMismatch    = internalmodel.ErrTypeMismatch
)

// NewQuestion validates and constructs a Question.
func NewQuestion(title string, typ QuestionType, choices []string, allowsOther, required bool) (Question, error) {
	return internalmodel.NewQuestion(title, typ, choices, allowsOther, required)
}

// ValidateQuestion checks the invariants tying a question's type to its
// choices.
func ValidateQuestion(q Question) error {
	return internalmodel.ValidateQuestion(q)
}

// NewEntryMap returns an empty entry map for formID.
func NewEntryMap(formID string) EntryMap {
	return internalmodel.NewEntryMap(formID)
}

// MatrixRowTitle composes the key for one row of a grid question.
func MatrixRowTitle(matrix, row string) string {
	return internalmodel.MatrixRowTitle(matrix, row)
}
