package model

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formfill/pkg/forms"
)

// Result is the ordered output of a build. Questions are answerable and keyed
// by unique titles; Skipped holds items that could not be turned into a valid
// question (their Type may be unresolved).
type Result struct {
	Title     string     `json:"title,omitempty"`
	Questions []Question `json:"questions"`
	Skipped   []Question `json:"skipped,omitempty"`
	Issues    []Issue    `json:"issues,omitempty"`
}

// Builder converts raw form descriptions into normalized questions.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.DuplicateSuffix != "" {
		opts.DuplicateSuffix = options.DuplicateSuffix
	}
	if options.MaxScalePoints > 0 {
		opts.MaxScalePoints = options.MaxScalePoints
	}
	return &Builder{opts: opts}
}

// Build walks the form items in order. Layout items and unclassifiable
// questions are reported as issues and never abort the build.
func (b *Builder) Build(form forms.Form) (Result, error) {
	state := &buildState{
		result: Result{Title: b.opts.Labeler(firstNonEmpty(form.Info.Title, form.Info.DocumentTitle))},
		suffix: b.opts.DuplicateSuffix,
		seen:   make(map[string]int),
		taken:  make(map[string]struct{}),
	}

	for index, item := range form.Items {
		title := b.opts.Labeler(item.Title)
		switch {
		case item.QuestionItem != nil:
			b.buildQuestion(state, index, title, item.QuestionItem.Question)
		case item.QuestionGroupItem != nil:
			b.buildGroup(state, index, title, *item.QuestionGroupItem)
		case item.Layout():
			state.issue(IssueSkipped, itemLabel(title, index), "layout item carries no answerable value")
		default:
			state.skip(Question{Title: title, Type: QuestionTypeUnresolved}, index,
				fmt.Errorf("%w: unrecognized item kind", ErrMalformedSchema))
		}
	}

	return state.result, nil
}

func (b *Builder) buildQuestion(state *buildState, index int, title string, raw forms.Question) {
	q := Question{
		SourceID: raw.QuestionID,
		Title:    title,
		Required: raw.Required,
	}

	switch {
	case raw.TextQuestion != nil:
		q.Type = QuestionTypeText
	case raw.ChoiceQuestion != nil:
		q.Type = choiceType(raw.ChoiceQuestion.Type)
		q.Choices, q.AllowsOther = choiceValues(raw.ChoiceQuestion.Options)
		if q.Type == QuestionTypeUnresolved {
			state.skip(q, index, fmt.Errorf("%w: unsupported choice type %q", ErrMalformedSchema, raw.ChoiceQuestion.Type))
			return
		}
	case raw.ScaleQuestion != nil:
		choices, err := scaleChoices(*raw.ScaleQuestion, b.opts.MaxScalePoints)
		if err != nil {
			q.Type = QuestionTypeScale
			state.skip(q, index, err)
			return
		}
		q.Type = QuestionTypeScale
		q.Choices = choices
	default:
		state.skip(q, index, fmt.Errorf("%w: unsupported question kind %s", ErrMalformedSchema, questionKind(raw)))
		return
	}

	state.add(q, index)
}

func (b *Builder) buildGroup(state *buildState, index int, title string, group forms.QuestionGroupItem) {
	if group.Grid == nil || group.Grid.Columns == nil {
		state.skip(Question{Title: title, Type: QuestionTypeMatrixRow}, index,
			fmt.Errorf("%w: grid has no columns", ErrMalformedSchema))
		return
	}

	rowType := QuestionTypeMatrixRow
	switch group.Grid.Columns.Type {
	case forms.ChoiceTypeCheckbox:
		rowType = QuestionTypeCheckbox
	case "", forms.ChoiceTypeRadio:
	default:
		state.skip(Question{Title: title, Type: QuestionTypeUnresolved}, index,
			fmt.Errorf("%w: unsupported grid column type %q", ErrMalformedSchema, group.Grid.Columns.Type))
		return
	}

	columns, _ := choiceValues(group.Grid.Columns.Options)
	if len(group.Questions) == 0 {
		state.skip(Question{Title: title, Type: rowType, Choices: columns}, index,
			fmt.Errorf("%w: grid has no rows", ErrMalformedSchema))
		return
	}

	for _, row := range group.Questions {
		rowTitle := ""
		if row.RowQuestion != nil {
			rowTitle = b.opts.Labeler(row.RowQuestion.Title)
		}
		q := Question{
			SourceID: row.QuestionID,
			Title:    MatrixRowTitle(title, rowTitle),
			Type:     rowType,
			Choices:  append([]string(nil), columns...),
			Required: row.Required,
		}
		if title == "" || rowTitle == "" {
			state.skip(q, index, fmt.Errorf("%w: grid row requires both a grid and a row title", ErrMalformedSchema))
			continue
		}
		state.add(q, index)
	}
}

type buildState struct {
	result Result
	suffix string
	// seen counts how often a base title was requested; taken holds every
	// title already emitted, suffixed or not.
	seen  map[string]int
	taken map[string]struct{}
}

// add validates q and appends it under a title unique within the result.
func (s *buildState) add(q Question, index int) {
	if err := ValidateQuestion(q); err != nil {
		s.skip(q, index, err)
		return
	}
	q.Title = s.uniqueTitle(q.Title)
	s.result.Questions = append(s.result.Questions, q)
}

// uniqueTitle returns base when unused, else the first free suffixed form
// numbered from the occurrence count of base, never below 2.
func (s *buildState) uniqueTitle(base string) string {
	s.seen[base]++
	title := base
	for n := max(s.seen[base], 2); s.isTaken(title); n++ {
		title = fmt.Sprintf(s.suffix, base, n)
	}
	s.taken[title] = struct{}{}
	return title
}

func (s *buildState) isTaken(title string) bool {
	_, dup := s.taken[title]
	return dup
}

func (s *buildState) skip(q Question, index int, err error) {
	s.result.Skipped = append(s.result.Skipped, q)
	s.issue(IssueMalformedSchema, itemLabel(q.Title, index), err.Error())
}

func (s *buildState) issue(kind IssueKind, title, message string) {
	s.result.Issues = append(s.result.Issues, Issue{Kind: kind, Title: title, Message: message})
}

func choiceType(raw string) QuestionType {
	switch raw {
	case forms.ChoiceTypeRadio, forms.ChoiceTypeDropDown:
		return QuestionTypeRadio
	case forms.ChoiceTypeCheckbox:
		return QuestionTypeCheckbox
	default:
		return QuestionTypeUnresolved
	}
}

func choiceValues(options []forms.Option) ([]string, bool) {
	var (
		values      []string
		allowsOther bool
	)
	for _, option := range options {
		if option.IsOther {
			allowsOther = true
			continue
		}
		if option.Value == "" {
			continue
		}
		values = append(values, option.Value)
	}
	return values, allowsOther
}

func scaleChoices(scale forms.ScaleQuestion, maxPoints int) ([]string, error) {
	if scale.High <= scale.Low {
		return nil, fmt.Errorf("%w: scale bounds %d..%d are empty", ErrMalformedSchema, scale.Low, scale.High)
	}
	// Exact for High > Low even across the full int64 range.
	span := uint64(scale.High) - uint64(scale.Low)
	if span >= uint64(maxPoints) {
		return nil, fmt.Errorf("%w: scale bounds %d..%d exceed %d points", ErrMalformedSchema, scale.Low, scale.High, maxPoints)
	}
	choices := make([]string, 0, span+1)
	for value := scale.Low; value <= scale.High; value++ {
		choices = append(choices, strconv.FormatInt(value, 10))
	}
	return choices, nil
}

func questionKind(q forms.Question) string {
	switch {
	case q.DateQuestion != nil:
		return "date"
	case q.TimeQuestion != nil:
		return "time"
	case q.FileUploadQuestion != nil:
		return "file upload"
	case q.RatingQuestion != nil:
		return "rating"
	default:
		return "unknown"
	}
}

func itemLabel(title string, index int) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf("item %d", index+1)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
