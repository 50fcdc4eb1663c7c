package forms

// Form mirrors the subset of the Forms API v1 form resource the builder
// reads. Field names follow the API's JSON so saved API responses decode
// directly.
type Form struct {
	FormID       string `json:"formId,omitempty"`
	Info         Info   `json:"info"`
	Items        []Item `json:"items,omitempty"`
	ResponderURI string `json:"responderUri,omitempty"`
	RevisionID   string `json:"revisionId,omitempty"`
}

// Info carries the form level titles.
type Info struct {
	Title         string `json:"title,omitempty"`
	DocumentTitle string `json:"documentTitle,omitempty"`
	Description   string `json:"description,omitempty"`
}

// Item is one element of the form. Exactly one of the item kinds is set; the
// layout kinds carry no answerable value.
type Item struct {
	ItemID            string             `json:"itemId,omitempty"`
	Title             string             `json:"title,omitempty"`
	Description       string             `json:"description,omitempty"`
	QuestionItem      *QuestionItem      `json:"questionItem,omitempty"`
	QuestionGroupItem *QuestionGroupItem `json:"questionGroupItem,omitempty"`
	PageBreakItem     *struct{}          `json:"pageBreakItem,omitempty"`
	TextItem          *struct{}          `json:"textItem,omitempty"`
	ImageItem         *struct{}          `json:"imageItem,omitempty"`
	VideoItem         *struct{}          `json:"videoItem,omitempty"`
}

// Layout reports whether the item is a layout-only element.
func (it Item) Layout() bool {
	return it.PageBreakItem != nil || it.TextItem != nil || it.ImageItem != nil || it.VideoItem != nil
}

// QuestionItem wraps a single question.
type QuestionItem struct {
	Question Question `json:"question"`
}

// QuestionGroupItem is a grid of row questions sharing one column list.
type QuestionGroupItem struct {
	Questions []Question `json:"questions,omitempty"`
	Grid      *Grid      `json:"grid,omitempty"`
}

// Grid holds the shared column options of a matrix question.
type Grid struct {
	Columns          *ChoiceQuestion `json:"columns,omitempty"`
	ShuffleQuestions bool            `json:"shuffleQuestions,omitempty"`
}

// Question carries exactly one question kind discriminator.
type Question struct {
	QuestionID         string          `json:"questionId,omitempty"`
	Required           bool            `json:"required,omitempty"`
	ChoiceQuestion     *ChoiceQuestion `json:"choiceQuestion,omitempty"`
	TextQuestion       *TextQuestion   `json:"textQuestion,omitempty"`
	ScaleQuestion      *ScaleQuestion  `json:"scaleQuestion,omitempty"`
	RowQuestion        *RowQuestion    `json:"rowQuestion,omitempty"`
	DateQuestion       *struct{}       `json:"dateQuestion,omitempty"`
	TimeQuestion       *struct{}       `json:"timeQuestion,omitempty"`
	FileUploadQuestion *struct{}       `json:"fileUploadQuestion,omitempty"`
	RatingQuestion     *struct{}       `json:"ratingQuestion,omitempty"`
}

// Choice question kinds reported by the API.
const (
	ChoiceTypeRadio    = "RADIO"
	ChoiceTypeCheckbox = "CHECKBOX"
	ChoiceTypeDropDown = "DROP_DOWN"
)

// ChoiceQuestion lists selectable options.
type ChoiceQuestion struct {
	Type    string   `json:"type,omitempty"`
	Options []Option `json:"options,omitempty"`
	Shuffle bool     `json:"shuffle,omitempty"`
}

// Option is one selectable value; IsOther marks the free-text "other" option.
type Option struct {
	Value   string `json:"value,omitempty"`
	IsOther bool   `json:"isOther,omitempty"`
}

// TextQuestion is a free-text question.
type TextQuestion struct {
	Paragraph bool `json:"paragraph,omitempty"`
}

// ScaleQuestion is a linear scale from Low to High inclusive.
type ScaleQuestion struct {
	Low       int64  `json:"low,omitempty"`
	High      int64  `json:"high,omitempty"`
	LowLabel  string `json:"lowLabel,omitempty"`
	HighLabel string `json:"highLabel,omitempty"`
}

// RowQuestion titles one row of a grid.
type RowQuestion struct {
	Title string `json:"title,omitempty"`
}
