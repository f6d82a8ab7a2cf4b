// File: api/schemas/form.go
// Description: Shared data model for the form-filling engine. One Question is
// one answerable input unit discovered in a rendered document; one Answer is
// the synthetic response chosen for it. Both are scoped to a single pass and
// never survive a navigation.
package schemas

// QuestionType is the closed set of semantic input kinds the classifier can
// assign. Every scanned container yields exactly one Question with exactly
// one of these types.
type QuestionType string

const (
	TypeShortText    QuestionType = "short_text"
	TypeParagraph    QuestionType = "paragraph"
	TypeSingleChoice QuestionType = "single_choice"
	TypeMultiChoice  QuestionType = "multi_choice"
	TypeDropdown     QuestionType = "dropdown"
	TypeDate         QuestionType = "date"
	TypeTime         QuestionType = "time"
	TypeUnknown      QuestionType = "unknown"
)

// IsTextLike reports whether the type is answered by typing free text.
func (t QuestionType) IsTextLike() bool {
	return t == TypeShortText || t == TypeParagraph
}

// IsChoiceLike reports whether the type is answered by addressing a position
// within the question's options sequence.
func (t QuestionType) IsChoiceLike() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice || t == TypeDropdown
}

// Question is one discovered input unit within a single document snapshot.
type Question struct {
	// Index is the position in document order. Stable within one scan only.
	Index int `json:"index"`
	Type  QuestionType `json:"type"`
	// Title is the best-effort extracted label, or a synthesized
	// "question_<index>" placeholder when no label was found.
	Title string `json:"title"`
	// Options holds the option labels in document order for choice-like
	// types. Selection addresses this slice by index.
	Options []string `json:"options,omitempty"`
	// ContainerLocator is the selector path of the enclosing node. Never
	// empty for a classified Question.
	ContainerLocator string `json:"containerLocator"`
	// InputLocator is the selector path of the primitive input element when
	// one exists (text-like, dropdown, date, time).
	InputLocator string `json:"inputLocator,omitempty"`
	// Scale marks the question as a bounded numeric rating. This flag
	// overrides the default answer strategy regardless of Type.
	Scale bool `json:"scale,omitempty"`
}

// AnswerKind discriminates the Answer payload.
type AnswerKind string

const (
	AnswerText    AnswerKind = "text"
	AnswerIndex   AnswerKind = "index"
	AnswerIndexes AnswerKind = "indexes"
	AnswerDate    AnswerKind = "dateValue"
	AnswerTime    AnswerKind = "timeValue"
	AnswerNone    AnswerKind = "none"
)

// Answer is the chosen response for one Question. Exactly one payload field
// is meaningful, selected by Kind.
type Answer struct {
	Kind    AnswerKind `json:"kind"`
	Text    string     `json:"text,omitempty"`
	Index   int        `json:"index,omitempty"`
	Indexes []int      `json:"indexes,omitempty"`
}

// CompatibleWith reports whether the answer kind is valid for the question
// type it was generated from.
func (a Answer) CompatibleWith(t QuestionType) bool {
	switch a.Kind {
	case AnswerText:
		return t.IsTextLike() || t == TypeUnknown
	case AnswerIndex:
		// Text-like scale questions are answered by a numeric-radio index.
		return t == TypeSingleChoice || t == TypeDropdown || t.IsTextLike()
	case AnswerIndexes:
		return t == TypeMultiChoice
	case AnswerDate:
		return t == TypeDate
	case AnswerTime:
		return t == TypeTime
	case AnswerNone:
		return true
	}
	return false
}

// PassResult is the outcome of one scan-fill-submit cycle.
type PassResult struct {
	Pass      int
	Questions int
	Filled    int
	Submitted bool
	Err       error
}
