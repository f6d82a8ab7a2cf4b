// File: internal/scan/scanner.go
package scan

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
)

// Class families used by Google Forms style markup. The scanner and the
// executor's click strategies must agree on these, so they are exported
// through accessors below.
var (
	containerClasses = []string{
		"freebirdFormviewerViewItemsItemItem",
		"freebirdFormviewerViewItemsItem",
	}
	radioOptionClasses = []string{
		"freebirdFormviewerViewItemsRadioOption",
		"quantumWizTogglePaperRadioOption",
		"docssharedWizToggleLabeledContainer",
	}
	checkboxOptionClasses = []string{
		"freebirdFormviewerViewItemsCheckboxOption",
		"quantumWizTogglePaperCheckboxOption",
	}
	titleClasses = []string{
		"freebirdFormviewerViewItemsItemItemTitle",
		"m2",
		"Qr7Oae",
		"docssharedWizTitle",
	}
)

// RadioOptionClasses returns the known radio style-class families in
// precedence order.
func RadioOptionClasses() []string { return radioOptionClasses }

// CheckboxOptionClasses returns the known checkbox style-class families in
// precedence order.
func CheckboxOptionClasses() []string { return checkboxOptionClasses }

// Scanner walks a rendered document snapshot and emits the ordered, fully
// classified question list for one pass.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a Scanner.
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{logger: logger.Named("scanner")}
}

// Scan parses the snapshot HTML and returns the classified questions in
// document order. Parsing the serialized document never fails structurally
// (the parser is error-recovering), so the only error is an empty snapshot.
func (s *Scanner) Scan(snapshot string) ([]*schemas.Question, error) {
	if strings.TrimSpace(snapshot) == "" {
		return nil, fmt.Errorf("empty document snapshot")
	}
	doc, err := html.Parse(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document snapshot: %w", err)
	}
	questions := ScanDocument(doc)
	for _, q := range questions {
		s.logger.Info("Classified question",
			zap.Int("index", q.Index),
			zap.String("title", q.Title),
			zap.String("type", string(q.Type)),
			zap.Int("options", len(q.Options)),
			zap.Bool("scale", q.Scale),
		)
	}
	return questions, nil
}

// ScanDocument collects question containers (list-item-like structural
// roles) in document order and classifies each. Classification is total:
// every container yields exactly one Question.
func ScanDocument(doc *html.Node) []*schemas.Question {
	containers := findAll(doc, isQuestionContainer)
	questions := make([]*schemas.Question, 0, len(containers))
	for i, c := range containers {
		q := classify(c, i)
		// The bounded-rating override applies to typed and clicked answers
		// only; date and time inputs always take their value directly.
		if q.Type.IsTextLike() || q.Type.IsChoiceLike() {
			q.Scale = IsScaleQuestion(q)
		}
		questions = append(questions, q)
	}
	return questions
}

func isQuestionContainer(n *html.Node) bool {
	if isElement(n, "div") && attr(n, "role") == "listitem" {
		return true
	}
	return hasAnyClass(n, containerClasses...)
}

// classify applies the detectors in fixed priority order, first match wins.
// It never returns nil: containers matching no detector degrade to a
// short_text question with no input locator.
func classify(container *html.Node, index int) *schemas.Question {
	q := &schemas.Question{
		Index:            index,
		Title:            extractTitle(container, index),
		ContainerLocator: BuildSelector(container),
	}

	// 1. Direct primitive text input / text area / editable region.
	if input := findFirst(container, isTextInput); input != nil {
		if isElement(input, "textarea") || attr(input, "contenteditable") == "true" {
			q.Type = schemas.TypeParagraph
		} else {
			q.Type = schemas.TypeShortText
		}
		q.InputLocator = BuildSelector(input)
		return q
	}

	// 2. Radio-role or radio-styled option group.
	if radios := findAll(container, isRadioOption); len(radios) > 0 {
		q.Type = schemas.TypeSingleChoice
		q.Options = optionLabels(radios)
		return q
	}

	// 3. Checkbox-role or checkbox-styled option group.
	if checkboxes := findAll(container, isCheckboxOption); len(checkboxes) > 0 {
		q.Type = schemas.TypeMultiChoice
		q.Options = optionLabels(checkboxes)
		return q
	}

	// 4. Native choice-list control.
	if sel := findFirst(container, func(n *html.Node) bool { return isElement(n, "select") }); sel != nil {
		q.Type = schemas.TypeDropdown
		q.InputLocator = BuildSelector(sel)
		for _, opt := range findAll(sel, func(n *html.Node) bool { return isElement(n, "option") }) {
			if text := textContent(opt); text != "" {
				q.Options = append(q.Options, text)
			}
		}
		return q
	}

	// 5. Date / time inputs.
	if date := findFirst(container, func(n *html.Node) bool { return isElement(n, "input") && inputType(n) == "date" }); date != nil {
		q.Type = schemas.TypeDate
		q.InputLocator = BuildSelector(date)
		return q
	}
	if t := findFirst(container, func(n *html.Node) bool { return isElement(n, "input") && inputType(n) == "time" }); t != nil {
		q.Type = schemas.TypeTime
		q.InputLocator = BuildSelector(t)
		return q
	}

	// 6. Fallback: container only, best-effort fill downstream.
	q.Type = schemas.TypeShortText
	return q
}

func isTextInput(n *html.Node) bool {
	if isElement(n, "input") {
		switch inputType(n) {
		case "text", "email", "tel", "number":
			return true
		}
		return false
	}
	if isElement(n, "textarea") {
		return true
	}
	return isElement(n, "div") && attr(n, "contenteditable") == "true"
}

func isRadioOption(n *html.Node) bool {
	if isElement(n, "div") && attr(n, "role") == "radio" {
		return true
	}
	return hasAnyClass(n, radioOptionClasses...)
}

func isCheckboxOption(n *html.Node) bool {
	if isElement(n, "div") && attr(n, "role") == "checkbox" {
		return true
	}
	return hasAnyClass(n, checkboxOptionClasses...)
}

func optionLabels(nodes []*html.Node) []string {
	labels := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if text := textContent(n); text != "" {
			labels = append(labels, text)
		}
	}
	return labels
}

// extractTitle finds the best-effort label: first known title-container
// class, then a heading element, then a synthesized placeholder.
func extractTitle(container *html.Node, index int) string {
	if titleNode := findFirst(container, func(n *html.Node) bool { return hasAnyClass(n, titleClasses...) }); titleNode != nil {
		if text := textContent(titleNode); text != "" {
			return text
		}
	}
	if heading := findFirst(container, func(n *html.Node) bool { return isElement(n, "h2") || isElement(n, "h3") }); heading != nil {
		if text := textContent(heading); text != "" {
			return text
		}
	}
	return fmt.Sprintf("question_%d", index)
}
