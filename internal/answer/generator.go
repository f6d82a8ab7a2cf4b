// File: internal/answer/generator.go
// Description: Synthesizes plausible answers for classified questions. Text
// answers come from a faker seeded per generator, so a fixed seed replays the
// same answer stream.
package answer

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/scan"
)

// maxMultiSelections caps how many options a multi-choice answer ticks.
const maxMultiSelections = 2

// scaleFallbackSpan bounds the synthetic position for a rating question
// whose options are not visible at scan time. The executor clamps the
// position to the live control count.
const scaleFallbackSpan = 10

// Generator chooses one Answer per Question.
type Generator struct {
	faker  *gofakeit.Faker
	logger *zap.Logger
}

// NewGenerator creates a Generator with a random seed.
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{faker: gofakeit.New(0), logger: logger.Named("answer")}
}

// NewGeneratorWithSeed creates a Generator replaying a fixed answer stream.
func NewGeneratorWithSeed(logger *zap.Logger, seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed), logger: logger.Named("answer")}
}

// Generate returns the answer for one question. The result is always
// compatible with the question type; questions that cannot be answered
// (choice types with no visible options) yield AnswerNone.
func (g *Generator) Generate(q *schemas.Question) schemas.Answer {
	if q.Scale {
		return g.scaleAnswer(q)
	}

	switch q.Type {
	case schemas.TypeShortText, schemas.TypeParagraph, schemas.TypeUnknown:
		return schemas.Answer{Kind: schemas.AnswerText, Text: g.textFor(q.Title)}

	case schemas.TypeSingleChoice:
		if len(q.Options) == 0 {
			return schemas.Answer{Kind: schemas.AnswerNone}
		}
		return schemas.Answer{Kind: schemas.AnswerIndex, Index: g.faker.Number(0, len(q.Options)-1)}

	case schemas.TypeMultiChoice:
		return g.multiChoiceAnswer(q)

	case schemas.TypeDropdown:
		return g.dropdownAnswer(q)

	case schemas.TypeDate:
		return schemas.Answer{Kind: schemas.AnswerDate, Text: time.Now().Format("2006-01-02")}

	case schemas.TypeTime:
		return schemas.Answer{Kind: schemas.AnswerTime, Text: "12:00"}
	}

	return schemas.Answer{Kind: schemas.AnswerNone}
}

// scaleAnswer picks a position on a bounded numeric rating. When the options
// were visible at scan time the pick is restricted to the numeric labels;
// otherwise the position is synthetic and resolved against the live page.
// A multi-choice rating ticks exactly one box, keeping the payload kind
// valid for the question type.
func (g *Generator) scaleAnswer(q *schemas.Question) schemas.Answer {
	idxs := numericOptionIndexes(q.Options)
	if len(idxs) == 0 {
		for i := range q.Options {
			idxs = append(idxs, i)
		}
	}

	if q.Type == schemas.TypeMultiChoice {
		if len(idxs) == 0 {
			return schemas.Answer{Kind: schemas.AnswerNone}
		}
		pick := idxs[g.faker.Number(0, len(idxs)-1)]
		return schemas.Answer{Kind: schemas.AnswerIndexes, Indexes: []int{pick}}
	}
	if len(idxs) > 0 {
		return schemas.Answer{Kind: schemas.AnswerIndex, Index: idxs[g.faker.Number(0, len(idxs)-1)]}
	}
	return schemas.Answer{Kind: schemas.AnswerIndex, Index: g.faker.Number(0, scaleFallbackSpan-1)}
}

// numericOptionIndexes returns the positions of purely numeric option labels.
func numericOptionIndexes(options []string) []int {
	numeric := make(map[string]bool)
	for _, n := range scan.NumericOptions(options) {
		numeric[n] = true
	}
	var idxs []int
	for i, opt := range options {
		if numeric[strings.TrimSpace(opt)] {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

func (g *Generator) multiChoiceAnswer(q *schemas.Question) schemas.Answer {
	n := len(q.Options)
	if n == 0 {
		return schemas.Answer{Kind: schemas.AnswerNone}
	}
	limit := maxMultiSelections
	if n < limit {
		limit = n
	}
	count := g.faker.Number(1, limit)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	g.faker.ShuffleInts(perm)
	picked := perm[:count]
	sort.Ints(picked)
	return schemas.Answer{Kind: schemas.AnswerIndexes, Indexes: picked}
}

// dropdownAnswer picks a uniformly random entry; every option, including a
// leading placeholder, is a valid target.
func (g *Generator) dropdownAnswer(q *schemas.Question) schemas.Answer {
	if len(q.Options) == 0 {
		return schemas.Answer{Kind: schemas.AnswerNone}
	}
	return schemas.Answer{Kind: schemas.AnswerIndex, Index: g.faker.Number(0, len(q.Options)-1)}
}

// textFor maps the question label to a field-appropriate fake value.
func (g *Generator) textFor(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "email") || strings.Contains(lower, "e-mail"):
		return g.faker.Email()
	case strings.Contains(lower, "name"):
		return g.faker.Name()
	case strings.Contains(lower, "phone") || strings.Contains(lower, "mobile"):
		return g.faker.Phone()
	case strings.Contains(lower, "age"):
		return strconv.Itoa(g.faker.Number(18, 60))
	case strings.Contains(lower, "city"):
		return g.faker.City()
	case strings.Contains(lower, "country"):
		return g.faker.Country()
	}
	return g.loremWords(g.faker.Number(2, 5))
}

func (g *Generator) loremWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = g.faker.Word()
	}
	return strings.Join(words, " ")
}
