// File: internal/answer/generator_test.go
package answer

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
)

func seededGenerator(seed uint64) *Generator {
	return NewGeneratorWithSeed(zap.NewNop(), seed)
}

func TestGenerateTextHeuristics(t *testing.T) {
	g := seededGenerator(7)

	cases := []struct {
		name    string
		title   string
		pattern string
	}{
		{"email", "Your email address", `^\S+@\S+\.\S+$`},
		{"phone", "Phone number", `^\d{10}$`},
		{"age", "What is your age?", `^\d{2}$`},
		{"fallback words", "Anything else?", `^\S+( \S+){1,4}$`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &schemas.Question{Type: schemas.TypeShortText, Title: tc.title}
			a := g.Generate(q)
			require.Equal(t, schemas.AnswerText, a.Kind)
			assert.Regexp(t, regexp.MustCompile(tc.pattern), a.Text)
			assert.True(t, a.CompatibleWith(q.Type))
		})
	}

	t.Run("age in range", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			a := g.Generate(&schemas.Question{Type: schemas.TypeShortText, Title: "Age"})
			v, err := strconv.Atoi(a.Text)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 18)
			assert.LessOrEqual(t, v, 60)
		}
	})

	t.Run("name is non-empty", func(t *testing.T) {
		a := g.Generate(&schemas.Question{Type: schemas.TypeShortText, Title: "Full name"})
		require.Equal(t, schemas.AnswerText, a.Kind)
		assert.NotEmpty(t, a.Text)
	})
}

func TestGenerateSingleChoice(t *testing.T) {
	g := seededGenerator(11)
	q := &schemas.Question{Type: schemas.TypeSingleChoice, Options: []string{"A", "B", "C"}}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndex, a.Kind)
		require.GreaterOrEqual(t, a.Index, 0)
		require.Less(t, a.Index, len(q.Options))
		seen[a.Index] = true
	}
	assert.Len(t, seen, 3, "all options should be reachable")
}

func TestGenerateSingleChoiceNoOptions(t *testing.T) {
	g := seededGenerator(1)
	a := g.Generate(&schemas.Question{Type: schemas.TypeSingleChoice})
	assert.Equal(t, schemas.AnswerNone, a.Kind)
}

func TestGenerateMultiChoice(t *testing.T) {
	g := seededGenerator(3)
	q := &schemas.Question{Type: schemas.TypeMultiChoice, Options: []string{"A", "B", "C", "D"}}

	for i := 0; i < 200; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndexes, a.Kind)
		require.NotEmpty(t, a.Indexes)
		require.LessOrEqual(t, len(a.Indexes), 2)

		seen := map[int]bool{}
		last := -1
		for _, idx := range a.Indexes {
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, len(q.Options))
			require.False(t, seen[idx], "indexes must be distinct")
			require.Greater(t, idx, last, "indexes must be sorted")
			seen[idx] = true
			last = idx
		}
	}
}

func TestGenerateMultiChoiceSingleOption(t *testing.T) {
	g := seededGenerator(5)
	a := g.Generate(&schemas.Question{Type: schemas.TypeMultiChoice, Options: []string{"Only"}})
	require.Equal(t, schemas.AnswerIndexes, a.Kind)
	assert.Equal(t, []int{0}, a.Indexes)
}

func TestGenerateDropdownUniformPick(t *testing.T) {
	g := seededGenerator(9)
	q := &schemas.Question{Type: schemas.TypeDropdown, Options: []string{"Choose", "France", "Japan"}}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndex, a.Kind)
		require.GreaterOrEqual(t, a.Index, 0)
		require.Less(t, a.Index, len(q.Options))
		seen[a.Index] = true
	}
	assert.Len(t, seen, 3, "every entry, including the first, should be reachable")
}

func TestGenerateDateAndTime(t *testing.T) {
	g := seededGenerator(2)

	a := g.Generate(&schemas.Question{Type: schemas.TypeDate})
	require.Equal(t, schemas.AnswerDate, a.Kind)
	assert.Equal(t, time.Now().Format("2006-01-02"), a.Text)

	a = g.Generate(&schemas.Question{Type: schemas.TypeTime})
	require.Equal(t, schemas.AnswerTime, a.Kind)
	assert.Equal(t, "12:00", a.Text)
}

func TestGenerateScaleRestrictsToNumericOptions(t *testing.T) {
	g := seededGenerator(13)
	q := &schemas.Question{
		Type:    schemas.TypeSingleChoice,
		Title:   "Rate our service",
		Options: []string{"N/A", "1", "2", "3"},
		Scale:   true,
	}

	for i := 0; i < 100; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndex, a.Kind)
		assert.GreaterOrEqual(t, a.Index, 1, "non-numeric option must never be picked")
		assert.Less(t, a.Index, len(q.Options))
	}
}

func TestGenerateScaleMultiChoiceTicksOneNumericBox(t *testing.T) {
	g := seededGenerator(19)
	q := &schemas.Question{
		Type:    schemas.TypeMultiChoice,
		Title:   "How many stars?",
		Options: []string{"1", "2", "3", "4", "5"},
		Scale:   true,
	}

	for i := 0; i < 100; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndexes, a.Kind)
		require.Len(t, a.Indexes, 1)
		assert.GreaterOrEqual(t, a.Indexes[0], 0)
		assert.Less(t, a.Indexes[0], len(q.Options))
		assert.True(t, a.CompatibleWith(q.Type))
	}
}

func TestGenerateScaleMultiChoiceSkipsNonNumericBoxes(t *testing.T) {
	g := seededGenerator(23)
	q := &schemas.Question{
		Type:    schemas.TypeMultiChoice,
		Title:   "Rate the features",
		Options: []string{"N/A", "1", "2", "3"},
		Scale:   true,
	}

	for i := 0; i < 100; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndexes, a.Kind)
		require.Len(t, a.Indexes, 1)
		assert.GreaterOrEqual(t, a.Indexes[0], 1, "non-numeric option must never be picked")
	}
}

func TestGenerateScaleWithoutVisibleOptions(t *testing.T) {
	g := seededGenerator(17)
	q := &schemas.Question{Type: schemas.TypeShortText, Title: "On a scale of 1 to 5", Scale: true}

	for i := 0; i < 100; i++ {
		a := g.Generate(q)
		require.Equal(t, schemas.AnswerIndex, a.Kind)
		assert.GreaterOrEqual(t, a.Index, 0)
		assert.Less(t, a.Index, scaleFallbackSpan)
		assert.True(t, a.CompatibleWith(q.Type))
	}
}

func TestGeneratorSeedReplay(t *testing.T) {
	q := &schemas.Question{Type: schemas.TypeShortText, Title: "Anything else?"}

	first := seededGenerator(99).Generate(q)
	second := seededGenerator(99).Generate(q)
	assert.Equal(t, first, second)
}
