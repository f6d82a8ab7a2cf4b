// File: internal/executor/strategies_test.go
package executor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyOrders(t *testing.T) {
	radios := radioStrategies()
	require.Len(t, radios, 3)
	assert.Equal(t, "aria-role", radios[0].Name)
	assert.Equal(t, []string{`[role="radio"]`}, radios[0].Selectors)
	assert.Equal(t, "labeled-child", radios[2].Name)

	checkboxes := checkboxStrategies()
	require.Len(t, checkboxes, 3)
	assert.Equal(t, []string{`[role="checkbox"]`}, checkboxes[0].Selectors)
}

func TestClickNthScriptRejectsOutOfRangeIndex(t *testing.T) {
	script := clickNthScript("#c", []string{"label"}, 7)
	assert.Contains(t, script, "if (7 >= nodes.length) { return false; }",
		"an index past the matched set must fail, not hit the last node")
	assert.NotContains(t, script, "Math.min")
}

func TestScriptsEscapeEmbeddedStrings(t *testing.T) {
	script := clickByTextScript(`#c "x"`, []string{"label"}, `say "hi"`)
	assert.Contains(t, script, `"#c \"x\""`)
	assert.Contains(t, script, `"say \"hi\""`)

	script = setValueScript("", "#c", `input[type="date"]`, "2026-08-30")
	assert.Contains(t, script, `"input[type=\"date\"]"`)
	assert.False(t, strings.Contains(script, "%!"), "all format verbs must be consumed")
}
