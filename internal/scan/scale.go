// File: internal/scan/scale.go
package scan

import (
	"regexp"
	"strings"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
)

var (
	numericOption = regexp.MustCompile(`^\d+$`)
	// Matches "1", "5", and hyphenated ranges like "1-5" or "1 – 5".
	numericRangeOption = regexp.MustCompile(`^\d+(\s*[-–]\s*\d+)?$`)
)

// scaleTitleKeywords flag a bounded numeric rating regardless of the
// question's structural type.
var scaleTitleKeywords = []string{"scale", "rate", "1-", "1 to"}

// IsScaleQuestion reports whether the question should be treated as a
// bounded numeric rating. The flag fires when the title contains a rating
// keyword, or when every option label is a numeric token or a numeric
// range.
func IsScaleQuestion(q *schemas.Question) bool {
	if q == nil {
		return false
	}
	title := strings.ToLower(q.Title)
	for _, kw := range scaleTitleKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	if len(q.Options) == 0 {
		return false
	}
	if allMatch(q.Options, numericRangeOption) {
		return true
	}
	return allMatch(q.Options, numericOption)
}

func allMatch(options []string, re *regexp.Regexp) bool {
	for _, o := range options {
		if !re.MatchString(strings.TrimSpace(o)) {
			return false
		}
	}
	return true
}

// NumericOptions returns the trimmed, purely numeric option labels of a
// question. The answer generator restricts scale selections to these.
func NumericOptions(options []string) []string {
	var out []string
	for _, o := range options {
		trimmed := strings.TrimSpace(o)
		if numericOption.MatchString(trimmed) {
			out = append(out, trimmed)
		}
	}
	return out
}
