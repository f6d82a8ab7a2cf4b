// File: internal/executor/executor.go
// Description: Applies one Answer to one live Question. All page mutation
// funnels through the Driver boundary, so the executor itself never touches
// a browser API.
package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/pacing"
)

// Executor drives input actions against the page.
type Executor struct {
	driver schemas.Driver
	pacer  pacing.Pacer
	logger *zap.Logger
}

// New creates an Executor.
func New(driver schemas.Driver, pacer pacing.Pacer, logger *zap.Logger) *Executor {
	return &Executor{driver: driver, pacer: pacer, logger: logger.Named("executor")}
}

// Apply performs the input actions for one question-answer pair. Failures
// affect only this question; the caller decides whether to continue.
func (e *Executor) Apply(ctx context.Context, q *schemas.Question, a schemas.Answer) error {
	if a.Kind == schemas.AnswerNone {
		e.logger.Debug("Skipping unanswerable question", zap.Int("index", q.Index), zap.String("title", q.Title))
		return nil
	}
	if !a.CompatibleWith(q.Type) {
		return fmt.Errorf("answer kind %q is not valid for question type %q", a.Kind, q.Type)
	}
	if err := e.pacer.Pause(ctx, pacing.PreAction); err != nil {
		return err
	}

	var err error
	switch a.Kind {
	case schemas.AnswerText:
		err = e.typeText(ctx, q, a.Text)
	case schemas.AnswerIndex:
		switch {
		case q.Scale && !q.Type.IsChoiceLike():
			err = e.clickScalePosition(ctx, q, a.Index)
		case q.Type == schemas.TypeDropdown:
			err = e.selectDropdown(ctx, q, a.Index)
		default:
			err = e.clickOption(ctx, q, radioStrategies(), a.Index)
		}
	case schemas.AnswerIndexes:
		err = e.clickOptions(ctx, q, a.Indexes)
	case schemas.AnswerDate:
		err = e.assignValue(ctx, q, "date", a.Text)
	case schemas.AnswerTime:
		err = e.assignValue(ctx, q, "time", a.Text)
	default:
		err = fmt.Errorf("unhandled answer kind %q", a.Kind)
	}
	if err != nil {
		return err
	}
	return e.pacer.Pause(ctx, pacing.PostClick)
}

// typeText focuses the question's input and types character by character
// with per-key cadence. If the focused element rejects key events, the value
// is assigned directly with synthetic events instead.
func (e *Executor) typeText(ctx context.Context, q *schemas.Question, text string) error {
	var focused bool
	if err := e.driver.Evaluate(ctx, focusInputScript(q.InputLocator, q.ContainerLocator), &focused); err != nil {
		return fmt.Errorf("failed to focus input for question %d: %w", q.Index, err)
	}
	if !focused {
		return fmt.Errorf("no focusable input found for question %d", q.Index)
	}

	for _, ch := range text {
		if err := e.driver.TypeKey(ctx, ch, e.pacer.KeyDelay()); err != nil {
			e.logger.Debug("Key dispatch failed, assigning value directly",
				zap.Int("index", q.Index), zap.Error(err))
			return e.assignText(ctx, q, text)
		}
	}
	return nil
}

func (e *Executor) assignText(ctx context.Context, q *schemas.Question, text string) error {
	var ok bool
	script := setValueScript(q.InputLocator, q.ContainerLocator, "input, textarea", text)
	if err := e.driver.Evaluate(ctx, script, &ok); err != nil {
		return fmt.Errorf("failed to assign text for question %d: %w", q.Index, err)
	}
	if !ok {
		return fmt.Errorf("no input element found for question %d", q.Index)
	}
	return nil
}

// clickOption walks the locator strategies in order and clicks the indexed
// option via the first strategy whose selectors resolve. When every indexed
// lookup misses it retries by visible label.
func (e *Executor) clickOption(ctx context.Context, q *schemas.Question, strategies []OptionStrategy, index int) error {
	for _, st := range strategies {
		var clicked bool
		if err := e.driver.Evaluate(ctx, clickNthScript(q.ContainerLocator, st.Selectors, index), &clicked); err != nil {
			return fmt.Errorf("option click failed for question %d: %w", q.Index, err)
		}
		if clicked {
			e.logger.Debug("Clicked option",
				zap.Int("index", q.Index), zap.Int("option", index), zap.String("strategy", st.Name))
			return nil
		}
	}

	if index >= 0 && index < len(q.Options) {
		label := q.Options[index]
		for _, st := range strategies {
			var clicked bool
			if err := e.driver.Evaluate(ctx, clickByTextScript(q.ContainerLocator, st.Selectors, label), &clicked); err != nil {
				return fmt.Errorf("option click failed for question %d: %w", q.Index, err)
			}
			if clicked {
				e.logger.Debug("Clicked option by label",
					zap.Int("index", q.Index), zap.String("label", label), zap.String("strategy", st.Name))
				return nil
			}
		}
	}
	return fmt.Errorf("no clickable option %d found for question %d", index, q.Index)
}

// clickOptions ticks each selected checkbox with a short pause between
// clicks so consecutive toggles do not land in the same frame.
func (e *Executor) clickOptions(ctx context.Context, q *schemas.Question, indexes []int) error {
	for i, idx := range indexes {
		if i > 0 {
			if err := e.pacer.Pause(ctx, pacing.MultiClick); err != nil {
				return err
			}
		}
		if err := e.clickOption(ctx, q, checkboxStrategies(), idx); err != nil {
			return err
		}
	}
	return nil
}

// selectDropdown clicks the indexed listbox entry, then falls back to a
// native select by option text. A native-select failure is logged and
// swallowed since custom listboxes have no select element to drive.
func (e *Executor) selectDropdown(ctx context.Context, q *schemas.Question, index int) error {
	var clicked bool
	if err := e.driver.Evaluate(ctx, clickNthScript(q.ContainerLocator, dropdownSelectors(), index), &clicked); err != nil {
		return fmt.Errorf("dropdown click failed for question %d: %w", q.Index, err)
	}
	if clicked {
		return nil
	}
	if index >= 0 && index < len(q.Options) && q.InputLocator != "" {
		if err := e.driver.SelectOption(ctx, q.InputLocator, q.Options[index]); err != nil {
			e.logger.Debug("Native select failed", zap.Int("index", q.Index), zap.Error(err))
		}
		return nil
	}
	return fmt.Errorf("no selectable entry %d found for question %d", index, q.Index)
}

func (e *Executor) clickScalePosition(ctx context.Context, q *schemas.Question, position int) error {
	var clicked bool
	if err := e.driver.Evaluate(ctx, clickScalePositionScript(q.ContainerLocator, position), &clicked); err != nil {
		return fmt.Errorf("scale click failed for question %d: %w", q.Index, err)
	}
	if !clicked {
		return fmt.Errorf("no scale controls found for question %d", q.Index)
	}
	return nil
}

// assignValue writes a date or time value directly; these input types do not
// accept per-key typing reliably.
func (e *Executor) assignValue(ctx context.Context, q *schemas.Question, inputType, value string) error {
	var ok bool
	script := setValueScript(q.InputLocator, q.ContainerLocator, fmt.Sprintf(`input[type=%q]`, inputType), value)
	if err := e.driver.Evaluate(ctx, script, &ok); err != nil {
		return fmt.Errorf("failed to set %s value for question %d: %w", inputType, q.Index, err)
	}
	if !ok {
		return fmt.Errorf("no %s input found for question %d", inputType, q.Index)
	}
	return nil
}
