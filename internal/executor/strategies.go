// File: internal/executor/strategies.go
// Description: Locator strategies and the page-side scripts that drive them.
// Each strategy is data (a name plus an ordered selector list); the executor
// walks the list until one resolves, so adding a markup family is a one-line
// change.
package executor

import (
	"encoding/json"
	"fmt"

	"github.com/aehnz/Auto-GoogleForms-Filler/internal/scan"
)

// OptionStrategy is one way of locating the clickable options of a choice
// question inside its container.
type OptionStrategy struct {
	Name      string
	Selectors []string
}

// radioStrategies returns the lookup order for single-choice options: the
// accessibility role first, then the known style-class families, then plain
// labels as a last resort.
func radioStrategies() []OptionStrategy {
	return []OptionStrategy{
		{Name: "aria-role", Selectors: []string{`[role="radio"]`}},
		{Name: "style-classes", Selectors: classSelectors(scan.RadioOptionClasses())},
		{Name: "labeled-child", Selectors: []string{"label"}},
	}
}

// checkboxStrategies mirrors radioStrategies for multi-choice options.
func checkboxStrategies() []OptionStrategy {
	return []OptionStrategy{
		{Name: "aria-role", Selectors: []string{`[role="checkbox"]`}},
		{Name: "style-classes", Selectors: classSelectors(scan.CheckboxOptionClasses())},
		{Name: "labeled-child", Selectors: []string{"label"}},
	}
}

// dropdownSelectors locate the entries of an expanded listbox, falling back
// to native <option> nodes.
func dropdownSelectors() []string {
	return []string{`[role="option"]`, "option"}
}

func classSelectors(classes []string) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = "." + c
	}
	return out
}

// jsString encodes a Go string as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// jsStrings encodes a Go string slice as a JavaScript array literal.
func jsStrings(ss []string) string {
	if ss == nil {
		ss = []string{}
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

// clickNthScript clicks the index-th node matched by the first selector that
// yields any nodes within the container. An index past the matched set
// evaluates to false so the caller's by-text fallback can run.
func clickNthScript(container string, selectors []string, index int) string {
	return fmt.Sprintf(`(() => {
		const root = document.querySelector(%s);
		if (!root) { return false; }
		for (const sel of %s) {
			const nodes = root.querySelectorAll(sel);
			if (nodes.length > 0) {
				if (%d >= nodes.length) { return false; }
				nodes[%d].click();
				return true;
			}
		}
		return false;
	})()`, jsString(container), jsStrings(selectors), index, index)
}

// clickByTextScript clicks the option whose visible text matches the wanted
// label, exact match first, then substring. Evaluates to true on a click.
func clickByTextScript(container string, selectors []string, label string) string {
	return fmt.Sprintf(`(() => {
		const root = document.querySelector(%s);
		if (!root) { return false; }
		const want = %s.trim().toLowerCase();
		for (const sel of %s) {
			const nodes = Array.from(root.querySelectorAll(sel));
			const text = n => (n.innerText || n.textContent || '').trim().toLowerCase();
			let hit = nodes.find(n => text(n) === want);
			if (!hit) { hit = nodes.find(n => text(n).includes(want)); }
			if (hit) { hit.click(); return true; }
		}
		return false;
	})()`, jsString(container), jsString(label), jsStrings(selectors))
}

// clickScalePositionScript clicks the position-th value radio of a linear
// scale widget, wrapping the position to the live control count.
func clickScalePositionScript(container string, position int) string {
	return fmt.Sprintf(`(() => {
		const root = %s ? document.querySelector(%s) : document;
		if (!root) { return false; }
		const nodes = root.querySelectorAll('div[role="radio"][data-value]');
		if (nodes.length === 0) { return false; }
		nodes[%d %% nodes.length].click();
		return true;
	})()`, jsString(container), jsString(container), position)
}

// focusInputScript focuses the question's input, preferring the recorded
// locator and falling back to the first empty text-entry element within the
// container. Evaluates to true when an element received focus.
func focusInputScript(inputSel, container string) string {
	return fmt.Sprintf(`(() => {
		let el = %s ? document.querySelector(%s) : null;
		if (!el) {
			const root = %s ? document.querySelector(%s) : document;
			if (!root) { return false; }
			const candidates = root.querySelectorAll(
				'input[type="text"], input[type="email"], input[type="tel"], input[type="number"], textarea, div[contenteditable="true"]');
			el = Array.from(candidates).find(n => !n.value);
		}
		if (!el) { return false; }
		el.focus();
		if (typeof el.click === 'function') { el.click(); }
		return true;
	})()`, jsString(inputSel), jsString(inputSel), jsString(container), jsString(container))
}

// setValueScript assigns a value directly and fires input and change events
// so framework listeners observe the edit. Used for date and time inputs and
// as the typing fallback.
func setValueScript(inputSel, container, typeFilter, value string) string {
	return fmt.Sprintf(`(() => {
		let el = %s ? document.querySelector(%s) : null;
		if (!el) {
			const root = %s ? document.querySelector(%s) : document;
			if (root) { el = root.querySelector(%s); }
		}
		if (!el) { return false; }
		el.value = %s;
		el.dispatchEvent(new Event('input', { bubbles: true }));
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, jsString(inputSel), jsString(inputSel), jsString(container), jsString(container),
		jsString(typeFilter), jsString(value))
}
