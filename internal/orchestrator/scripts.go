// File: internal/orchestrator/scripts.go
package orchestrator

// submitScript clicks the first submit-like control. Styled button divs and
// spans are tried before the native form submit, matching how these forms
// render their primary action.
const submitScript = `(() => {
	const re = /submit|send/i;
	const candidates = document.querySelectorAll('div[role="button"], button, span');
	for (const el of candidates) {
		const text = (el.innerText || el.textContent || '').trim();
		if (text && re.test(text)) { el.click(); return true; }
	}
	const native = document.querySelector('form [type="submit"]');
	if (native) { native.click(); return true; }
	return false;
})()`

// resetScript clicks the confirmation page's fill-again link when one is
// offered. Evaluates to false when the page has no such link.
const resetScript = `(() => {
	const re = /submit another response|respond again|another response|submit another/i;
	const candidates = document.querySelectorAll('a, div[role="button"], span, button');
	for (const el of candidates) {
		const text = (el.innerText || el.textContent || '').trim();
		if (text && re.test(text)) { el.click(); return true; }
	}
	return false;
})()`
