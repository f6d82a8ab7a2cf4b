// File: api/schemas/interfaces.go
// Description: Contracts between the engine and its collaborators. The core
// depends only on these interfaces, never on a concrete browser backend.
package schemas

import (
	"context"
	"time"
)

// Driver is the browser collaborator boundary. The engine owns exactly one
// Driver (one tab) for its whole lifetime and calls it strictly sequentially.
type Driver interface {
	// Navigate loads the target document and waits for it to be ready.
	// The timeout bounds the navigation only, not later interactions.
	Navigate(ctx context.Context, url string, timeout time.Duration) error

	// Evaluate runs a JavaScript expression in the page and unmarshals the
	// result into res. Pass nil to discard the result.
	Evaluate(ctx context.Context, expr string, res any) error

	// TypeKey sends one character to the focused element, then holds for
	// the given delay to model typing cadence.
	TypeKey(ctx context.Context, ch rune, delay time.Duration) error

	// Click dispatches a click on the first node matching the selector.
	Click(ctx context.Context, selector string) error

	// SelectOption performs a native selection on a <select> node by the
	// visible text of the option.
	SelectOption(ctx context.Context, selector, optionText string) error

	// Snapshot returns the serialized outer HTML of the current document.
	Snapshot(ctx context.Context) (string, error)

	// Close releases the browser session.
	Close(ctx context.Context) error
}
