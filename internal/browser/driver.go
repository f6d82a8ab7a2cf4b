// File: internal/browser/driver.go
// Description: chromedp-backed implementation of the engine's Driver
// boundary. One Driver is one browser tab; the engine calls it strictly
// sequentially, so no internal locking is needed.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/config"
)

// webdriverStealthScript hides the automation marker before any page script
// runs. Some form frontends degrade or block when navigator.webdriver is set.
const webdriverStealthScript = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// Driver drives a single Chrome tab through the DevTools protocol.
type Driver struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	logger      *zap.Logger
}

var _ schemas.Driver = (*Driver)(nil)

// NewDriver launches a browser process and opens the tab the engine will
// use for its whole lifetime.
func NewDriver(parent context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Driver, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.NoSandbox,
	)
	for _, arg := range cfg.Args {
		name, value := splitArg(arg)
		opts = append(opts, chromedp.Flag(name, value))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	d := &Driver{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		logger:      logger.Named("browser"),
	}

	err := chromedp.Run(tabCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(webdriverStealthScript).Do(ctx)
			return err
		}),
		chromedp.EmulateViewport(int64(cfg.ViewportWidth), int64(cfg.ViewportHeight)),
	)
	if err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	d.logger.Info("Browser session started",
		zap.Bool("headless", cfg.Headless),
		zap.Int("viewport_width", cfg.ViewportWidth),
		zap.Int("viewport_height", cfg.ViewportHeight),
	)
	return d, nil
}

// splitArg parses an extra command-line flag of the form "--name=value" or
// "--name" into a chromedp flag pair.
func splitArg(arg string) (string, any) {
	trimmed := strings.TrimLeft(arg, "-")
	if name, value, found := strings.Cut(trimmed, "="); found {
		return name, value
	}
	return trimmed, true
}

// Navigate implements schemas.Driver. The timeout bounds document load and
// body readiness only.
func (d *Driver) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	navCtx, cancel := context.WithTimeout(d.tabCtx, timeout)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	d.logger.Debug("Navigation complete", zap.String("url", url))
	return nil
}

// Evaluate implements schemas.Driver.
func (d *Driver) Evaluate(ctx context.Context, expr string, res any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(d.tabCtx, chromedp.Evaluate(expr, res)); err != nil {
		return fmt.Errorf("script evaluation failed: %w", err)
	}
	return nil
}

// TypeKey implements schemas.Driver. The key event goes to whatever element
// currently holds focus; the delay is held after dispatch.
func (d *Driver) TypeKey(ctx context.Context, ch rune, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(d.tabCtx, chromedp.KeyEvent(string(ch))); err != nil {
		return fmt.Errorf("failed to dispatch key event: %w", err)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Click implements schemas.Driver.
func (d *Driver) Click(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := chromedp.Run(d.tabCtx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("failed to click %q: %w", selector, err)
	}
	return nil
}

// SelectOption implements schemas.Driver. It drives a native <select> by
// visible option text and fires a change event so listeners observe it.
func (d *Driver) SelectOption(ctx context.Context, selector, optionText string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sel, _ := json.Marshal(selector)
	want, _ := json.Marshal(optionText)
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el || el.tagName !== 'SELECT') { return false; }
		const opt = Array.from(el.options).find(o => o.text.trim() === %s.trim());
		if (!opt) { return false; }
		el.value = opt.value;
		el.dispatchEvent(new Event('change', { bubbles: true }));
		return true;
	})()`, sel, want)

	var ok bool
	if err := chromedp.Run(d.tabCtx, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("native select failed for %q: %w", selector, err)
	}
	if !ok {
		return fmt.Errorf("no option %q found in %q", optionText, selector)
	}
	return nil
}

// Snapshot implements schemas.Driver.
func (d *Driver) Snapshot(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var outerHTML string
	err := chromedp.Run(d.tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		root, err := dom.GetDocument().Do(ctx)
		if err != nil {
			return err
		}
		outerHTML, err = dom.GetOuterHTML().WithNodeID(root.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return "", fmt.Errorf("failed to capture document snapshot: %w", err)
	}
	return outerHTML, nil
}

// Close implements schemas.Driver. Safe to call once; the engine owns the
// Driver and closes it exactly once on shutdown.
func (d *Driver) Close(_ context.Context) error {
	err := chromedp.Cancel(d.tabCtx)
	d.tabCancel()
	d.allocCancel()
	if err != nil {
		return fmt.Errorf("failed to shut down browser cleanly: %w", err)
	}
	d.logger.Info("Browser session closed")
	return nil
}
