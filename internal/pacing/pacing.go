// File: internal/pacing/pacing.go
// Description: Central provider for every randomized delay in the engine.
// Delays shape the temporal pattern of actions against the live document;
// they are not used for correctness. Bounds come from configuration so tests
// can disable them entirely.
package pacing

import (
	"context"
	"math/rand"
	"time"

	"github.com/aehnz/Auto-GoogleForms-Filler/internal/config"
)

// Kind names one pacing window from the configuration.
type Kind int

const (
	// PostNavigate is the settle delay after the document loads, before scanning.
	PostNavigate Kind = iota
	// PreAction precedes every per-question fill action.
	PreAction
	// PostClick follows a single-choice or dropdown option click.
	PostClick
	// MultiClick separates consecutive clicks of a multi-choice selection.
	MultiClick
	// PreSubmit precedes the submit click.
	PreSubmit
	// ConfirmWait allows a post-submit confirmation state to render.
	ConfirmWait
	// PassGap separates independent passes.
	PassGap
)

// Pacer yields randomized, context-aware pauses and typing delays.
type Pacer interface {
	// Pause suspends for a duration sampled uniformly from the window
	// named by kind. Returns early with the context error on cancellation.
	Pause(ctx context.Context, kind Kind) error
	// KeyDelay returns one sampled per-character typing delay.
	KeyDelay() time.Duration
}

// Provider is the production Pacer. It is not safe for concurrent use; the
// engine is strictly sequential so it never needs to be.
type Provider struct {
	cfg    config.PacingConfig
	typing config.TypingConfig
	rng    *rand.Rand
}

// New creates a Provider with its own time-seeded randomness source.
func New(cfg config.PacingConfig, typing config.TypingConfig) *Provider {
	return NewWithRand(cfg, typing, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a Provider with an injected randomness source, for
// deterministic tests.
func NewWithRand(cfg config.PacingConfig, typing config.TypingConfig, rng *rand.Rand) *Provider {
	return &Provider{cfg: cfg, typing: typing, rng: rng}
}

func (p *Provider) window(kind Kind) (time.Duration, time.Duration) {
	c := p.cfg
	switch kind {
	case PostNavigate:
		return c.PostNavigateMin, c.PostNavigateMax
	case PreAction:
		return c.PreActionMin, c.PreActionMax
	case PostClick:
		return c.PostClickMin, c.PostClickMax
	case MultiClick:
		return c.MultiClickMin, c.MultiClickMax
	case PreSubmit:
		return c.PreSubmitMin, c.PreSubmitMax
	case ConfirmWait:
		return c.ConfirmWaitMin, c.ConfirmWaitMax
	case PassGap:
		return c.PassGapMin, c.PassGapMax
	}
	return 0, 0
}

// sample draws uniformly from [min,max].
func (p *Provider) sample(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(p.rng.Int63n(int64(max-min)+1))
}

// Pause implements Pacer.
func (p *Provider) Pause(ctx context.Context, kind Kind) error {
	if p.cfg.Disabled {
		return ctx.Err()
	}
	min, max := p.window(kind)
	d := p.sample(min, max)
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// KeyDelay implements Pacer.
func (p *Provider) KeyDelay() time.Duration {
	if p.cfg.Disabled {
		return 0
	}
	return p.sample(p.typing.MinDelay, p.typing.MaxDelay)
}
