// File: internal/pacing/pacing_test.go
package pacing

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aehnz/Auto-GoogleForms-Filler/internal/config"
)

func testPacingConfig() config.PacingConfig {
	cfg := config.NewDefaultConfig()
	return cfg.Pacing
}

func TestKeyDelayWithinBounds(t *testing.T) {
	typing := config.TypingConfig{MinDelay: 30 * time.Millisecond, MaxDelay: 140 * time.Millisecond}
	p := NewWithRand(testPacingConfig(), typing, rand.New(rand.NewSource(1)))

	for i := 0; i < 1000; i++ {
		d := p.KeyDelay()
		assert.GreaterOrEqual(t, d, typing.MinDelay)
		assert.LessOrEqual(t, d, typing.MaxDelay)
	}
}

func TestDisabledPacerSkipsAllDelays(t *testing.T) {
	cfg := testPacingConfig()
	cfg.Disabled = true
	p := NewWithRand(cfg, config.TypingConfig{MinDelay: time.Second, MaxDelay: 2 * time.Second}, rand.New(rand.NewSource(1)))

	assert.Equal(t, time.Duration(0), p.KeyDelay())

	start := time.Now()
	require.NoError(t, p.Pause(context.Background(), PassGap))
	assert.Less(t, time.Since(start), 50*time.Millisecond, "disabled pacer must not sleep")
}

func TestPauseRespectsCancellation(t *testing.T) {
	cfg := testPacingConfig()
	cfg.PassGapMin = 5 * time.Second
	cfg.PassGapMax = 10 * time.Second
	p := NewWithRand(cfg, config.TypingConfig{}, rand.New(rand.NewSource(1)))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := p.Pause(ctx, PassGap)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSampleCoversWindow(t *testing.T) {
	cfg := testPacingConfig()
	p := NewWithRand(cfg, config.TypingConfig{}, rand.New(rand.NewSource(42)))

	min, max := p.window(PreAction)
	seenLow, seenHigh := false, false
	mid := min + (max-min)/2
	for i := 0; i < 500; i++ {
		d := p.sample(min, max)
		require.GreaterOrEqual(t, d, min)
		require.LessOrEqual(t, d, max)
		if d < mid {
			seenLow = true
		} else {
			seenHigh = true
		}
	}
	assert.True(t, seenLow && seenHigh, "sampling should spread across the window")
}
