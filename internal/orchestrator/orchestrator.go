// File: internal/orchestrator/orchestrator.go
// Description: Drives the scan, fill, submit, reset cycle for the configured
// number of passes. The orchestrator owns one Driver for its whole lifetime
// and calls every collaborator strictly sequentially.
package orchestrator

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/aehnz/Auto-GoogleForms-Filler/api/schemas"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/answer"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/config"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/executor"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/pacing"
	"github.com/aehnz/Auto-GoogleForms-Filler/internal/scan"
)

// State labels the engine's position in the pass cycle.
type State string

const (
	StateIdle                 State = "idle"
	StateScanning             State = "scanning"
	StateFilling              State = "filling"
	StateSubmitting           State = "submitting"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateResetting            State = "resetting"
	StateFailed               State = "failed"
)

// Orchestrator runs the outer pass loop.
type Orchestrator struct {
	cfg       *config.Config
	driver    schemas.Driver
	scanner   *scan.Scanner
	generator *answer.Generator
	executor  *executor.Executor
	pacer     pacing.Pacer
	logger    *zap.Logger
	state     atomic.Value
}

// New wires an Orchestrator from its collaborators.
func New(cfg *config.Config, driver schemas.Driver, pacer pacing.Pacer, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		cfg:       cfg,
		driver:    driver,
		scanner:   scan.NewScanner(logger),
		generator: answer.NewGenerator(logger),
		executor:  executor.New(driver, pacer, logger),
		pacer:     pacer,
		logger:    logger.Named("orchestrator"),
	}
	o.state.Store(StateIdle)
	return o
}

// State returns the current engine state.
func (o *Orchestrator) State() State {
	return o.state.Load().(State)
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(s)
	o.logger.Debug("State transition", zap.String("state", string(s)))
}

// Run executes the configured number of passes. A failed pass is recorded
// and the loop moves on; only context cancellation stops the run early. The
// returned slice always holds one result per attempted pass.
func (o *Orchestrator) Run(ctx context.Context) ([]schemas.PassResult, error) {
	total := o.cfg.Form.Passes
	o.logger.Info("Starting run",
		zap.String("url", o.cfg.Form.URL),
		zap.Int("passes", total),
	)

	results := make([]schemas.PassResult, 0, total)
	var filledTotal, submittedTotal int

	for pass := 1; pass <= total; pass++ {
		if err := ctx.Err(); err != nil {
			o.setState(StateIdle)
			return results, fmt.Errorf("run aborted before pass %d: %w", pass, err)
		}

		result := o.runPass(ctx, pass)
		results = append(results, result)
		filledTotal += result.Filled
		if result.Submitted {
			submittedTotal++
		}

		if result.Err != nil {
			o.setState(StateFailed)
			if ctx.Err() != nil {
				o.setState(StateIdle)
				return results, fmt.Errorf("run aborted during pass %d: %w", pass, ctx.Err())
			}
			o.logger.Warn("Pass failed",
				zap.Int("pass", pass),
				zap.Error(result.Err),
			)
		} else {
			o.logger.Info("Pass complete",
				zap.Int("pass", pass),
				zap.Int("questions", result.Questions),
				zap.Int("filled", result.Filled),
				zap.Bool("submitted", result.Submitted),
			)
		}

		if pass < total {
			if err := o.pacer.Pause(ctx, pacing.PassGap); err != nil {
				o.setState(StateIdle)
				return results, fmt.Errorf("run aborted between passes: %w", err)
			}
		}
	}

	o.setState(StateIdle)
	o.logger.Info("Run finished",
		zap.Int("passes", len(results)),
		zap.Int("submitted", submittedTotal),
		zap.Int("answers_filled", filledTotal),
	)
	return results, nil
}

// runPass executes one full scan-fill-submit cycle against a fresh page
// load. Each pass re-navigates, so no state leaks between passes.
func (o *Orchestrator) runPass(ctx context.Context, pass int) schemas.PassResult {
	result := schemas.PassResult{Pass: pass}

	o.setState(StateScanning)
	if err := o.driver.Navigate(ctx, o.cfg.Form.URL, o.cfg.Network.NavigationTimeout); err != nil {
		result.Err = fmt.Errorf("navigation failed: %w", err)
		return result
	}
	if err := o.pacer.Pause(ctx, pacing.PostNavigate); err != nil {
		result.Err = err
		return result
	}

	snapshot, err := o.driver.Snapshot(ctx)
	if err != nil {
		result.Err = fmt.Errorf("snapshot failed: %w", err)
		return result
	}
	questions, err := o.scanner.Scan(snapshot)
	if err != nil {
		result.Err = fmt.Errorf("scan failed: %w", err)
		return result
	}
	result.Questions = len(questions)
	if len(questions) == 0 {
		result.Err = fmt.Errorf("no questions found in document")
		return result
	}

	o.setState(StateFilling)
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}
		a := o.generator.Generate(q)
		if err := o.executor.Apply(ctx, q, a); err != nil {
			// One broken question must not sink the pass.
			o.logger.Warn("Failed to answer question",
				zap.Int("pass", pass),
				zap.Int("question", q.Index),
				zap.String("title", q.Title),
				zap.Error(err),
			)
			continue
		}
		if a.Kind != schemas.AnswerNone {
			result.Filled++
		}
	}

	o.setState(StateSubmitting)
	if err := o.pacer.Pause(ctx, pacing.PreSubmit); err != nil {
		result.Err = err
		return result
	}
	var submitted bool
	if err := o.driver.Evaluate(ctx, submitScript, &submitted); err != nil {
		result.Err = fmt.Errorf("submit failed: %w", err)
		return result
	}
	if !submitted {
		result.Err = fmt.Errorf("no submit control found")
		return result
	}
	result.Submitted = true

	o.setState(StateAwaitingConfirmation)
	if err := o.pacer.Pause(ctx, pacing.ConfirmWait); err != nil {
		result.Err = err
		return result
	}

	// The fill-again link is a shortcut only; the next pass re-navigates
	// regardless, so a missing link is not an error.
	o.setState(StateResetting)
	var reset bool
	if err := o.driver.Evaluate(ctx, resetScript, &reset); err != nil {
		o.logger.Debug("Reset link lookup failed", zap.Int("pass", pass), zap.Error(err))
	} else if !reset {
		o.logger.Debug("No fill-again link on confirmation page", zap.Int("pass", pass))
	}

	return result
}
