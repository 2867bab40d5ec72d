package execution

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/winprep/internal/domain/compiler"
	"github.com/felixgeelhaar/winprep/internal/ports"
)

// Observer is notified as steps start and resolve.
type Observer interface {
	StepStarted(step compiler.Step)
	StepFinished(result StepResult)
}

// Runner executes a StepGraph strictly sequentially.
//
// For each step in stable topological order it skips the step if a
// dependency did not succeed, otherwise probes, applies when needed,
// refreshes the environment view, and probes again to verify.
// A failed critical step halts the run.
type Runner struct {
	env         ports.Environment
	prompter    ports.Prompter
	logger      ports.Logger
	observer    Observer
	retryPrompt bool
	now         func() time.Time
	newRunID    func() string
}

// NewRunner creates a Runner with no environment, prompter, or observer.
func NewRunner() *Runner {
	return &Runner{
		now:      time.Now,
		newRunID: func() string { return uuid.New().String() },
	}
}

func (r *Runner) clone() *Runner {
	c := *r
	return &c
}

// WithEnvironment returns a Runner that refreshes env after every apply.
func (r *Runner) WithEnvironment(env ports.Environment) *Runner {
	c := r.clone()
	c.env = env
	return c
}

// WithPrompter returns a Runner whose steps and retry prompts use p.
func (r *Runner) WithPrompter(p ports.Prompter) *Runner {
	c := r.clone()
	c.prompter = p
	return c
}

// WithLogger returns a Runner that logs to l.
func (r *Runner) WithLogger(l ports.Logger) *Runner {
	c := r.clone()
	c.logger = l
	return c
}

// WithObserver returns a Runner that reports progress to o.
func (r *Runner) WithObserver(o Observer) *Runner {
	c := r.clone()
	c.observer = o
	return c
}

// WithRetryPrompt returns a Runner that asks whether to retry after a failed apply.
func (r *Runner) WithRetryPrompt(enabled bool) *Runner {
	c := r.clone()
	c.retryPrompt = enabled
	return c
}

// WithRunID returns a Runner that stamps reports with a fixed run ID.
func (r *Runner) WithRunID(id string) *Runner {
	c := r.clone()
	c.newRunID = func() string { return id }
	return c
}

// Run executes every step of graph and returns the report.
// The error is non-nil only when the graph cannot be ordered or ctx is
// cancelled; step failures are recorded in the report.
func (r *Runner) Run(ctx context.Context, graph *compiler.StepGraph) (*Report, error) {
	steps, err := graph.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("failed to sort steps: %w", err)
	}

	report := NewReport(r.newRunID())
	report.startedAt = r.now()
	defer func() { report.finishedAt = r.now() }()

	r = r.clone()
	if r.logger != nil {
		r.logger = r.logger.With(ports.F("run_id", report.RunID()))
		ctx = ports.ContextWithLogger(ctx, r.logger)
	}
	runCtx := compiler.NewRunContext(ctx).WithPrompter(r.prompter)

	r.info(ctx, "run started", ports.F("steps", len(steps)))

	outcomes := make(map[string]compiler.StepStatus, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			r.warn(ctx, "run cancelled", ports.F("completed", report.Len()))
			return report, err
		}

		if r.observer != nil {
			r.observer.StepStarted(step)
		}

		result, err := r.runStep(runCtx, step, outcomes)
		if err != nil {
			return report, err
		}
		outcomes[step.ID().String()] = result.Status()
		report.Add(result)

		r.logResult(ctx, result)
		if r.observer != nil {
			r.observer.StepFinished(result)
		}

		if result.Status() == compiler.StatusFailed && compiler.IsCritical(step) {
			report.Halt(step.ID())
			r.error(ctx, "critical step failed, halting run", ports.F("step", step.ID().String()))
			break
		}
	}

	s := report.Summary()
	r.info(ctx, "run finished",
		ports.F("satisfied", s.Satisfied),
		ports.F("applied", s.Applied),
		ports.F("failed", s.Failed),
		ports.F("skipped", s.Skipped),
		ports.F("declined", s.Declined),
		ports.F("halted", report.Halted()),
	)

	return report, nil
}

// stepRun carries the per-step working state.
type stepRun struct {
	step        compiler.Step
	id          string
	lifecycle   *Lifecycle
	start       time.Time
	remediation string
	attempts    int
	diff        compiler.Diff
}

func (r *Runner) runStep(ctx compiler.RunContext, step compiler.Step, outcomes map[string]compiler.StepStatus) (StepResult, error) {
	id := step.ID().String()
	lc, err := NewLifecycle(id)
	if err != nil {
		return StepResult{}, err
	}
	defer lc.Stop()

	sr := &stepRun{
		step:        step,
		id:          id,
		lifecycle:   lc,
		start:       r.now(),
		remediation: step.Explain().Remediation,
	}

	for _, dep := range step.DependsOn() {
		status, seen := outcomes[dep.String()]
		if !seen {
			status = compiler.StatusNotRun
		}
		if status.Succeeded() {
			continue
		}
		r.fire(ctx.Context(), sr, EventSkip)
		stepErr := compiler.NewDependencyUnavailableError(id, dep.String(), status).
			WithSuggestion(sr.remediation)
		return r.finish(sr, compiler.StatusSkipped, stepErr), nil
	}

	r.fire(ctx.Context(), sr, EventProbe)
	status, err := step.Check(ctx)
	if err != nil || status == compiler.StatusUnknown {
		if err == nil {
			err = errors.New("probe returned unknown")
		}
		r.fire(ctx.Context(), sr, EventFail)
		stepErr := compiler.NewProbeInconclusiveError(id, err).WithSuggestion(sr.remediation)
		return r.finish(sr, compiler.StatusFailed, stepErr), nil
	}
	if status == compiler.StatusSatisfied {
		r.fire(ctx.Context(), sr, EventSatisfied)
		return r.finish(sr, compiler.StatusSatisfied, nil).WithDetail("already satisfied"), nil
	}

	r.fire(ctx.Context(), sr, EventUnsatisfied)
	if diff, err := step.Plan(ctx); err == nil {
		sr.diff = diff
	} else {
		r.debug(ctx.Context(), "plan unavailable", ports.F("step", id), ports.F("error", err.Error()))
	}

	for {
		result, retryable := r.applyOnce(ctx, sr)
		if !retryable || !r.confirmRetry(ctx.Context(), sr) {
			return result, nil
		}
		r.fire(ctx.Context(), sr, EventRetry)
	}
}

// applyOnce runs Apply, refreshes the environment view, and verifies.
// It reports whether a failure may be retried.
func (r *Runner) applyOnce(ctx compiler.RunContext, sr *stepRun) (StepResult, bool) {
	sr.attempts++
	applyErr := sr.step.Apply(ctx)
	r.refresh(ctx.Context(), sr.id)

	if errors.Is(applyErr, compiler.ErrUserDeclined) {
		r.fire(ctx.Context(), sr, EventDecline)
		stepErr := compiler.NewUserAbortedError(sr.id).WithSuggestion(sr.remediation)
		return r.finish(sr, compiler.StatusDeclined, stepErr), false
	}
	if applyErr != nil {
		r.fire(ctx.Context(), sr, EventFail)
		stepErr := compiler.NewApplyFailedError(sr.id, applyErr).WithSuggestion(sr.remediation)
		return r.finish(sr, compiler.StatusFailed, stepErr), true
	}

	r.fire(ctx.Context(), sr, EventApplied)
	post, err := sr.step.Check(ctx)
	if err == nil && post == compiler.StatusSatisfied {
		r.fire(ctx.Context(), sr, EventVerified)
		return r.finish(sr, compiler.StatusApplied, nil).WithDetail(appliedDetail(sr.diff)), false
	}

	r.fire(ctx.Context(), sr, EventFail)
	if err != nil {
		post = compiler.StatusUnknown
	}
	stepErr := compiler.NewPostconditionMismatchError(sr.id, post).WithSuggestion(sr.remediation)
	if err != nil {
		stepErr = stepErr.WithUnderlying(err)
	}
	return r.finish(sr, compiler.StatusFailed, stepErr), true
}

func (r *Runner) finish(sr *stepRun, status compiler.StepStatus, err error) StepResult {
	result := NewStepResult(sr.step.ID(), status, err).
		WithDuration(r.now().Sub(sr.start)).
		WithDiff(sr.diff).
		WithAttempts(sr.attempts).
		WithHistory(sr.lifecycle.History())
	if !status.Succeeded() {
		result = result.WithRemediation(sr.remediation)
	}
	return result
}

func (r *Runner) confirmRetry(ctx context.Context, sr *stepRun) bool {
	if !r.retryPrompt || r.prompter == nil {
		return false
	}
	ok, err := r.prompter.Confirm(ctx, fmt.Sprintf("%s failed. Retry?", sr.id))
	if err != nil {
		r.warn(ctx, "retry prompt failed", ports.F("step", sr.id), ports.F("error", err.Error()))
		return false
	}
	return ok
}

func (r *Runner) refresh(ctx context.Context, stepID string) {
	if r.env == nil {
		return
	}
	if err := r.env.Refresh(ctx); err != nil {
		r.warn(ctx, "environment refresh failed", ports.F("step", stepID), ports.F("error", err.Error()))
	}
}

// fire advances the lifecycle. An illegal transition is a runner bug; it is
// logged and does not change the recorded outcome.
func (r *Runner) fire(ctx context.Context, sr *stepRun, event string) {
	if err := sr.lifecycle.Fire(event); err != nil {
		r.warn(ctx, "lifecycle", ports.F("step", sr.id), ports.F("error", err.Error()))
	}
}

func appliedDetail(diff compiler.Diff) string {
	if diff.IsEmpty() {
		return "applied"
	}
	return diff.String()
}

func (r *Runner) logResult(ctx context.Context, result StepResult) {
	fields := []ports.Field{
		ports.F("step", result.StepID().String()),
		ports.F("status", result.Status().String()),
		ports.F("duration", result.Duration()),
	}
	switch {
	case result.Status() == compiler.StatusFailed:
		r.error(ctx, "step finished", append(fields, ports.F("error", result.Detail()))...)
	case result.Status() == compiler.StatusSkipped, result.Status() == compiler.StatusDeclined:
		r.warn(ctx, "step finished", append(fields, ports.F("reason", result.Detail()))...)
	default:
		r.info(ctx, "step finished", fields...)
	}
}

func (r *Runner) debug(ctx context.Context, msg string, fields ...ports.Field) {
	if r.logger != nil {
		r.logger.Debug(ctx, msg, fields...)
	}
}

func (r *Runner) info(ctx context.Context, msg string, fields ...ports.Field) {
	if r.logger != nil {
		r.logger.Info(ctx, msg, fields...)
	}
}

func (r *Runner) warn(ctx context.Context, msg string, fields ...ports.Field) {
	if r.logger != nil {
		r.logger.Warn(ctx, msg, fields...)
	}
}

func (r *Runner) error(ctx context.Context, msg string, fields ...ports.Field) {
	if r.logger != nil {
		r.logger.Error(ctx, msg, fields...)
	}
}
