// Package dispatcher runs install-file tasks against the registered plugins.
// It is the entry point from the CLI layer: each directive goes to the first
// plugin that handles it, and the outcomes are collected into a Result.
package dispatcher

import (
	"slices"
	"time"

	"github.com/arthur-debert/dodot-firefox/pkg/config"
	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/logging"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
)

// Status is the outcome of one directive.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
	StatusDefaults Status = "defaults"
)

// Options filter which directives run. Empty Only means all of them.
// The defaults directive is never filtered.
type Options struct {
	Only   []string
	Except []string
	// Plugins replaces the registered plugins. Used by tests.
	Plugins []plugin.Plugin
}

// Outcome records what happened to one directive.
type Outcome struct {
	Task      int
	Directive string
	Status    Status
	Err       error
}

// Result aggregates a run.
type Result struct {
	Outcomes []Outcome
	DryRun   bool
	Duration time.Duration
}

// Success reports whether no directive failed.
func (r *Result) Success() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Count returns the number of outcomes with status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Run dispatches every directive of tasks, in order.
func Run(ctx *plugin.Context, tasks []config.Task, opts Options) (*Result, error) {
	if ctx == nil {
		return nil, errors.New(errors.ErrInvalidInput, "dispatcher needs a plugin context")
	}

	logger := logging.GetLogger("dispatcher")
	logger.Debug().
		Str("baseDirectory", ctx.BaseDirectory).
		Bool("dryRun", ctx.DryRun).
		Int("tasks", len(tasks)).
		Strs("only", opts.Only).
		Strs("except", opts.Except).
		Msg("Dispatching tasks")

	plugins := opts.Plugins
	if plugins == nil {
		plugins = plugin.Plugins(ctx)
	}

	start := time.Now()
	result := &Result{DryRun: ctx.DryRun}
	for i, task := range tasks {
		for _, d := range task {
			outcome := Outcome{Task: i, Directive: d.Name}

			switch {
			case d.Name == config.DefaultsDirective:
				outcome.Status, outcome.Err = applyDefaults(ctx, d.Data)
			case !selected(d.Name, opts):
				outcome.Status = StatusSkipped
				logger.Debug().Str("directive", d.Name).Msg("Skipping filtered directive")
			default:
				outcome.Status, outcome.Err = dispatch(plugins, d)
			}

			if outcome.Err != nil {
				logger.Error().Err(outcome.Err).Str("directive", d.Name).Int("task", i).Msg("Directive failed")
			}
			result.Outcomes = append(result.Outcomes, outcome)
		}
	}
	result.Duration = time.Since(start)

	if result.Success() {
		logger.Info().Int("directives", len(result.Outcomes)).Msg("All tasks executed successfully")
	} else {
		logger.Error().Int("failed", result.Count(StatusFailed)).Msg("Some tasks were not executed successfully")
	}
	return result, nil
}

func dispatch(plugins []plugin.Plugin, d config.Directive) (Status, error) {
	data, ok := asData(d.Data)
	if !ok {
		return StatusFailed, errors.Newf(errors.ErrConfigValid, "data for directive %q must be a mapping", d.Name).
			WithDetail("directive", d.Name)
	}

	for _, p := range plugins {
		if !p.CanHandle(d.Name) {
			continue
		}
		success, err := p.Handle(d.Name, data)
		if err != nil {
			return StatusFailed, err
		}
		if !success {
			return StatusFailed, nil
		}
		return StatusSuccess, nil
	}
	return StatusFailed, errors.Newf(errors.ErrDirectiveUnknown, "action %s not handled", d.Name).
		WithDetail("directive", d.Name)
}

// applyDefaults merges each directive's options into the context defaults.
func applyDefaults(ctx *plugin.Context, value any) (Status, error) {
	data, ok := asData(value)
	if !ok {
		return StatusFailed, errors.New(errors.ErrConfigValid, "defaults must be a mapping")
	}
	for directive, options := range data {
		opts, ok := asData(options)
		if !ok {
			return StatusFailed, errors.Newf(errors.ErrConfigValid, "defaults for %q must be a mapping", directive).
				WithDetail("directive", directive)
		}
		ctx.MergeDefaults(directive, opts)
	}
	return StatusDefaults, nil
}

func selected(name string, opts Options) bool {
	if len(opts.Only) > 0 && !slices.Contains(opts.Only, name) {
		return false
	}
	return !slices.Contains(opts.Except, name)
}

func asData(value any) (plugin.Data, bool) {
	switch v := value.(type) {
	case nil:
		return plugin.Data{}, true
	case map[string]any:
		return v, true
	}
	return nil, false
}
