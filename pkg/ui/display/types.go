// Package display holds the view models rendered by the ui renderers.
package display

import (
	"time"

	"github.com/arthur-debert/dodot-firefox/pkg/dispatcher"
	"github.com/arthur-debert/dodot-firefox/pkg/profiles"
)

// DirectiveRow is one rendered directive outcome.
type DirectiveRow struct {
	Task      int    `json:"task"`
	Directive string `json:"directive"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// RunReport summarises an install run.
type RunReport struct {
	InstallFile string         `json:"installFile,omitempty"`
	DryRun      bool           `json:"dryRun"`
	Success     bool           `json:"success"`
	Directives  []DirectiveRow `json:"directives"`
	Succeeded   int            `json:"succeeded"`
	Failed      int            `json:"failed"`
	Skipped     int            `json:"skipped"`
	Duration    time.Duration  `json:"durationNs"`
}

// NewRunReport converts a dispatcher result for rendering.
func NewRunReport(installFile string, result *dispatcher.Result) *RunReport {
	report := &RunReport{
		InstallFile: installFile,
		Directives:  []DirectiveRow{},
	}
	if result == nil {
		report.Success = true
		return report
	}

	report.DryRun = result.DryRun
	report.Success = result.Success()
	report.Succeeded = result.Count(dispatcher.StatusSuccess)
	report.Failed = result.Count(dispatcher.StatusFailed)
	report.Skipped = result.Count(dispatcher.StatusSkipped)
	report.Duration = result.Duration

	for _, o := range result.Outcomes {
		row := DirectiveRow{
			Task:      o.Task,
			Directive: o.Directive,
			Status:    string(o.Status),
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		report.Directives = append(report.Directives, row)
	}
	return report
}

// ProfileRow is one rendered profile.
type ProfileRow struct {
	Name    string `json:"name,omitempty"`
	Path    string `json:"path"`
	Root    string `json:"root"`
	Default bool   `json:"default"`
}

// ProfileList is the result of profile discovery.
type ProfileList struct {
	Roots    []string     `json:"roots"`
	Profiles []ProfileRow `json:"profiles"`
}

// NewProfileList converts discovered profiles for rendering.
func NewProfileList(roots []string, found []profiles.Profile) *ProfileList {
	list := &ProfileList{
		Roots:    roots,
		Profiles: make([]ProfileRow, 0, len(found)),
	}
	if list.Roots == nil {
		list.Roots = []string{}
	}
	for _, p := range found {
		list.Profiles = append(list.Profiles, ProfileRow{
			Name:    p.Name,
			Path:    p.Path,
			Root:    p.Root,
			Default: p.Default,
		})
	}
	return list
}
