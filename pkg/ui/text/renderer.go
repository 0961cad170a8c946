// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) RenderRun(report *display.RunReport) error {
	var b strings.Builder

	if report.DryRun {
		b.WriteString("Dry run: nothing was changed\n")
	}
	for _, row := range report.Directives {
		fmt.Fprintf(&b, "%-9s %s", row.Status, row.Directive)
		if row.Error != "" {
			fmt.Fprintf(&b, ": %s", row.Error)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%d succeeded, %d failed, %d skipped\n", report.Succeeded, report.Failed, report.Skipped)

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderProfiles(list *display.ProfileList) error {
	var b strings.Builder

	if len(list.Profiles) == 0 {
		b.WriteString("No Firefox profiles found\n")
		for _, root := range list.Roots {
			fmt.Fprintf(&b, "  searched %s\n", root)
		}
	}
	for _, p := range list.Profiles {
		b.WriteString(p.Path)
		if p.Name != "" {
			fmt.Fprintf(&b, "\t%s", p.Name)
		}
		if p.Default {
			b.WriteString("\t(default)")
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
