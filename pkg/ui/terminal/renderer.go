// Package terminal renders styled output for interactive terminals.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer writes pterm and lipgloss styled output.
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// StatusStyle returns the pterm style for a directive status.
func StatusStyle(status string) *pterm.Style {
	switch status {
	case "success":
		return pterm.NewStyle(pterm.FgGreen)
	case "failed":
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case "defaults":
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func (r *Renderer) RenderRun(report *display.RunReport) error {
	var b strings.Builder

	header := "Install"
	if report.InstallFile != "" {
		header += " " + report.InstallFile
	}
	if report.DryRun {
		header += " (dry run)"
	}
	b.WriteString(styles.Get("Header").Render(header))
	b.WriteString("\n")

	for _, row := range report.Directives {
		status := StatusStyle(row.Status).Sprint(fmt.Sprintf("%-9s", row.Status))
		fmt.Fprintf(&b, "  %s %s", status, row.Directive)
		if row.Error != "" {
			fmt.Fprintf(&b, " %s", styles.Get("Muted").Render(row.Error))
		}
		b.WriteString("\n")
	}

	summary := fmt.Sprintf("%d succeeded, %d failed, %d skipped", report.Succeeded, report.Failed, report.Skipped)
	if report.Success {
		b.WriteString(pterm.Success.Sprintln(summary))
	} else {
		b.WriteString(pterm.Error.Sprintln(summary))
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderProfiles(list *display.ProfileList) error {
	var b strings.Builder

	b.WriteString(styles.Get("Header").Render("Firefox profiles"))
	b.WriteString("\n")

	if len(list.Profiles) == 0 {
		b.WriteString(pterm.Warning.Sprintln("No Firefox profiles found"))
		for _, root := range list.Roots {
			b.WriteString(styles.Get("Muted").Render("searched " + root))
			b.WriteString("\n")
		}
		_, err := io.WriteString(r.output, b.String())
		return err
	}

	for _, p := range list.Profiles {
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		line := styles.Get("ProfileName").Render(name)
		if p.Default {
			line += " " + styles.Get("Default").Render("default")
		}
		b.WriteString(line)
		b.WriteString("\n")
		b.WriteString(styles.Get("FilePath").Render(p.Path))
		b.WriteString("\n")
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) RenderError(err error) error {
	_, werr := io.WriteString(r.output, pterm.Error.Sprintln(err.Error()))
	return werr
}

func (r *Renderer) RenderMessage(msg string) error {
	_, err := io.WriteString(r.output, pterm.Info.Sprintln(msg))
	return err
}
