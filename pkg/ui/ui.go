// Package ui renders run results and profile listings as styled terminal
// output, plain text or JSON.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/json"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/terminal"
	"github.com/arthur-debert/dodot-firefox/pkg/ui/text"
)

// Renderer is implemented by every output format.
type Renderer interface {
	// RenderRun renders the outcome of an install run.
	RenderRun(report *display.RunReport) error

	// RenderProfiles renders discovered Firefox profiles.
	RenderProfiles(list *display.ProfileList) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto inspects output when
// it is a file and falls back to plain text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
