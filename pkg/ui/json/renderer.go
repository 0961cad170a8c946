// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dodot-firefox/pkg/ui/display"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

func (r *Renderer) RenderRun(report *display.RunReport) error {
	return r.encoder.Encode(report)
}

func (r *Renderer) RenderProfiles(list *display.ProfileList) error {
	return r.encoder.Encode(list)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
