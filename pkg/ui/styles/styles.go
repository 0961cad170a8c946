// Package styles defines the lipgloss styles of terminal output.
//
// Styles are declared in the embedded styles.yaml under semantic names
// (Header, Success, Error, ...) with adaptive colours that follow the
// terminal's light or dark background.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed styles.yaml
var embeddedStyles []byte

var registry = map[string]lipgloss.Style{}

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		registry = map[string]lipgloss.Style{}
	}
}

// LoadStylesFromData replaces the registry with styles parsed from data.
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	loaded := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		loaded[name] = buildStyle(def, colors)
	}
	registry = loaded
	return nil
}

// Get returns the named style, or an unstyled one.
func Get(name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Has reports whether name is a known style.
func Has(name string) bool {
	_, ok := registry[name]
	return ok
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style
}
