package plugin

import (
	"maps"

	"github.com/arthur-debert/dodot-firefox/pkg/filesystem"
	"github.com/arthur-debert/dodot-firefox/pkg/types"
)

// Context carries run-wide state into plugins.
type Context struct {
	// BaseDirectory anchors relative source paths, normally the directory
	// holding the install file.
	BaseDirectory string
	DryRun        bool
	FS            types.FS

	defaults map[string]Data
}

// NewContext returns a Context on the OS filesystem.
func NewContext(baseDirectory string) *Context {
	return &Context{
		BaseDirectory: baseDirectory,
		FS:            filesystem.NewOS(),
		defaults:      make(map[string]Data),
	}
}

// Filesystem returns the configured filesystem, falling back to the OS.
func (c *Context) Filesystem() types.FS {
	if c == nil || c.FS == nil {
		return filesystem.NewOS()
	}
	return c.FS
}

// MergeDefaults overlays options onto the defaults of one directive.
func (c *Context) MergeDefaults(directive string, options Data) {
	if c.defaults == nil {
		c.defaults = make(map[string]Data)
	}
	current := c.defaults[directive]
	if current == nil {
		current = make(Data, len(options))
	}
	maps.Copy(current, options)
	c.defaults[directive] = current
}

// DefaultsFor returns a copy of the defaults for directive.
func (c *Context) DefaultsFor(directive string) Data {
	if c == nil {
		return Data{}
	}
	if d, ok := c.defaults[directive]; ok {
		return maps.Clone(d)
	}
	return Data{}
}
