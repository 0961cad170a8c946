// Package plugin defines how directives reach the code that handles them.
//
// A Plugin answers whether it handles a directive name and processes the
// directive's data. Plugins are built by factories from a Context, which is
// opaque to them: a plugin that delegates to another plugin passes its
// Context through unchanged.
package plugin

import (
	"github.com/arthur-debert/dodot-firefox/pkg/registry"
)

// Data is the payload attached to a directive in an install file.
type Data = map[string]any

// Plugin handles one or more directives.
type Plugin interface {
	// CanHandle reports whether the plugin handles directive.
	CanHandle(directive string) bool
	// Handle processes directive. The boolean reports success. An error is
	// returned only when the plugin was asked to handle a directive it does
	// not support.
	Handle(directive string, data Data) (bool, error)
}

// Factory builds a plugin for one run.
type Factory func(ctx *Context) Plugin

var factories = registry.New[Factory]()

// MustRegister adds a plugin factory and panics on a duplicate name. Plugins
// call it from init.
func MustRegister(name string, factory Factory) {
	factories.MustRegister(name, factory)
}

// Names lists registered plugin names in lexical order.
func Names() []string {
	return factories.Names()
}

// Plugins instantiates every registered plugin for ctx, ordered by name.
func Plugins(ctx *Context) []Plugin {
	var result []Plugin
	for _, factory := range factories.All() {
		result = append(result, factory(ctx))
	}
	return result
}
