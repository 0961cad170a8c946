// Package registry provides a generic, thread-safe name registry that keeps
// its entries in lexical order. The plugin host keeps its plugin factories
// in one.
package registry
