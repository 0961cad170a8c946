// Package types holds interfaces shared across dodot-firefox packages.
package types
