// Package link implements the "link" directive: it makes each destination
// path a symlink to its source.
//
// Install file form:
//
//	- link:
//	    ~/.gitconfig: git/gitconfig
//	    ~/.config/nvim:
//	      path: nvim
//	      create: true
//	      relink: true
//
// A source is either a path or a mapping of options. Options missing from a
// mapping fall back to the "link" entry of the run's defaults.
//
// Options:
//
//   - create: create missing parent directories of the destination
//   - force: replace an existing file or directory at the destination
//   - relink: replace a symlink that points elsewhere
//   - relative: write the link target relative to the destination
//   - ignore-missing: link even if the source does not exist
//
// An empty path links the destination's base name, leading dots stripped,
// from the base directory.
package link
