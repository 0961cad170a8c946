// Package filesystem provides the types.FS implementations, both backed by
// afero: the host filesystem (afero.OsFs) and an in-memory one
// (afero.MemMapFs) used by discovery and handler tests.
package filesystem
