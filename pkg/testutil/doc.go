// Package testutil holds helpers shared by the package tests: building file
// trees and Firefox profiles on a types.FS, and capturing zerolog output.
package testutil
