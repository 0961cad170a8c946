package profiles

import (
	"iter"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/dodot-firefox/pkg/filesystem"
	"github.com/arthur-debert/dodot-firefox/pkg/logging"
	"github.com/arthur-debert/dodot-firefox/pkg/paths"
	"github.com/arthur-debert/dodot-firefox/pkg/types"
	"github.com/rs/zerolog"
)

// PrefsFile marks a directory as a Firefox profile.
const PrefsFile = "prefs.js"

const (
	windowsRoot = "${APPDATA}/Mozilla/Firefox/Profiles"
	darwinRoot  = "~/Library/Application Support/Firefox/Profiles"
	unixRoot    = "~/.mozilla/firefox"

	// Snap confinement keeps profiles under $SNAP_USER_COMMON.
	snapUserCommon = "~/snap/firefox/common"
	flatpakAppDir  = "~/.var/app/org.mozilla.firefox"
	mozillaSubdir  = ".mozilla/firefox"
)

// Lister yields profile directories.
type Lister interface {
	Profiles() iter.Seq[string]
}

// Locator finds profile directories for one platform.
type Locator struct {
	// GOOS selects the candidate roots; unknown values get the Unix layout.
	GOOS     string
	FS       types.FS
	Expander paths.Expander

	logger zerolog.Logger
}

// NewLocator returns a Locator for the running platform using the OS
// filesystem and the process environment.
func NewLocator() *Locator {
	return NewLocatorFor(runtime.GOOS, filesystem.NewOS(), paths.DefaultExpander())
}

// NewLocatorFor returns a Locator for an explicit platform, filesystem and
// environment.
func NewLocatorFor(goos string, fsys types.FS, expander paths.Expander) *Locator {
	return &Locator{
		GOOS:     goos,
		FS:       fsys,
		Expander: expander,
		logger:   logging.GetLogger("profiles"),
	}
}

// RootTemplates returns the unexpanded candidate roots for goos.
func RootTemplates(goos string) []string {
	switch goos {
	case "windows":
		return []string{windowsRoot}
	case "darwin":
		return []string{darwinRoot}
	default:
		return []string{
			unixRoot,
			snapUserCommon + "/" + mozillaSubdir,
			flatpakAppDir + "/" + mozillaSubdir,
		}
	}
}

// Roots returns the expanded candidate roots. They may not exist.
func (l *Locator) Roots() []string {
	templates := RootTemplates(l.GOOS)
	roots := make([]string, 0, len(templates))
	for _, template := range templates {
		roots = append(roots, l.Expander.Expand(template))
	}
	return roots
}

// Profiles yields every profile directory under every existing root. The
// sequence rescans the filesystem each time it is ranged over. A directory
// reachable from two roots is yielded once per root.
func (l *Locator) Profiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, root := range l.Roots() {
			for _, profile := range l.scanRoot(root) {
				if !yield(profile) {
					return
				}
			}
		}
	}
}

// List collects Profiles into a slice.
func (l *Locator) List() []string {
	var result []string
	for profile := range l.Profiles() {
		result = append(result, profile)
	}
	return result
}

func (l *Locator) scanRoot(root string) []string {
	if !l.isDir(root) {
		l.logger.Trace().Str("root", root).Msg("Profile root does not exist")
		return nil
	}

	entries, err := l.FS.ReadDir(root)
	if err != nil {
		l.logger.Debug().Err(err).Str("root", root).Msg("Cannot list profile root")
		return nil
	}

	var found []string
	for _, entry := range entries {
		candidate := filepath.Join(root, entry.Name())
		if l.IsProfile(candidate) {
			found = append(found, candidate)
		}
	}

	l.logger.Debug().Str("root", root).Int("profiles", len(found)).Msg("Scanned profile root")
	return found
}

// IsProfile reports whether dir is a directory holding a prefs.js file.
// Symlinks are followed for both checks.
func (l *Locator) IsProfile(dir string) bool {
	if !l.isDir(dir) {
		return false
	}
	info, err := l.FS.Stat(filepath.Join(dir, PrefsFile))
	return err == nil && info.Mode().IsRegular()
}

func (l *Locator) isDir(path string) bool {
	info, err := l.FS.Stat(path)
	return err == nil && info.IsDir()
}
