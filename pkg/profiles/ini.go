package profiles

import (
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// ProfilesIni is Firefox's profile registry file.
const ProfilesIni = "profiles.ini"

// Profile is a discovered profile directory with whatever profiles.ini says
// about it.
type Profile struct {
	Path    string
	Root    string
	Name    string
	Default bool
}

type iniProfile struct {
	Name       string `ini:"Name"`
	Path       string `ini:"Path"`
	IsRelative bool   `ini:"IsRelative"`
	Default    bool   `ini:"Default"`
}

// Describe returns every discovered profile, named from profiles.ini when
// the file sits in the root or its parent. A missing or unreadable
// profiles.ini leaves Name empty.
func (l *Locator) Describe() []Profile {
	var result []Profile
	for _, root := range l.Roots() {
		found := l.scanRoot(root)
		if len(found) == 0 {
			continue
		}

		registry := l.loadRegistry(root)
		for _, dir := range found {
			p := Profile{Path: dir, Root: root}
			if entry, ok := registry[filepath.Clean(dir)]; ok {
				p.Name = entry.Name
				p.Default = entry.Default
			}
			result = append(result, p)
		}
	}
	return result
}

// loadRegistry maps cleaned absolute profile paths to their profiles.ini
// entries.
func (l *Locator) loadRegistry(root string) map[string]iniProfile {
	for _, dir := range []string{root, filepath.Dir(root)} {
		data, err := l.FS.ReadFile(filepath.Join(dir, ProfilesIni))
		if err != nil {
			continue
		}

		registry, err := parseRegistry(dir, data)
		if err != nil {
			l.logger.Debug().Err(err).Str("dir", dir).Msg("Cannot parse profiles.ini")
			continue
		}
		return registry
	}
	return nil
}

func parseRegistry(dir string, data []byte) (map[string]iniProfile, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	registry := make(map[string]iniProfile)
	var installDefaults []string

	for _, section := range file.Sections() {
		name := section.Name()
		switch {
		case strings.HasPrefix(name, "Profile"):
			var entry iniProfile
			if err := section.MapTo(&entry); err != nil {
				return nil, err
			}
			if entry.Path == "" {
				continue
			}
			registry[resolveIniPath(dir, entry.Path, entry.IsRelative)] = entry
		case strings.HasPrefix(name, "Install"):
			// Install sections name the default profile of one installation.
			if def := section.Key("Default").String(); def != "" {
				installDefaults = append(installDefaults, def)
			}
		}
	}

	for _, def := range installDefaults {
		key := resolveIniPath(dir, def, !filepath.IsAbs(def))
		if entry, ok := registry[key]; ok {
			entry.Default = true
			registry[key] = entry
		}
	}

	return registry, nil
}

func resolveIniPath(dir, path string, relative bool) string {
	path = filepath.FromSlash(path)
	if relative {
		return filepath.Clean(filepath.Join(dir, path))
	}
	return filepath.Clean(path)
}
