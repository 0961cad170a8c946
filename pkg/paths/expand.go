package paths

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Expander expands the home shorthand and environment references in paths.
type Expander struct {
	// LookupEnv resolves environment variables.
	LookupEnv func(key string) (string, bool)
	// HomeDir resolves "~".
	HomeDir func() (string, error)
}

// DefaultExpander reads the process environment.
func DefaultExpander() Expander {
	return Expander{LookupEnv: os.LookupEnv, HomeDir: os.UserHomeDir}
}

// EnvExpander builds an Expander over a fixed environment. "~" resolves to
// HOME, then USERPROFILE.
func EnvExpander(env map[string]string) Expander {
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return Expander{
		LookupEnv: lookup,
		HomeDir: func() (string, error) {
			for _, key := range []string{"HOME", "USERPROFILE"} {
				if v, ok := lookup(key); ok && v != "" {
					return v, nil
				}
			}
			return "", os.ErrNotExist
		},
	}
}

// envRef matches $NAME and ${NAME} references.
var envRef = regexp.MustCompile(`\$(\w+|\{[^}]*\})`)

// Expand replaces a leading "~" (alone or followed by a separator) with the
// home directory, then substitutes references to defined environment
// variables. Anything else, including undefined or malformed references, is
// copied unchanged. The result uses the OS path separator.
func (e Expander) Expand(path string) string {
	path = e.expandHome(path)
	path = e.expandEnv(path)
	return filepath.FromSlash(path)
}

func (e Expander) expandEnv(path string) string {
	if e.LookupEnv == nil || !strings.Contains(path, "$") {
		return path
	}
	return envRef.ReplaceAllStringFunc(path, func(ref string) string {
		name := ref[1:]
		if strings.HasPrefix(name, "{") {
			name = name[1 : len(name)-1]
		}
		if name == "" {
			return ref
		}
		if v, ok := e.LookupEnv(name); ok {
			return v
		}
		return ref
	})
}

func (e Expander) expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	if e.HomeDir == nil {
		return path
	}
	home, err := e.HomeDir()
	if err != nil || home == "" {
		return path
	}
	return home + path[1:]
}
