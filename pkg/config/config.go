package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "DODOT_FIREFOX_"

// Config holds dodot-firefox settings.
type Config struct {
	Link    LinkDefaults `koanf:"link"`
	Install Install      `koanf:"install"`
	Logging Logging      `koanf:"logging"`
}

// LinkDefaults seed the options of every link.
type LinkDefaults struct {
	Create        bool `koanf:"create"`
	Force         bool `koanf:"force"`
	Relink        bool `koanf:"relink"`
	Relative      bool `koanf:"relative"`
	IgnoreMissing bool `koanf:"ignore-missing"`
}

// Data returns the defaults in link option form.
func (l LinkDefaults) Data() map[string]any {
	return map[string]any{
		"create":         l.Create,
		"force":          l.Force,
		"relink":         l.Relink,
		"relative":       l.Relative,
		"ignore-missing": l.IgnoreMissing,
	}
}

// Install holds install-file settings.
type Install struct {
	File string `koanf:"file"`
}

// Logging holds logging settings.
type Logging struct {
	File bool `koanf:"file"`
}

// LoadOptions controls Load.
type LoadOptions struct {
	// SettingsFile replaces the XDG settings file location.
	SettingsFile string
	// Overrides are dotted keys applied last, e.g. "link.force".
	Overrides map[string]any
}

// Load builds the layered configuration.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User settings file, if present
	settingsFile := opts.SettingsFile
	if settingsFile == "" {
		settingsFile = findSettingsFile()
	}
	if _, err := os.Stat(settingsFile); err == nil {
		if err := k.Load(file.Provider(settingsFile), parserFor(settingsFile)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", settingsFile)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Caller overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// findSettingsFile returns config.toml in the config directory, or a
// config.yaml / config.yml sibling when only that exists.
func findSettingsFile() string {
	preferred := paths.ConfigFile()
	if _, err := os.Stat(preferred); err == nil {
		return preferred
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		candidate := filepath.Join(paths.ConfigDir(), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return preferred
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey maps DODOT_FIREFOX_LINK_IGNORE_MISSING to link.ignore-missing: the
// first underscore separates the section, the rest become dashes.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	key = strings.Replace(key, "_", ".", 1)
	return strings.ReplaceAll(key, "_", "-")
}
