package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingSettings(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.toml")
}

func TestLoad(t *testing.T) {
	t.Run("embedded defaults", func(t *testing.T) {
		cfg, err := Load(LoadOptions{SettingsFile: missingSettings(t)})
		require.NoError(t, err)

		assert.True(t, cfg.Link.Create)
		assert.False(t, cfg.Link.Force)
		assert.False(t, cfg.Link.Relink)
		assert.False(t, cfg.Link.Relative)
		assert.False(t, cfg.Link.IgnoreMissing)
		assert.Equal(t, "install.conf.yaml", cfg.Install.File)
		assert.True(t, cfg.Logging.File)
	})

	t.Run("settings file overrides defaults", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "config.toml")
		content := `
[link]
relink = true
ignore-missing = true

[install]
file = "install.conf.toml"
`
		require.NoError(t, os.WriteFile(settings, []byte(content), 0644))

		cfg, err := Load(LoadOptions{SettingsFile: settings})
		require.NoError(t, err)

		assert.True(t, cfg.Link.Create)
		assert.True(t, cfg.Link.Relink)
		assert.True(t, cfg.Link.IgnoreMissing)
		assert.Equal(t, "install.conf.toml", cfg.Install.File)
	})

	t.Run("yaml settings file", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(settings, []byte("link:\n  relative: true\n"), 0644))

		cfg, err := Load(LoadOptions{SettingsFile: settings})
		require.NoError(t, err)
		assert.True(t, cfg.Link.Relative)
		assert.True(t, cfg.Link.Create)
	})

	t.Run("settings found in the config directory", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("DODOT_FIREFOX_CONFIG_DIR", dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("install:\n  file: dots.yaml\n"), 0644))

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "dots.yaml", cfg.Install.File)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(settings, []byte("[link]\ncreate = true\n"), 0644))
		t.Setenv("DODOT_FIREFOX_LINK_CREATE", "false")
		t.Setenv("DODOT_FIREFOX_LINK_IGNORE_MISSING", "true")

		cfg, err := Load(LoadOptions{SettingsFile: settings})
		require.NoError(t, err)

		assert.False(t, cfg.Link.Create)
		assert.True(t, cfg.Link.IgnoreMissing)
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv("DODOT_FIREFOX_LINK_FORCE", "false")

		cfg, err := Load(LoadOptions{
			SettingsFile: missingSettings(t),
			Overrides:    map[string]any{"link.force": true},
		})
		require.NoError(t, err)
		assert.True(t, cfg.Link.Force)
	})

	t.Run("broken settings file", func(t *testing.T) {
		settings := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(settings, []byte("[link\n"), 0644))

		_, err := Load(LoadOptions{SettingsFile: settings})
		require.Error(t, err)
	})
}

func TestLinkDefaultsData(t *testing.T) {
	d := LinkDefaults{Create: true, Relative: true}
	assert.Equal(t, map[string]any{
		"create":         true,
		"force":          false,
		"relink":         false,
		"relative":       true,
		"ignore-missing": false,
	}, d.Data())
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DODOT_FIREFOX_LINK_CREATE", "link.create"},
		{"DODOT_FIREFOX_LINK_IGNORE_MISSING", "link.ignore-missing"},
		{"DODOT_FIREFOX_INSTALL_FILE", "install.file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestDefaultsContent(t *testing.T) {
	assert.Contains(t, DefaultsContent(), "[link]")
}
