package firefox_test

import (
	"iter"
	"path/filepath"
	"slices"
	"testing"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/filesystem"
	"github.com/arthur-debert/dodot-firefox/pkg/firefox"
	"github.com/arthur-debert/dodot-firefox/pkg/paths"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
	"github.com/arthur-debert/dodot-firefox/pkg/profiles"
	"github.com/arthur-debert/dodot-firefox/pkg/testutil"
	"github.com/arthur-debert/dodot-firefox/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLinker records every link call and answers with result.
type fakeLinker struct {
	result   bool
	calls    []plugin.Data
	contexts []*plugin.Context
}

func (f *fakeLinker) factory(ctx *plugin.Context) plugin.Plugin {
	f.contexts = append(f.contexts, ctx)
	return f
}

func (f *fakeLinker) CanHandle(directive string) bool { return directive == "link" }

func (f *fakeLinker) Handle(directive string, data plugin.Data) (bool, error) {
	f.calls = append(f.calls, data)
	return f.result, nil
}

type staticProfiles []string

func (s staticProfiles) Profiles() iter.Seq[string] { return slices.Values(s) }

type harness struct {
	fs     types.FS
	linker *fakeLinker
	logs   *testutil.LogCapture
	ctx    *plugin.Context
	plugin *firefox.Plugin
}

func newHarness(t *testing.T, profileDirs ...string) *harness {
	t.Helper()
	h := &harness{
		fs:     filesystem.NewMemoryFS(),
		linker: &fakeLinker{result: true},
		logs:   testutil.NewLogCapture(),
		ctx:    plugin.NewContext("/dotfiles"),
	}
	expander := paths.EnvExpander(map[string]string{"HOME": "/home/alice", "DOTFILES": "/dotfiles"})
	h.plugin = firefox.New(h.ctx, firefox.Options{
		Locator:   staticProfiles(profileDirs),
		NewLinker: h.linker.factory,
		FS:        h.fs,
		Expander:  &expander,
		Logger:    &h.logs.Logger,
	})
	return h
}

func (h *harness) records(level string) []testutil.LogRecord {
	return h.logs.Records(level)
}

func (h *harness) writeFile(t *testing.T, path string) {
	t.Helper()
	path = filepath.FromSlash(path)
	require.NoError(t, h.fs.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, h.fs.WriteFile(path, []byte("/* css */"), 0644))
}

func TestCanHandle(t *testing.T) {
	h := newHarness(t)
	assert.True(t, h.plugin.CanHandle("firefox"))
	assert.False(t, h.plugin.CanHandle("link"))
	assert.False(t, h.plugin.CanHandle("Firefox"))
	assert.False(t, h.plugin.CanHandle(""))
}

func TestHandleRejectsOtherDirectives(t *testing.T) {
	h := newHarness(t)
	ok, err := h.plugin.Handle("not-firefox", plugin.Data{})
	assert.False(t, ok)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, h.linker.calls)
}

func TestHandleEmptyData(t *testing.T) {
	h := newHarness(t, "/p")
	ok, err := h.plugin.Handle("firefox", plugin.Data{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, h.linker.calls)
}

func TestUserJS(t *testing.T) {
	for _, linkResult := range []bool{true, false} {
		t.Run(map[bool]string{true: "link succeeds", false: "link fails"}[linkResult], func(t *testing.T) {
			profile := filepath.FromSlash("/home/alice/.mozilla/firefox/bogus")
			h := newHarness(t, profile)
			h.linker.result = linkResult

			ok, err := h.plugin.Handle("firefox", plugin.Data{"user.js": "js-file"})
			require.NoError(t, err)
			assert.Equal(t, linkResult, ok)

			require.Len(t, h.linker.calls, 1)
			assert.Equal(t, plugin.Data{filepath.Join(profile, "user.js"): "js-file"}, h.linker.calls[0])
			assert.Same(t, h.ctx, h.linker.contexts[0], "context is forwarded unchanged")
		})
	}
}

func TestUserJSManyProfilesSingleCall(t *testing.T) {
	h := newHarness(t, "/a", "/b", "/c")
	source := map[string]any{"path": "user.js", "relink": true}

	ok, err := h.plugin.Handle("firefox", plugin.Data{"user.js": source})
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, h.linker.calls, 1)
	assert.Equal(t, plugin.Data{
		filepath.Join("/a", "user.js"): source,
		filepath.Join("/b", "user.js"): source,
		filepath.Join("/c", "user.js"): source,
	}, h.linker.calls[0])
}

func TestUserJSWithoutProfiles(t *testing.T) {
	h := newHarness(t)

	ok, err := h.plugin.Handle("firefox", plugin.Data{"user.js": "js-file"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, h.linker.calls, "the link plugin should not have been used")

	warnings := h.records("warn")
	require.Len(t, warnings, 1)
	assert.Equal(t, "No Firefox profiles found", warnings[0].Message)
}

func TestUserChromeFile(t *testing.T) {
	h := newHarness(t, "/p1", "/p2")
	h.writeFile(t, "/dotfiles/firefox/userChrome.css")

	ok, err := h.plugin.Handle("firefox", plugin.Data{"userChrome.css": "$DOTFILES/firefox/userChrome.css"})
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, h.linker.calls, 1)
	assert.Equal(t, plugin.Data{
		filepath.Join("/p1", "chrome", "userChrome.css"): "$DOTFILES/firefox/userChrome.css",
		filepath.Join("/p2", "chrome", "userChrome.css"): "$DOTFILES/firefox/userChrome.css",
	}, h.linker.calls[0], "the source is passed through unexpanded")
}

func TestChromeDirectory(t *testing.T) {
	h := newHarness(t, "/p1", "/p2")
	h.writeFile(t, "/home/alice/dotfiles/chrome/a.css")
	h.writeFile(t, "/home/alice/dotfiles/chrome/sub/b.css")
	source := filepath.FromSlash("/home/alice/dotfiles/chrome")

	ok, err := h.plugin.Handle("firefox", plugin.Data{"chrome": "~/dotfiles/chrome"})
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, h.linker.calls, 2, "one link call per profile")
	for i, profile := range []string{"/p1", "/p2"} {
		assert.Equal(t, plugin.Data{
			filepath.Join(profile, "chrome", "a.css"):        filepath.Join(source, "a.css"),
			filepath.Join(profile, "chrome", "sub", "b.css"): filepath.Join(source, "sub", "b.css"),
		}, h.linker.calls[i])
	}
}

func TestChromeDirectoryAggregatesPerProfile(t *testing.T) {
	h := newHarness(t, "/p1", "/p2")
	h.writeFile(t, "/chrome/a.css")

	results := []bool{true, false}
	var calls int
	h2 := firefox.New(h.ctx, firefox.Options{
		Locator: staticProfiles{"/p1", "/p2"},
		NewLinker: func(ctx *plugin.Context) plugin.Plugin {
			f := &fakeLinker{result: results[calls]}
			calls++
			return f
		},
		FS: h.fs,
	})

	ok, err := h2.Handle("firefox", plugin.Data{"chrome": "/chrome"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, calls, "every profile is attempted")
}

func TestUserChromeTakesPrecedenceOverChrome(t *testing.T) {
	h := newHarness(t, "/p")
	h.writeFile(t, "/src/userChrome.css")
	h.writeFile(t, "/src/chrome/a.css")

	ok, err := h.plugin.Handle("firefox", plugin.Data{
		"userChrome.css": "/src/userChrome.css",
		"chrome":         "/src/chrome",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, h.linker.calls, 1)
	assert.Equal(t, plugin.Data{
		filepath.Join("/p", "chrome", "userChrome.css"): "/src/userChrome.css",
	}, h.linker.calls[0])
}

func TestInvalidChromeValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"non-string value", "chrome", 42},
		{"mapping value", "userChrome.css", map[string]any{"path": "/src/userChrome.css"}},
		{"missing path", "chrome", "/nowhere/chrome"},
		{"file with the wrong name", "userChrome.css", "/src/other.css"},
		{"directory with the wrong name", "chrome", "/src/styles"},
		{"directory named userChrome.css", "userChrome.css", "/src/dir/userChrome.css"},
		{"file named chrome", "chrome", "/src/file/chrome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "/p")
			h.writeFile(t, "/src/other.css")
			h.writeFile(t, "/src/styles/a.css")
			h.writeFile(t, "/src/file/chrome")
			require.NoError(t, h.fs.MkdirAll(filepath.FromSlash("/src/dir/userChrome.css"), 0755))

			ok, err := h.plugin.Handle("firefox", plugin.Data{tt.key: tt.value})
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, h.linker.calls)
			assert.Len(t, h.records("error"), 1)
		})
	}
}

func TestInvalidChromeDoesNotStopUserJS(t *testing.T) {
	h := newHarness(t, "/p")

	ok, err := h.plugin.Handle("firefox", plugin.Data{
		"user.js": "user.js",
		"chrome":  42,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, h.linker.calls, 1)
	assert.Equal(t, plugin.Data{filepath.Join("/p", "user.js"): "user.js"}, h.linker.calls[0])
}

func TestChromeWithoutProfiles(t *testing.T) {
	h := newHarness(t)
	h.writeFile(t, "/src/chrome/a.css")

	ok, err := h.plugin.Handle("firefox", plugin.Data{"chrome": "/src/chrome"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, h.linker.calls)
	assert.Len(t, h.records("warn"), 1)
}

func TestUnknownKeysAreWarnedAbout(t *testing.T) {
	h := newHarness(t, "/p")

	ok, err := h.plugin.Handle("firefox", plugin.Data{"prefs.js": "x"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, h.linker.calls)
	assert.Len(t, h.records("warn"), 1)
}

func TestWithRealLocator(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	profile := testutil.CreateProfile(t, fsys, "/adrift/linux/snap/firefox/common/.mozilla/firefox", "bogus")

	locator := profiles.NewLocatorFor("linux", fsys, paths.EnvExpander(map[string]string{"HOME": "/adrift/linux"}))
	linker := &fakeLinker{result: true}
	p := firefox.New(plugin.NewContext(""), firefox.Options{
		Locator:   locator,
		NewLinker: linker.factory,
		FS:        fsys,
	})

	ok, err := p.Handle("firefox", plugin.Data{"user.js": "js-file"})
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, linker.calls, 1)
	assert.Equal(t, plugin.Data{filepath.Join(profile, "user.js"): "js-file"}, linker.calls[0])
}

func TestChromeUsesContextFilesystem(t *testing.T) {
	fsys := filesystem.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll(filepath.FromSlash("/dotfiles/chrome"), 0755))
	require.NoError(t, fsys.WriteFile(filepath.FromSlash("/dotfiles/chrome/a.css"), []byte(""), 0644))

	ctx := plugin.NewContext("/dotfiles")
	ctx.FS = fsys
	linker := &fakeLinker{result: true}
	p := firefox.New(ctx, firefox.Options{
		Locator:   staticProfiles{"/p"},
		NewLinker: linker.factory,
	})

	ok, err := p.Handle("firefox", plugin.Data{"chrome": "/dotfiles/chrome"})
	require.NoError(t, err)
	assert.True(t, ok, "the chrome directory lives only on the context filesystem")
	require.Len(t, linker.calls, 1)
	assert.Equal(t, plugin.Data{
		filepath.Join("/p", "chrome", "a.css"): filepath.Join(filepath.FromSlash("/dotfiles/chrome"), "a.css"),
	}, linker.calls[0])
}

func TestChromeDirectoryKeepsLiteralDollar(t *testing.T) {
	h := newHarness(t, "/p")
	h.writeFile(t, "/srv/a$-b/chrome/a.css")
	h.writeFile(t, "/srv/$UNDEF/chrome/b.css")

	for _, source := range []string{"/srv/a$-b/chrome", "/srv/$UNDEF/chrome"} {
		ok, err := h.plugin.Handle("firefox", plugin.Data{"chrome": source})
		require.NoError(t, err)
		assert.True(t, ok, source)
	}

	require.Len(t, h.linker.calls, 2)
	assert.Equal(t, plugin.Data{
		filepath.Join("/p", "chrome", "a.css"): filepath.FromSlash("/srv/a$-b/chrome/a.css"),
	}, h.linker.calls[0])
	assert.Equal(t, plugin.Data{
		filepath.Join("/p", "chrome", "b.css"): filepath.FromSlash("/srv/$UNDEF/chrome/b.css"),
	}, h.linker.calls[1])
}
