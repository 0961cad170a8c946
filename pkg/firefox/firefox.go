// Package firefox implements the "firefox" directive, which links files
// into every Firefox profile found on the machine.
//
//	- firefox:
//	    user.js: firefox/user.js
//	    chrome: firefox/chrome
//
// "user.js" is linked as <profile>/user.js and accepts anything the link
// directive accepts as a source. "userChrome.css" (or its alias "chrome")
// names either a file called userChrome.css, linked as
// <profile>/chrome/userChrome.css, or a directory called chrome whose files
// are linked one by one under <profile>/chrome.
//
// Link creation is delegated to the link plugin, built from the same
// plugin.Context this plugin received.
package firefox

import (
	"path/filepath"
	"slices"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/link"
	"github.com/arthur-debert/dodot-firefox/pkg/logging"
	"github.com/arthur-debert/dodot-firefox/pkg/paths"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
	"github.com/arthur-debert/dodot-firefox/pkg/profiles"
	"github.com/arthur-debert/dodot-firefox/pkg/types"
	"github.com/rs/zerolog"
)

// Directive is the only directive this plugin handles.
const Directive = "firefox"

const (
	userJSFile        = "user.js"
	userChromeFile    = "userChrome.css"
	chromeDir         = "chrome"
	noProfilesMessage = "No Firefox profiles found"
)

func init() {
	plugin.MustRegister(Directive, func(ctx *plugin.Context) plugin.Plugin {
		return New(ctx, Options{})
	})
}

// Options configures a Plugin. Zero fields get production defaults.
type Options struct {
	// Locator finds profiles; defaults to profiles.NewLocator().
	Locator profiles.Lister
	// NewLinker builds the link capability; defaults to link.New.
	NewLinker plugin.Factory
	// FS is used to inspect chrome sources; defaults to ctx.Filesystem(),
	// the filesystem the link plugin writes to.
	FS types.FS
	// Expander expands chrome source paths; defaults to the process
	// environment.
	Expander *paths.Expander
	// Logger receives the plugin's diagnostics.
	Logger *zerolog.Logger
}

// Plugin handles the firefox directive.
type Plugin struct {
	ctx       *plugin.Context
	locator   profiles.Lister
	newLinker plugin.Factory
	fs        types.FS
	expander  paths.Expander
	logger    zerolog.Logger
}

// New returns a firefox plugin. ctx is handed unchanged to the link plugin.
func New(ctx *plugin.Context, opts Options) *Plugin {
	p := &Plugin{
		ctx:       ctx,
		locator:   opts.Locator,
		newLinker: opts.NewLinker,
		fs:        opts.FS,
		expander:  paths.DefaultExpander(),
	}
	if p.locator == nil {
		p.locator = profiles.NewLocator()
	}
	if p.newLinker == nil {
		p.newLinker = link.New
	}
	if p.fs == nil {
		p.fs = ctx.Filesystem()
	}
	if opts.Expander != nil {
		p.expander = *opts.Expander
	}
	if opts.Logger != nil {
		p.logger = *opts.Logger
	} else {
		p.logger = logging.GetLogger("firefox")
	}
	return p
}

// CanHandle reports whether directive is "firefox".
func (p *Plugin) CanHandle(directive string) bool {
	return directive == Directive
}

// Handle links the configured files into every profile. Each key is
// processed even when an earlier one failed; the result is true only if
// every step succeeded. The error is reserved for directives other than
// "firefox".
func (p *Plugin) Handle(directive string, data plugin.Data) (bool, error) {
	if !p.CanHandle(directive) {
		return false, errors.Newf(errors.ErrInvalidInput,
			"the Firefox plugin does not handle the '%s' directive", directive).
			WithDetail("directive", directive)
	}

	cfg := ParseConfig(data)
	for _, key := range cfg.Unknown {
		p.logger.Warn().Str("key", key).Msg("Ignoring unknown firefox option")
	}

	success := true

	if cfg.UserJS.Set {
		ok := p.handleUserJS(cfg.UserJS.Value)
		success = success && ok
	}

	if cfg.UserChrome.Set {
		ok := p.handleUserChrome(cfg.UserChrome)
		success = success && ok
	}

	return success, nil
}

// handleUserJS links value as user.js in every profile with one link call.
func (p *Plugin) handleUserJS(value any) bool {
	links := plugin.Data{}
	for profile := range p.locator.Profiles() {
		links[filepath.Join(profile, userJSFile)] = value
	}

	if len(links) == 0 {
		p.logger.Warn().Msg(noProfilesMessage)
		return true
	}

	return p.link(links)
}

func (p *Plugin) handleUserChrome(setting Setting) bool {
	raw, ok := setting.Value.(string)
	if !ok {
		p.invalidChrome(setting, errors.Newf(errors.ErrConfigValid,
			"%s must be a path, got %T", setting.Key, setting.Value))
		return false
	}

	source := p.expander.Expand(raw)
	info, err := p.fs.Stat(source)
	if err != nil {
		p.invalidChrome(setting, errors.Wrapf(err, errors.ErrConfigValid,
			"%s path %s does not exist", setting.Key, raw))
		return false
	}

	switch name := filepath.Base(source); {
	case info.Mode().IsRegular() && name == userChromeFile:
		return p.linkUserChromeFile(raw)
	case info.IsDir() && name == chromeDir:
		return p.linkChromeDir(source)
	}

	p.invalidChrome(setting, errors.Newf(errors.ErrConfigValid,
		"%s path %s must be a file named %s or a directory named %s",
		setting.Key, raw, userChromeFile, chromeDir))
	return false
}

func (p *Plugin) invalidChrome(setting Setting, err error) {
	p.logger.Error().Err(err).Str("key", setting.Key).Msg("Invalid userChrome.css / chrome path")
}

// linkUserChromeFile links the unexpanded source into every profile with
// one link call.
func (p *Plugin) linkUserChromeFile(source string) bool {
	links := plugin.Data{}
	for profile := range p.locator.Profiles() {
		links[filepath.Join(profile, chromeDir, userChromeFile)] = source
	}

	if len(links) == 0 {
		p.logger.Warn().Msg(noProfilesMessage)
		return true
	}

	return p.link(links)
}

// linkChromeDir mirrors every file under source into each profile's chrome
// directory, with one link call per profile.
func (p *Plugin) linkChromeDir(source string) bool {
	files, err := p.listFiles(source)
	if err != nil {
		p.logger.Error().Err(err).Str("path", source).Msg("Cannot read chrome directory")
		return false
	}

	found := slices.Collect(p.locator.Profiles())
	if len(found) == 0 {
		p.logger.Warn().Msg(noProfilesMessage)
		return true
	}

	success := true
	for _, profile := range found {
		links := make(plugin.Data, len(files))
		for _, rel := range files {
			links[filepath.Join(profile, chromeDir, rel)] = filepath.Join(source, rel)
		}
		ok := p.link(links)
		success = success && ok
	}
	return success
}

// listFiles returns the paths of all non-directory entries under root,
// relative to root, in lexical walk order.
func (p *Plugin) listFiles(root string) ([]string, error) {
	var files []string

	var walk func(rel string) error
	walk = func(rel string) error {
		entries, err := p.fs.ReadDir(filepath.Join(root, rel))
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot list %s", filepath.Join(root, rel))
		}
		for _, entry := range entries {
			child := filepath.Join(rel, entry.Name())
			if entry.IsDir() {
				if err := walk(child); err != nil {
					return err
				}
				continue
			}
			files = append(files, child)
		}
		return nil
	}

	if err := walk(""); err != nil {
		return nil, err
	}
	return files, nil
}

func (p *Plugin) link(links plugin.Data) bool {
	linker := p.newLinker(p.ctx)
	ok, err := linker.Handle(link.Directive, links)
	if err != nil {
		p.logger.Error().Err(err).Msg("Link plugin rejected the request")
		return false
	}
	return ok
}
